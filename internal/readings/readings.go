// Package readings defines indoor sensor readings and the enrichment step
// that pairs them with outdoor samples and the heating ordinance verdict.
package readings

import (
	"sort"
	"time"

	"github.com/tenantlabs/heatwatch/internal/heatlaw"
	"github.com/tenantlabs/heatwatch/internal/outdoor"
)

// Raw is one indoor reading as ingested, before any evaluation.
type Raw struct {
	Timestamp time.Time `json:"timestamp"`
	IndoorF   float64   `json:"indoor_f"`
	Humidity  float64   `json:"humidity"`
	RadiatorF *float64  `json:"radiator_f,omitempty"`
}

// Reading is a raw reading joined with its nearest outdoor sample and the
// ordinance verdict for that moment.
type Reading struct {
	Timestamp time.Time `json:"timestamp"`
	IndoorF   float64   `json:"indoor_f"`
	Humidity  float64   `json:"humidity"`
	OutdoorF  *float64  `json:"outdoor_f"`
	RadiatorF *float64  `json:"radiator_f,omitempty"`
	Compliant bool      `json:"compliant"`
	RequiredF float64   `json:"required_f"`
}

// SortByTime orders raw readings ascending by timestamp in place.
func SortByTime(raws []Raw) {
	sort.Slice(raws, func(i, j int) bool {
		return raws[i].Timestamp.Before(raws[j].Timestamp)
	})
}

// Enrich evaluates each raw reading against the ordinance, using the nearest
// outdoor sample within tolerance. samples must be sorted ascending; readings
// come back in input order.
func Enrich(raws []Raw, samples []outdoor.Sample) []Reading {
	out := make([]Reading, 0, len(raws))
	for _, r := range raws {
		outdoorF := outdoor.Nearest(samples, r.Timestamp)
		verdict := heatlaw.Evaluate(r.Timestamp, r.IndoorF, outdoorF)
		out = append(out, Reading{
			Timestamp: r.Timestamp,
			IndoorF:   r.IndoorF,
			Humidity:  r.Humidity,
			OutdoorF:  outdoorF,
			RadiatorF: r.RadiatorF,
			Compliant: verdict.Compliant,
			RequiredF: verdict.RequiredF,
		})
	}
	return out
}
