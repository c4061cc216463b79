package utils

import (
	"fmt"
	"math"
	"time"

	"github.com/tenantlabs/heatwatch/services/watcher/internal/models"
)

// meteoTimeLayout matches Open-Meteo's minute-resolution iso8601 timestamps,
// which carry no zone suffix and are UTC under the default feed settings.
const meteoTimeLayout = "2006-01-02T15:04"

// BuildSampleCandidate normalizes the feed payload into an insertable sample.
// It returns false when the payload carries no temperature. An unparseable
// feed timestamp falls back to the retrieval time.
func BuildSampleCandidate(payload models.CurrentResponse, retrievalTS time.Time) (models.SampleCandidate, bool) {
	if payload.Current.Temperature2m == nil {
		return models.SampleCandidate{}, false
	}

	ts := retrievalTS
	if parsed, err := time.Parse(meteoTimeLayout, payload.Current.Time); err == nil {
		ts = parsed.UTC()
	}

	return models.SampleCandidate{TS: ts, TempF: *payload.Current.Temperature2m}, true
}

// ShouldStore decides whether a candidate adds information over the last
// stored sample: first sample ever, enough time elapsed, or a value change
// beyond epsilon.
func ShouldStore(cand models.SampleCandidate, last *models.LastSample, minInterval time.Duration, epsilon float64) bool {
	if last == nil {
		return true
	}
	if cand.TS.Sub(last.TS) >= minInterval {
		return true
	}
	return math.Abs(cand.TempF-last.TempF) > epsilon
}

// TempString formats a temperature for logging.
func TempString(v float64) string {
	return fmt.Sprintf("%.1f°F", v)
}
