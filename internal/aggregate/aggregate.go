// Package aggregate rolls evaluated readings up into fixed time buckets for
// charting. Bucket boundaries are epoch-aligned so the same reading always
// lands in the same bucket regardless of the query window.
package aggregate

import (
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/tenantlabs/heatwatch/internal/readings"
)

// Interval is a bucket width in minutes.
type Interval int

const (
	Minute     Interval = 1
	FiveMinute Interval = 5
	HalfHour   Interval = 30
	Hour       Interval = 60
)

// ErrInvalidInterval is returned for widths other than 1, 5, 30 or 60.
var ErrInvalidInterval = errors.New("interval must be 1, 5, 30 or 60 minutes")

// ParseInterval parses a bucket width from its query parameter form. A
// missing selector falls back to the half-hour charting default.
func ParseInterval(s string) (Interval, error) {
	if s == "" {
		return HalfHour, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrInvalidInterval
	}
	switch iv := Interval(n); iv {
	case Minute, FiveMinute, HalfHour, Hour:
		return iv, nil
	default:
		return 0, ErrInvalidInterval
	}
}

// Bucket is one aggregated chart point. Compliant is true only when every
// reading inside the bucket complied. AvgOutdoorF averages the readings that
// had an outdoor match and is nil when none did.
type Bucket struct {
	Timestamp      time.Time `json:"timestamp"`
	AvgIndoorF     float64   `json:"avg_indoor_f"`
	MinIndoorF     float64   `json:"min_indoor_f"`
	MaxIndoorF     float64   `json:"max_indoor_f"`
	AvgHumidity    float64   `json:"avg_humidity"`
	AvgOutdoorF    *float64  `json:"avg_outdoor_f"`
	Compliant      bool      `json:"compliant"`
	ViolationCount int       `json:"violation_count"`
	ReadingCount   int       `json:"reading_count"`
}

// Buckets aggregates readings into iv-wide buckets and returns them ascending
// by timestamp. The minutely interval passes readings through one-to-one,
// keeping their exact timestamps. Input order does not matter.
func Buckets(rs []readings.Reading, iv Interval) []Bucket {
	out := []Bucket{}
	if iv == Minute {
		for _, r := range rs {
			out = append(out, passthrough(r))
		}
		sortBuckets(out)
		return out
	}

	intervalMs := int64(iv) * 60_000
	groups := make(map[int64][]readings.Reading)
	for _, r := range rs {
		key := r.Timestamp.UnixMilli() / intervalMs * intervalMs
		groups[key] = append(groups[key], r)
	}

	for key, grp := range groups {
		b := fold(grp)
		b.Timestamp = time.UnixMilli(key).In(grp[0].Timestamp.Location())
		out = append(out, b)
	}
	sortBuckets(out)
	return out
}

func passthrough(r readings.Reading) Bucket {
	b := Bucket{
		Timestamp:    r.Timestamp,
		AvgIndoorF:   r.IndoorF,
		MinIndoorF:   r.IndoorF,
		MaxIndoorF:   r.IndoorF,
		AvgHumidity:  r.Humidity,
		Compliant:    r.Compliant,
		ReadingCount: 1,
	}
	if r.OutdoorF != nil {
		v := *r.OutdoorF
		b.AvgOutdoorF = &v
	}
	if !r.Compliant {
		b.ViolationCount = 1
	}
	return b
}

func fold(grp []readings.Reading) Bucket {
	b := Bucket{
		MinIndoorF:   grp[0].IndoorF,
		MaxIndoorF:   grp[0].IndoorF,
		Compliant:    true,
		ReadingCount: len(grp),
	}
	var sumIndoor, sumHumidity, sumOutdoor float64
	var outdoorCount int
	for _, r := range grp {
		sumIndoor += r.IndoorF
		sumHumidity += r.Humidity
		if r.IndoorF < b.MinIndoorF {
			b.MinIndoorF = r.IndoorF
		}
		if r.IndoorF > b.MaxIndoorF {
			b.MaxIndoorF = r.IndoorF
		}
		if r.OutdoorF != nil {
			sumOutdoor += *r.OutdoorF
			outdoorCount++
		}
		if !r.Compliant {
			b.Compliant = false
			b.ViolationCount++
		}
	}
	n := float64(len(grp))
	b.AvgIndoorF = sumIndoor / n
	b.AvgHumidity = sumHumidity / n
	if outdoorCount > 0 {
		avg := sumOutdoor / float64(outdoorCount)
		b.AvgOutdoorF = &avg
	}
	return b
}

func sortBuckets(bs []Bucket) {
	sort.Slice(bs, func(i, j int) bool {
		return bs[i].Timestamp.Before(bs[j].Timestamp)
	})
}
