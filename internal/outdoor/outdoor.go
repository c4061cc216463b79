// Package outdoor holds outdoor temperature samples and the nearest-neighbor
// lookup used to pair them with indoor readings.
package outdoor

import (
	"sort"
	"time"
)

// MatchTolerance is how far an outdoor sample may sit from an indoor reading
// and still count as its outdoor temperature. Beyond it the outdoor value is
// treated as unknown, which the compliance rule handles conservatively.
const MatchTolerance = 60 * time.Minute

// Sample is one outdoor temperature measurement.
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	TempF     float64   `json:"temp_f"`
	Source    string    `json:"source,omitempty"`
}

// SortByTime orders samples ascending by timestamp in place.
func SortByTime(samples []Sample) {
	sort.Slice(samples, func(i, j int) bool {
		return samples[i].Timestamp.Before(samples[j].Timestamp)
	})
}

// Nearest returns the temperature of the sample closest to ts, or nil when no
// sample lies within MatchTolerance. samples must be sorted ascending.
func Nearest(samples []Sample, ts time.Time) *float64 {
	if len(samples) == 0 {
		return nil
	}

	// First sample at or after ts; the nearest is either it or its
	// predecessor.
	i := sort.Search(len(samples), func(i int) bool {
		return !samples[i].Timestamp.Before(ts)
	})

	best := -1
	var bestDist time.Duration
	for _, j := range []int{i - 1, i} {
		if j < 0 || j >= len(samples) {
			continue
		}
		d := absDuration(samples[j].Timestamp.Sub(ts))
		if best == -1 || d < bestDist {
			best, bestDist = j, d
		}
	}
	if best == -1 || bestDist > MatchTolerance {
		return nil
	}
	temp := samples[best].TempF
	return &temp
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
