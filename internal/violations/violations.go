// Package violations turns evaluated readings into contiguous violation
// periods, merges periods separated by short sensor gaps, and groups them by
// local day for reporting.
package violations

import (
	"math"
	"sort"
	"time"

	"github.com/tenantlabs/heatwatch/internal/heatlaw"
	"github.com/tenantlabs/heatwatch/internal/readings"
)

// DefaultGapTolerance is the largest sensor gap that still counts as one
// continuous violation when merging.
const DefaultGapTolerance = 5 * time.Minute

// Period is one contiguous run of violating readings. DurationMinutes is the
// number of violating readings, which equals minutes at the minutely sensor
// cadence; merging adds the bridged gap on top.
type Period struct {
	Start           time.Time      `json:"start"`
	End             time.Time      `json:"end"`
	DurationMinutes int            `json:"duration_minutes"`
	MinF            float64        `json:"min_f"`
	AvgF            float64        `json:"avg_f"`
	MaxF            float64        `json:"max_f"`
	Kind            heatlaw.Period `json:"kind"`
}

type run struct {
	kind       heatlaw.Period
	start, end time.Time
	minF, maxF float64
	sum        float64
	count      int
}

func (r *run) finish() Period {
	return Period{
		Start:           r.start,
		End:             r.end,
		DurationMinutes: r.count,
		MinF:            r.minF,
		AvgF:            r.sum / float64(r.count),
		MaxF:            r.maxF,
		Kind:            r.kind,
	}
}

// Extract walks readings once, in time order, and closes a period whenever
// compliance resumes or the ordinance period flips between daytime and
// nighttime. A violation run crossing 22:00 therefore yields two periods.
func Extract(rs []readings.Reading) []Period {
	periods := []Period{}
	var cur *run
	for _, r := range rs {
		if r.Compliant {
			if cur != nil {
				periods = append(periods, cur.finish())
				cur = nil
			}
			continue
		}

		kind := heatlaw.PeriodOf(r.Timestamp)
		if cur != nil && cur.kind != kind {
			periods = append(periods, cur.finish())
			cur = nil
		}
		if cur == nil {
			cur = &run{kind: kind, start: r.Timestamp, minF: r.IndoorF, maxF: r.IndoorF}
		}
		cur.end = r.Timestamp
		cur.sum += r.IndoorF
		cur.count++
		if r.IndoorF < cur.minF {
			cur.minF = r.IndoorF
		}
		if r.IndoorF > cur.maxF {
			cur.maxF = r.IndoorF
		}
	}
	if cur != nil {
		periods = append(periods, cur.finish())
	}
	return periods
}

// Merge folds consecutive same-kind periods whose gap is within tolerance
// into one, treating short sensor dropouts as uninterrupted violations. The
// bridged gap is added to the duration, rounded to whole minutes; the running
// average is reweighted by the duration values as they stand before the gap
// is folded in. periods must be ascending by start. Merging an already merged
// slice changes nothing.
func Merge(periods []Period, tolerance time.Duration) []Period {
	if len(periods) == 0 {
		return []Period{}
	}

	out := []Period{periods[0]}
	for _, next := range periods[1:] {
		acc := &out[len(out)-1]
		gap := next.Start.Sub(acc.End).Minutes()
		if next.Kind != acc.Kind || gap > tolerance.Minutes() {
			out = append(out, next)
			continue
		}

		total := acc.DurationMinutes + next.DurationMinutes
		acc.AvgF = (acc.AvgF*float64(acc.DurationMinutes) + next.AvgF*float64(next.DurationMinutes)) / float64(total)
		acc.DurationMinutes = total + int(math.Round(gap))
		acc.End = next.End
		if next.MinF < acc.MinF {
			acc.MinF = next.MinF
		}
		if next.MaxF > acc.MaxF {
			acc.MaxF = next.MaxF
		}
	}
	return out
}

// DayGroup collects the violation periods that started on one local day.
type DayGroup struct {
	Day     time.Time `json:"day"`
	Periods []Period  `json:"periods"`
}

// GroupByDay buckets periods by the local midnight of their start in loc.
// Days come back newest first; periods within a day run oldest first.
func GroupByDay(periods []Period, loc *time.Location) []DayGroup {
	byDay := make(map[int64]*DayGroup)
	for _, p := range periods {
		t := p.Start.In(loc)
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		key := day.UnixMilli()
		g, ok := byDay[key]
		if !ok {
			g = &DayGroup{Day: day}
			byDay[key] = g
		}
		g.Periods = append(g.Periods, p)
	}

	out := make([]DayGroup, 0, len(byDay))
	for _, g := range byDay {
		sort.Slice(g.Periods, func(i, j int) bool {
			return g.Periods[i].Start.Before(g.Periods[j].Start)
		})
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Day.After(out[j].Day)
	})
	return out
}
