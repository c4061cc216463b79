package violations

import (
	"testing"
	"time"

	"github.com/tenantlabs/heatwatch/internal/heatlaw"
	"github.com/tenantlabs/heatwatch/internal/readings"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load location %s: %v", name, err)
	}
	return loc
}

func minutely(base time.Time, temps []float64, compliant []bool) []readings.Reading {
	rs := make([]readings.Reading, len(temps))
	for i := range temps {
		rs[i] = readings.Reading{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			IndoorF:   temps[i],
			Compliant: compliant[i],
			RequiredF: 68,
		}
	}
	return rs
}

func TestExtractSingleRun(t *testing.T) {
	nyc := mustLoad(t, "America/New_York")
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, nyc)
	rs := minutely(base,
		[]float64{69, 67, 66, 68, 70},
		[]bool{true, false, false, true, true})

	got := Extract(rs)
	if len(got) != 1 {
		t.Fatalf("got %d periods, want 1: %+v", len(got), got)
	}
	p := got[0]
	if !p.Start.Equal(base.Add(time.Minute)) || !p.End.Equal(base.Add(2*time.Minute)) {
		t.Errorf("period span %v..%v, want 10:01..10:02", p.Start, p.End)
	}
	if p.DurationMinutes != 2 {
		t.Errorf("duration = %d, want 2", p.DurationMinutes)
	}
	if p.MinF != 66 || p.MaxF != 67 || p.AvgF != 66.5 {
		t.Errorf("temps = min %v avg %v max %v, want 66/66.5/67", p.MinF, p.AvgF, p.MaxF)
	}
	if p.Kind != heatlaw.PeriodDaytime {
		t.Errorf("kind = %q, want daytime", p.Kind)
	}
}

func TestExtractSplitsOnPeriodFlip(t *testing.T) {
	nyc := mustLoad(t, "America/New_York")
	base := time.Date(2024, 1, 15, 21, 58, 0, 0, nyc)
	rs := minutely(base,
		[]float64{60, 60, 60, 60},
		[]bool{false, false, false, false})

	got := Extract(rs)
	if len(got) != 2 {
		t.Fatalf("got %d periods, want split at 22:00: %+v", len(got), got)
	}
	if got[0].Kind != heatlaw.PeriodDaytime || got[0].DurationMinutes != 2 {
		t.Errorf("period 0 = %+v, want 2-minute daytime run", got[0])
	}
	if got[1].Kind != heatlaw.PeriodNighttime || got[1].DurationMinutes != 2 {
		t.Errorf("period 1 = %+v, want 2-minute nighttime run", got[1])
	}
	if !got[1].Start.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("nighttime run starts %v, want 22:00", got[1].Start)
	}
}

func TestExtractTrailingRun(t *testing.T) {
	nyc := mustLoad(t, "America/New_York")
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, nyc)
	rs := minutely(base, []float64{70, 66, 65}, []bool{true, false, false})

	got := Extract(rs)
	if len(got) != 1 || got[0].DurationMinutes != 2 {
		t.Fatalf("open run at input end not closed: %+v", got)
	}
	if !got[0].End.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("end = %v, want last reading", got[0].End)
	}
}

func TestExtractEmpty(t *testing.T) {
	if got := Extract(nil); len(got) != 0 {
		t.Fatalf("Extract(nil) = %+v, want empty", got)
	}
	nyc := mustLoad(t, "America/New_York")
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, nyc)
	rs := minutely(base, []float64{70, 70}, []bool{true, true})
	if got := Extract(rs); len(got) != 0 {
		t.Fatalf("all-compliant input produced periods: %+v", got)
	}
}

func TestMergeBridgesShortGap(t *testing.T) {
	nyc := mustLoad(t, "America/New_York")
	at := func(m int) time.Time { return time.Date(2024, 1, 15, 10, m, 0, 0, nyc) }

	periods := []Period{
		{Start: at(0), End: at(1), DurationMinutes: 2, MinF: 66, AvgF: 66.5, MaxF: 67, Kind: heatlaw.PeriodDaytime},
		{Start: at(5), End: at(7), DurationMinutes: 3, MinF: 65, AvgF: 67.0, MaxF: 67.5, Kind: heatlaw.PeriodDaytime},
	}

	got := Merge(periods, DefaultGapTolerance)
	if len(got) != 1 {
		t.Fatalf("got %d periods, want merge across 4-minute gap", len(got))
	}
	p := got[0]
	if !p.Start.Equal(at(0)) || !p.End.Equal(at(7)) {
		t.Errorf("span %v..%v, want 10:00..10:07", p.Start, p.End)
	}
	// 2 + 3 readings plus the 4 bridged minutes.
	if p.DurationMinutes != 9 {
		t.Errorf("duration = %d, want 9", p.DurationMinutes)
	}
	// Weighted by reading counts: (66.5*2 + 67.0*3) / 5.
	if p.AvgF != 66.8 {
		t.Errorf("avg = %v, want 66.8", p.AvgF)
	}
	if p.MinF != 65 || p.MaxF != 67.5 {
		t.Errorf("min/max = %v/%v, want 65/67.5", p.MinF, p.MaxF)
	}
}

func TestMergeRespectsToleranceAndKind(t *testing.T) {
	nyc := mustLoad(t, "America/New_York")
	at := func(h, m int) time.Time { return time.Date(2024, 1, 15, h, m, 0, 0, nyc) }

	wideGap := []Period{
		{Start: at(10, 0), End: at(10, 1), DurationMinutes: 2, Kind: heatlaw.PeriodDaytime},
		{Start: at(10, 8), End: at(10, 9), DurationMinutes: 2, Kind: heatlaw.PeriodDaytime},
	}
	if got := Merge(wideGap, DefaultGapTolerance); len(got) != 2 {
		t.Errorf("7-minute gap merged: %+v", got)
	}

	kindFlip := []Period{
		{Start: at(21, 58), End: at(21, 59), DurationMinutes: 2, Kind: heatlaw.PeriodDaytime},
		{Start: at(22, 0), End: at(22, 1), DurationMinutes: 2, Kind: heatlaw.PeriodNighttime},
	}
	if got := Merge(kindFlip, DefaultGapTolerance); len(got) != 2 {
		t.Errorf("daytime and nighttime periods merged: %+v", got)
	}
}

func TestMergeRoundsFractionalGap(t *testing.T) {
	nyc := mustLoad(t, "America/New_York")
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, nyc)
	end := start.Add(time.Minute)

	periods := []Period{
		{Start: start, End: end, DurationMinutes: 2, AvgF: 66, Kind: heatlaw.PeriodDaytime},
		{Start: end.Add(4*time.Minute + 24*time.Second), End: end.Add(6 * time.Minute), DurationMinutes: 2, AvgF: 66, Kind: heatlaw.PeriodDaytime},
	}

	got := Merge(periods, DefaultGapTolerance)
	if len(got) != 1 {
		t.Fatalf("4.4-minute gap not merged: %+v", got)
	}
	// 2 + 2 readings plus round(4.4) bridged minutes.
	if got[0].DurationMinutes != 8 {
		t.Fatalf("duration = %d, want 8", got[0].DurationMinutes)
	}
}

func TestMergeIdempotent(t *testing.T) {
	nyc := mustLoad(t, "America/New_York")
	at := func(m int) time.Time { return time.Date(2024, 1, 15, 10, m, 0, 0, nyc) }

	periods := []Period{
		{Start: at(0), End: at(1), DurationMinutes: 2, MinF: 66, AvgF: 66.5, MaxF: 67, Kind: heatlaw.PeriodDaytime},
		{Start: at(5), End: at(7), DurationMinutes: 3, MinF: 65, AvgF: 67.0, MaxF: 67.5, Kind: heatlaw.PeriodDaytime},
		{Start: at(20), End: at(21), DurationMinutes: 2, MinF: 66, AvgF: 66.0, MaxF: 66, Kind: heatlaw.PeriodDaytime},
	}

	once := Merge(periods, DefaultGapTolerance)
	twice := Merge(once, DefaultGapTolerance)
	if len(once) != len(twice) {
		t.Fatalf("second merge changed period count: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("period %d changed on re-merge:\n once  %+v\n twice %+v", i, once[i], twice[i])
		}
	}
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	nyc := mustLoad(t, "America/New_York")
	at := func(m int) time.Time { return time.Date(2024, 1, 15, 10, m, 0, 0, nyc) }

	periods := []Period{
		{Start: at(0), End: at(1), DurationMinutes: 2, AvgF: 66, Kind: heatlaw.PeriodDaytime},
		{Start: at(3), End: at(4), DurationMinutes: 2, AvgF: 66, Kind: heatlaw.PeriodDaytime},
	}
	Merge(periods, DefaultGapTolerance)
	if periods[0].DurationMinutes != 2 || !periods[0].End.Equal(at(1)) {
		t.Fatalf("Merge mutated its input: %+v", periods[0])
	}
}

func TestGroupByDay(t *testing.T) {
	nyc := mustLoad(t, "America/New_York")
	at := func(d, h, m int) time.Time { return time.Date(2024, 1, d, h, m, 0, 0, nyc) }

	periods := []Period{
		{Start: at(14, 23, 50), End: at(14, 23, 59), DurationMinutes: 10, Kind: heatlaw.PeriodNighttime},
		{Start: at(15, 10, 0), End: at(15, 10, 5), DurationMinutes: 6, Kind: heatlaw.PeriodDaytime},
		{Start: at(15, 7, 0), End: at(15, 7, 3), DurationMinutes: 4, Kind: heatlaw.PeriodDaytime},
	}

	got := GroupByDay(periods, nyc)
	if len(got) != 2 {
		t.Fatalf("got %d day groups, want 2", len(got))
	}
	// Newest day first.
	if !got[0].Day.Equal(at(15, 0, 0)) || !got[1].Day.Equal(at(14, 0, 0)) {
		t.Fatalf("day order = %v, %v, want Jan 15 then Jan 14", got[0].Day, got[1].Day)
	}
	// Periods within a day oldest first.
	if len(got[0].Periods) != 2 || !got[0].Periods[0].Start.Equal(at(15, 7, 0)) {
		t.Fatalf("Jan 15 periods = %+v, want 07:00 run first", got[0].Periods)
	}
	// A run that starts before midnight stays on its start day.
	if len(got[1].Periods) != 1 || got[1].Periods[0].DurationMinutes != 10 {
		t.Fatalf("Jan 14 periods = %+v", got[1].Periods)
	}
}

func TestGroupByDayEmpty(t *testing.T) {
	nyc := mustLoad(t, "America/New_York")
	if got := GroupByDay(nil, nyc); len(got) != 0 {
		t.Fatalf("GroupByDay(nil) = %+v, want empty", got)
	}
}
