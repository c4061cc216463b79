package heatlaw

import (
	"testing"
	"time"
)

var nyc = mustLoad("America/New_York")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func at(month time.Month, day, hour int) time.Time {
	year := 2024
	if month >= time.October {
		year = 2023
	}
	return time.Date(year, month, day, hour, 30, 0, 0, nyc)
}

func f(v float64) *float64 { return &v }

func TestSeasonBounds(t *testing.T) {
	cases := []struct {
		ts   time.Time
		want bool
	}{
		{at(time.September, 30, 12), false},
		{at(time.October, 1, 12), true},
		{at(time.January, 15, 12), true},
		{at(time.May, 31, 12), true},
		{at(time.June, 1, 12), false},
	}
	for _, c := range cases {
		if got := InSeason(c.ts); got != c.want {
			t.Errorf("InSeason(%s) = %v, want %v", c.ts.Format(time.RFC3339), got, c.want)
		}
	}
}

func TestOffSeasonInert(t *testing.T) {
	v := Evaluate(at(time.July, 4, 3), 40, nil)
	if !v.Compliant {
		t.Fatalf("off-season reading must be compliant, got %+v", v)
	}
	if v.RequiredF != 0 {
		t.Fatalf("off-season required temperature must be 0, got %.1f", v.RequiredF)
	}
}

func TestDaytimeHourBounds(t *testing.T) {
	cases := []struct {
		hour int
		want bool
	}{
		{5, false},
		{6, true},
		{21, true},
		{22, false},
		{23, false},
		{0, false},
	}
	for _, c := range cases {
		ts := time.Date(2024, time.January, 10, c.hour, 0, 0, 0, nyc)
		if got := IsDaytime(ts); got != c.want {
			t.Errorf("IsDaytime(hour=%d) = %v, want %v", c.hour, got, c.want)
		}
	}
}

func TestDaytimeRequirement(t *testing.T) {
	ts := at(time.January, 10, 10)

	v := Evaluate(ts, 67.9, nil)
	if v.Compliant || v.RequiredF != DaytimeRequiredF {
		t.Fatalf("67.9F with unknown outdoor must violate the 68F rule, got %+v", v)
	}

	v = Evaluate(ts, 68, nil)
	if !v.Compliant {
		t.Fatalf("68F must be compliant at the boundary, got %+v", v)
	}

	v = Evaluate(ts, 60, f(54.9))
	if v.Compliant {
		t.Fatalf("cold outdoor keeps the daytime requirement in force, got %+v", v)
	}
}

func TestDaytimeOutdoorWaiver(t *testing.T) {
	ts := at(time.January, 10, 10)
	v := Evaluate(ts, 60, f(55))
	if !v.Compliant {
		t.Fatalf("outdoor >= 55F waives the daytime requirement, got %+v", v)
	}
	if v.RequiredF != DaytimeRequiredF {
		t.Fatalf("waived verdict still reports 68F for reference, got %.1f", v.RequiredF)
	}
}

func TestNighttimeUnconditional(t *testing.T) {
	ts := at(time.January, 10, 23)

	v := Evaluate(ts, 61.5, f(70))
	if v.Compliant {
		t.Fatalf("nighttime rule ignores outdoor temperature, got %+v", v)
	}
	if v.RequiredF != NighttimeRequiredF {
		t.Fatalf("nighttime required temperature must be 62F, got %.1f", v.RequiredF)
	}

	v = Evaluate(ts, 62, nil)
	if !v.Compliant {
		t.Fatalf("62F must be compliant overnight, got %+v", v)
	}
}

func TestPeriodOf(t *testing.T) {
	if got := PeriodOf(at(time.January, 10, 10)); got != PeriodDaytime {
		t.Fatalf("hour 10 must be daytime, got %s", got)
	}
	if got := PeriodOf(at(time.January, 10, 22)); got != PeriodNighttime {
		t.Fatalf("hour 22 must be nighttime, got %s", got)
	}
}
