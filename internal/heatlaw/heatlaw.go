// Package heatlaw evaluates indoor readings against the residential heat
// ordinance: during heating season (October through May) apartments must hold
// 68°F between 06:00 and 22:00 whenever the outdoor temperature is below 55°F
// or unknown, and 62°F overnight regardless of outdoor conditions.
package heatlaw

import "time"

// Ordinance thresholds. Policy values, not derived quantities.
const (
	DaytimeRequiredF   = 68.0
	NighttimeRequiredF = 62.0
	OutdoorWaiverF     = 55.0

	DaytimeStartHour = 6
	DaytimeEndHour   = 22
)

// Heating season bounds, inclusive on both ends.
const (
	SeasonStartMonth = time.October
	SeasonEndMonth   = time.May
)

// Period labels the time-of-day regime a reading falls under.
type Period string

const (
	PeriodDaytime   Period = "daytime"
	PeriodNighttime Period = "nighttime"
)

// Verdict is the outcome of evaluating one reading against the ordinance.
// RequiredF is 0 outside the heating season; during a daytime outdoor waiver
// it still reports 68 for reference even though Compliant is forced true.
type Verdict struct {
	Compliant bool    `json:"compliant"`
	RequiredF float64 `json:"required_f"`
}

// InSeason reports whether t falls within the heating season.
func InSeason(t time.Time) bool {
	m := t.Month()
	return m >= SeasonStartMonth || m <= SeasonEndMonth
}

// IsDaytime reports whether t's local hour is within [06:00, 22:00).
func IsDaytime(t time.Time) bool {
	h := t.Hour()
	return h >= DaytimeStartHour && h < DaytimeEndHour
}

// PeriodOf returns the time-of-day period for t.
func PeriodOf(t time.Time) Period {
	if IsDaytime(t) {
		return PeriodDaytime
	}
	return PeriodNighttime
}

// Evaluate applies the ordinance to a single reading. outdoorF may be nil when
// no outdoor observation is available; the daytime requirement then applies
// unconditionally (missing data is treated conservatively). The result is a
// pure function of the three inputs.
func Evaluate(ts time.Time, indoorF float64, outdoorF *float64) Verdict {
	if !InSeason(ts) {
		return Verdict{Compliant: true, RequiredF: 0}
	}

	if IsDaytime(ts) {
		v := Verdict{RequiredF: DaytimeRequiredF}
		if outdoorF != nil && *outdoorF >= OutdoorWaiverF {
			// Requirement waived by mild weather.
			v.Compliant = true
			return v
		}
		v.Compliant = indoorF >= DaytimeRequiredF
		return v
	}

	return Verdict{
		Compliant: indoorF >= NighttimeRequiredF,
		RequiredF: NighttimeRequiredF,
	}
}
