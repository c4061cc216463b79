package readings

import (
	"math"

	"github.com/tenantlabs/heatwatch/internal/heatlaw"
)

// Stats summarizes ordinance compliance over a set of evaluated readings.
// ViolationHours assumes the minutely sensor cadence, one violating reading
// per minute.
type Stats struct {
	TotalReadings       int     `json:"total_readings"`
	CompliantReadings   int     `json:"compliant_readings"`
	ViolationReadings   int     `json:"violation_readings"`
	ComplianceRatePct   float64 `json:"compliance_rate_pct"`
	DaytimeViolations   int     `json:"daytime_violations"`
	NighttimeViolations int     `json:"nighttime_violations"`
	ViolationHours      float64 `json:"violation_hours"`
}

// Compute tallies compliance over readings. Empty input yields all zeros.
func Compute(rs []Reading) Stats {
	var s Stats
	s.TotalReadings = len(rs)
	if s.TotalReadings == 0 {
		return s
	}

	for _, r := range rs {
		if r.Compliant {
			s.CompliantReadings++
			continue
		}
		s.ViolationReadings++
		if heatlaw.PeriodOf(r.Timestamp) == heatlaw.PeriodDaytime {
			s.DaytimeViolations++
		} else {
			s.NighttimeViolations++
		}
	}

	pct := float64(s.CompliantReadings) / float64(s.TotalReadings) * 100
	s.ComplianceRatePct = math.Round(pct*10) / 10
	s.ViolationHours = float64(s.ViolationReadings) / 60
	return s
}
