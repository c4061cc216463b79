// Package radiator classifies radiator probe temperatures into on/cooling/off
// states. The classifier is memoryless: each point is judged only from its
// immediate neighbors, so adjacent points can disagree at plateaus. That noise
// is an accepted property of the heuristic, not something callers should
// smooth away.
package radiator

import "time"

// Classification thresholds in °F.
const (
	// OffThresholdF is the surface temperature below which the radiator is
	// considered off regardless of any trend.
	OffThresholdF = 70.0
	// TrendThresholdF is the minimum neighbor delta that counts as a rise or
	// fall; smaller deltas are inconclusive.
	TrendThresholdF = 0.3
	// HotThresholdF decides plateau points with no usable neighbor trend.
	HotThresholdF = 90.0
)

// State is the classified radiator activity at one point.
type State string

const (
	StateOn      State = "on"
	StateCooling State = "cooling"
	StateOff     State = "off"
)

// Classify derives the radiator state for one probe temperature from its
// temporal neighbors. prevF and nextF are nil at series edges. The check order
// is fixed: off threshold, then the delta from the previous reading, then the
// delta to the next reading, then the magnitude default. Reordering the checks
// changes results at plateau points.
func Classify(currentF float64, prevF, nextF *float64) State {
	if currentF < OffThresholdF {
		return StateOff
	}

	if prevF != nil {
		switch delta := currentF - *prevF; {
		case delta > TrendThresholdF:
			return StateOn
		case delta < -TrendThresholdF:
			return StateCooling
		}
	}

	if nextF != nil {
		switch delta := *nextF - currentF; {
		case delta > TrendThresholdF:
			return StateOn
		case delta < -TrendThresholdF:
			return StateCooling
		}
	}

	if currentF >= HotThresholdF {
		return StateOn
	}
	return StateCooling
}

// Sample is one radiator probe measurement.
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	TempF     float64   `json:"temp_f"`
}

// Classified pairs a sample with its derived state.
type Classified struct {
	Timestamp time.Time `json:"timestamp"`
	TempF     float64   `json:"temp_f"`
	State     State     `json:"state"`
}

// ClassifySeries classifies every sample of an ascending series, feeding each
// point its positional neighbors.
func ClassifySeries(samples []Sample) []Classified {
	out := make([]Classified, 0, len(samples))
	for i, s := range samples {
		var prev, next *float64
		if i > 0 {
			prev = &samples[i-1].TempF
		}
		if i+1 < len(samples) {
			next = &samples[i+1].TempF
		}
		out = append(out, Classified{
			Timestamp: s.Timestamp,
			TempF:     s.TempF,
			State:     Classify(s.TempF, prev, next),
		})
	}
	return out
}
