package models

import "time"

// CurrentResponse models the JSON payload returned by the Open-Meteo
// current-weather endpoint.
type CurrentResponse struct {
	Latitude     float64      `json:"latitude"`
	Longitude    float64      `json:"longitude"`
	Timezone     string       `json:"timezone"`
	Current      Current      `json:"current"`
	CurrentUnits CurrentUnits `json:"current_units"`
}

// Current carries the instantaneous values of the current block.
type Current struct {
	Time          string   `json:"time"`
	Interval      int      `json:"interval"`
	Temperature2m *float64 `json:"temperature_2m"`
}

// CurrentUnits names the units the current block is expressed in.
type CurrentUnits struct {
	Time          string `json:"time"`
	Temperature2m string `json:"temperature_2m"`
}

// SampleCandidate encapsulates a normalized outdoor sample ready for insertion.
type SampleCandidate struct {
	TS    time.Time
	TempF float64
}

// LastSample represents the most recent stored sample for comparison.
type LastSample struct {
	TS    time.Time
	TempF float64
}
