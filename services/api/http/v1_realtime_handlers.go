package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tenantlabs/heatwatch/internal/heatlaw"
	"github.com/tenantlabs/heatwatch/internal/outdoor"
	"github.com/tenantlabs/heatwatch/internal/radiator"
)

// unitNow is the live snapshot for one unit.
type unitNow struct {
	UnitID        string          `json:"unit_id"`
	Name          *string         `json:"name,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
	IndoorF       float64         `json:"indoor_f"`
	Humidity      float64         `json:"humidity"`
	OutdoorF      *float64        `json:"outdoor_f,omitempty"`
	RadiatorF     *float64        `json:"radiator_f,omitempty"`
	RadiatorState *radiator.State `json:"radiator_state,omitempty"`
	Compliant     bool            `json:"compliant"`
	RequiredF     float64         `json:"required_f"`
}

// handleV1RealtimeNow returns the newest reading per unit with live verdicts
// GET /api/v1/realtime/now
func (s *Server) handleV1RealtimeNow(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	latest, err := s.store.LatestReadings(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sample, err := s.store.LatestOutdoor(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// The nearest lookup also enforces staleness: an outdoor sample older
	// than the match tolerance counts as unknown.
	var samples []outdoor.Sample
	if sample != nil {
		sample.Timestamp = sample.Timestamp.In(s.cfg.Location)
		samples = []outdoor.Sample{*sample}
	}

	units := make([]unitNow, 0, len(latest))
	for _, ul := range latest {
		ts := ul.Timestamp.In(s.cfg.Location)
		outdoorF := outdoor.Nearest(samples, ts)
		verdict := heatlaw.Evaluate(ts, ul.IndoorF, outdoorF)

		un := unitNow{
			UnitID:    ul.UnitID,
			Name:      ul.Name,
			Timestamp: ts,
			IndoorF:   ul.IndoorF,
			Humidity:  ul.Humidity,
			OutdoorF:  outdoorF,
			RadiatorF: ul.RadiatorF,
			Compliant: verdict.Compliant,
			RequiredF: verdict.RequiredF,
		}
		if ul.RadiatorF != nil {
			// A lone probe value has no neighbors; classification falls
			// back to the magnitude default.
			state := radiator.Classify(*ul.RadiatorF, nil, nil)
			un.RadiatorState = &state
		}
		units = append(units, un)
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"units":   units,
			"outdoor": sample,
		},
		"meta": gin.H{
			"units_count":  len(units),
			"generated_at": time.Now().UTC().Format(time.RFC3339),
		},
	})
}
