package http

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tenantlabs/heatwatch/internal/outdoor"
	"github.com/tenantlabs/heatwatch/internal/readings"
	"github.com/tenantlabs/heatwatch/services/api/db"
)

// parseTimeRange reads the start/end query parameters (RFC 3339). A missing
// end defaults to now, a missing start to the trailing defaultDays window.
func parseTimeRange(c *gin.Context, defaultDays int) (time.Time, time.Time, error) {
	end := time.Now().UTC()
	if endStr := c.Query("end"); endStr != "" {
		t, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid end timestamp, expected RFC3339")
		}
		end = t.UTC()
	}

	start := end.Add(-time.Duration(defaultDays) * 24 * time.Hour)
	if startStr := c.Query("start"); startStr != "" {
		t, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid start timestamp, expected RFC3339")
		}
		start = t.UTC()
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, errors.New("start must be before end")
	}
	return start, end, nil
}

// fetchEnriched loads one unit's readings for [start, end], pairs them with
// outdoor samples and evaluates the ordinance. The outdoor window is widened
// by the match tolerance so edge readings still find their nearest sample.
// Timestamps come back in the ordinance timezone.
func (s *Server) fetchEnriched(ctx context.Context, unitID string, start, end time.Time) ([]readings.Reading, error) {
	raws, err := s.store.FetchReadings(ctx, db.ReadingQuery{
		UnitID: unitID,
		Since:  &start,
		Until:  &end,
	})
	if err != nil {
		return nil, err
	}
	for i := range raws {
		raws[i].Timestamp = raws[i].Timestamp.In(s.cfg.Location)
	}

	samples, err := s.store.FetchOutdoor(ctx,
		start.Add(-outdoor.MatchTolerance), end.Add(outdoor.MatchTolerance))
	if err != nil {
		return nil, err
	}
	for i := range samples {
		samples[i].Timestamp = samples[i].Timestamp.In(s.cfg.Location)
	}
	// Nearest requires ascending samples.
	outdoor.SortByTime(samples)

	return readings.Enrich(raws, samples), nil
}
