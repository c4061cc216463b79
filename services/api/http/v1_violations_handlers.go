package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tenantlabs/heatwatch/internal/radiator"
	"github.com/tenantlabs/heatwatch/internal/readings"
	"github.com/tenantlabs/heatwatch/internal/violations"
	"github.com/tenantlabs/heatwatch/services/api/db"
)

// parseGapTolerance reads the optional gap query parameter in minutes.
func (s *Server) parseGapTolerance(c *gin.Context) (time.Duration, bool) {
	gapStr := c.Query("gap")
	if gapStr == "" {
		return s.cfg.GapTolerance, true
	}
	gap, err := strconv.Atoi(gapStr)
	if err != nil || gap < 0 {
		return 0, false
	}
	return time.Duration(gap) * time.Minute, true
}

// handleV1Violations returns merged violation periods for a unit
// GET /api/v1/units/:id/violations?start=...&end=...&gap=5
func (s *Server) handleV1Violations(c *gin.Context) {
	unitID := c.Param("id")
	if unitID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unit id is required"})
		return
	}

	start, end, err := parseTimeRange(c, s.cfg.DefaultDays)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gap, ok := s.parseGapTolerance(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gap, expected minutes"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	enriched, err := s.fetchEnriched(ctx, unitID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	periods := violations.Merge(violations.Extract(enriched), gap)

	c.JSON(http.StatusOK, gin.H{
		"data": periods,
		"meta": gin.H{
			"unit_id":     unitID,
			"start":       start.Format(time.RFC3339),
			"end":         end.Format(time.RFC3339),
			"gap_minutes": int(gap / time.Minute),
			"count":       len(periods),
		},
	})
}

// handleV1ViolationsDaily returns violation periods grouped by local day,
// newest day first
// GET /api/v1/units/:id/violations/daily?start=...&end=...&gap=5
func (s *Server) handleV1ViolationsDaily(c *gin.Context) {
	unitID := c.Param("id")
	if unitID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unit id is required"})
		return
	}

	start, end, err := parseTimeRange(c, s.cfg.DefaultDays)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gap, ok := s.parseGapTolerance(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gap, expected minutes"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	enriched, err := s.fetchEnriched(ctx, unitID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	merged := violations.Merge(violations.Extract(enriched), gap)
	days := violations.GroupByDay(merged, s.cfg.Location)

	c.JSON(http.StatusOK, gin.H{
		"data": days,
		"meta": gin.H{
			"unit_id":     unitID,
			"start":       start.Format(time.RFC3339),
			"end":         end.Format(time.RFC3339),
			"gap_minutes": int(gap / time.Minute),
			"days":        len(days),
		},
	})
}

// handleV1Stats returns compliance statistics for a unit
// GET /api/v1/units/:id/stats?start=...&end=...
func (s *Server) handleV1Stats(c *gin.Context) {
	unitID := c.Param("id")
	if unitID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unit id is required"})
		return
	}

	start, end, err := parseTimeRange(c, s.cfg.DefaultDays)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	enriched, err := s.fetchEnriched(ctx, unitID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	stats := readings.Compute(enriched)

	c.JSON(http.StatusOK, gin.H{
		"data": stats,
		"meta": gin.H{
			"unit_id": unitID,
			"start":   start.Format(time.RFC3339),
			"end":     end.Format(time.RFC3339),
		},
	})
}

// handleV1Radiator returns classified radiator activity for a unit
// GET /api/v1/units/:id/radiator?start=...&end=...
func (s *Server) handleV1Radiator(c *gin.Context) {
	unitID := c.Param("id")
	if unitID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unit id is required"})
		return
	}

	start, end, err := parseTimeRange(c, s.cfg.DefaultDays)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	raws, err := s.store.FetchReadings(ctx, db.ReadingQuery{
		UnitID: unitID,
		Since:  &start,
		Until:  &end,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	samples := make([]radiator.Sample, 0, len(raws))
	for _, r := range raws {
		if r.RadiatorF == nil {
			continue
		}
		samples = append(samples, radiator.Sample{
			Timestamp: r.Timestamp.In(s.cfg.Location),
			TempF:     *r.RadiatorF,
		})
	}
	classified := radiator.ClassifySeries(samples)

	c.JSON(http.StatusOK, gin.H{
		"data": classified,
		"meta": gin.H{
			"unit_id": unitID,
			"start":   start.Format(time.RFC3339),
			"end":     end.Format(time.RFC3339),
			"count":   len(classified),
		},
	})
}
