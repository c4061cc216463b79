package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tenantlabs/heatwatch/internal/aggregate"
)

// handleV1Series returns bucketed readings with compliance flags for charting
// GET /api/v1/units/:id/series?start=2024-01-01T00:00:00Z&end=2024-01-08T00:00:00Z&interval=5
func (s *Server) handleV1Series(c *gin.Context) {
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

	interval, err := aggregate.ParseInterval(c.Query("interval"))
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

	buckets := aggregate.Buckets(enriched, interval)

	c.JSON(http.StatusOK, gin.H{
		"data": buckets,
		"meta": gin.H{
			"unit_id":  unitID,
			"interval": int(interval),
			"start":    start.Format(time.RFC3339),
			"end":      end.Format(time.RFC3339),
			"count":    len(buckets),
		},
	})
}
