package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tenantlabs/heatwatch/internal/readings"
	"github.com/tenantlabs/heatwatch/services/api/db"
)

// handleV1ImportReadings ingests a CSV of sensor rows for a unit
// POST /api/v1/units/:id/import
func (s *Server) handleV1ImportReadings(c *gin.Context) {
	unitID := c.Param("id")
	if unitID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unit id is required"})
		return
	}

	// The CSV arrives either as a multipart "file" field or as the raw
	// request body.
	var reader io.Reader = c.Request.Body
	var filename *string
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file upload"})
			return
		}
		defer f.Close()
		reader = f
		filename = &file.Filename
	}

	raws, rep, err := readings.ParseCSV(reader, s.cfg.Location)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	readings.SortByTime(raws)
	if rep.Total > s.cfg.MaxImportRows {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("import exceeds %d rows", s.cfg.MaxImportRows),
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	// Imports may target units that were never registered explicitly; the
	// upsert keeps metadata of known units untouched.
	if err := s.store.UpsertUnit(ctx, db.Unit{ID: unitID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := s.store.InsertReadings(ctx, unitID, raws); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	importID := uuid.New().String()
	rec := db.ImportRecord{
		ID:           importID,
		UnitID:       unitID,
		Filename:     filename,
		TotalRows:    rep.Total,
		AcceptedRows: rep.Accepted,
		RejectedRows: rep.Rejected,
	}
	if err := s.store.RecordImport(ctx, rec); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.metrics.ImportProcessed(rep.Accepted, rep.Rejected)

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"import_id": importID,
			"unit_id":   unitID,
			"report":    rep,
		},
	})
}

// handleV1ListImports returns the paginated import ledger for a unit
// GET /api/v1/units/:id/imports?page=1&limit=20&start=2024-01-01T00:00:00Z&end=2024-12-31T23:59:59Z
func (s *Server) handleV1ListImports(c *gin.Context) {
	unitID := c.Param("id")
	if unitID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unit id is required"})
		return
	}

	// Parse pagination parameters
	page := 1
	if p := c.Query("page"); p != "" {
		if val, err := strconv.Atoi(p); err == nil && val > 0 {
			page = val
		}
	}

	limit := 20
	if l := c.Query("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 && val <= 100 {
			limit = val
		}
	}

	offset := (page - 1) * limit

	// Parse optional time range filters
	var startTime, endTime *time.Time
	if start := c.Query("start"); start != "" {
		if t, err := time.Parse(time.RFC3339, start); err == nil {
			startTime = &t
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start time format, expected RFC3339"})
			return
		}
	}
	if end := c.Query("end"); end != "" {
		if t, err := time.Parse(time.RFC3339, end); err == nil {
			endTime = &t
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end time format, expected RFC3339"})
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	result, err := s.store.ListImports(ctx, unitID, limit, offset, startTime, endTime)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": result.Imports,
		"pagination": gin.H{
			"page":        page,
			"limit":       limit,
			"total_count": result.TotalCount,
			"total_pages": (result.TotalCount + limit - 1) / limit,
		},
	})
}
