package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tenantlabs/heatwatch/services/api/db"
)

// handleV1ListUnits returns all units
// GET /api/v1/units
func (s *Server) handleV1ListUnits(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	units, err := s.store.ListUnits(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": units,
		"meta": gin.H{
			"count": len(units),
		},
	})
}

type createUnitRequest struct {
	ID        string  `json:"id"`
	Name      string  `json:"name" binding:"required"`
	Address   *string `json:"address"`
	Apartment *string `json:"apartment"`
	Notes     *string `json:"notes"`
}

// handleV1CreateUnit registers a unit, generating an id when none is given
// POST /api/v1/units
func (s *Server) handleV1CreateUnit(c *gin.Context) {
	var req createUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	err := s.store.UpsertUnit(ctx, db.Unit{
		ID:        req.ID,
		Name:      &req.Name,
		Address:   req.Address,
		Apartment: req.Apartment,
		Notes:     req.Notes,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	unit, err := s.store.GetUnit(ctx, req.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": unit,
	})
}

// handleV1GetUnit returns details for a specific unit
// GET /api/v1/units/:id
func (s *Server) handleV1GetUnit(c *gin.Context) {
	unitID := c.Param("id")
	if unitID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unit id is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	unit, err := s.store.GetUnit(ctx, unitID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if unit == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unit not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": unit,
	})
}
