package http

import "github.com/gin-gonic/gin"

// registerV1Routes sets up the versioned API surface.
// Groups: /api/v1/units, /api/v1/realtime
func (s *Server) registerV1Routes() {
	v1 := s.engine.Group("/api/v1")
	v1.Use(apiVersionMiddleware()) // Add X-API-Version: v1 header
	if s.cfg.BearerToken != "" {
		v1.Use(bearerAuthMiddleware(s.cfg.BearerToken))
	}

	// Unit endpoints - metadata, ingest and derived series
	units := v1.Group("/units")
	{
		units.GET("", s.handleV1ListUnits)
		units.POST("", s.handleV1CreateUnit)
		units.GET("/:id", s.handleV1GetUnit)
		units.POST("/:id/import", s.handleV1ImportReadings)
		units.GET("/:id/series", s.handleV1Series)
		units.GET("/:id/violations", s.handleV1Violations)
		units.GET("/:id/violations/daily", s.handleV1ViolationsDaily)
		units.GET("/:id/stats", s.handleV1Stats)
		units.GET("/:id/radiator", s.handleV1Radiator)
		units.GET("/:id/imports", s.handleV1ListImports)
	}

	// Realtime endpoints - latest data
	realtime := v1.Group("/realtime")
	{
		realtime.GET("/now", s.handleV1RealtimeNow)
	}
}

// apiVersionMiddleware tags every versioned response with its API version.
func apiVersionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-API-Version", "v1")
		c.Next()
	}
}
