package config

import (
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"os"
	"strconv"
	"time"
)

// Config holds environment-driven settings for the REST API.
type Config struct {
	DatabaseURL   string
	Port          int
	BearerToken   string
	DefaultDays   int
	Timezone      string
	Location      *time.Location
	GapTolerance  time.Duration
	MaxImportRows int
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		Port:          8080,
		DefaultDays:   7,
		Timezone:      "America/New_York",
		GapTolerance:  5 * time.Minute,
		MaxImportRows: 100000,
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
	}

	if daysStr := os.Getenv("API_DEFAULT_DAYS"); daysStr != "" {
		if days, err := strconv.Atoi(daysStr); err == nil && days > 0 {
			cfg.DefaultDays = days
		} else {
			return cfg, fmt.Errorf("invalid API_DEFAULT_DAYS: %s", daysStr)
		}
	}

	// Timezone the heating ordinance is evaluated in. Season, daytime hours
	// and daily grouping all follow this zone.
	if tz := os.Getenv("HEAT_TZ"); tz != "" {
		cfg.Timezone = tz
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return cfg, fmt.Errorf("invalid HEAT_TZ: %s", cfg.Timezone)
	}
	cfg.Location = loc

	if gapStr := os.Getenv("GAP_TOLERANCE_MINUTES"); gapStr != "" {
		if gap, err := strconv.Atoi(gapStr); err == nil && gap >= 0 {
			cfg.GapTolerance = time.Duration(gap) * time.Minute
		} else {
			return cfg, fmt.Errorf("invalid GAP_TOLERANCE_MINUTES: %s", gapStr)
		}
	}

	if rowsStr := os.Getenv("MAX_IMPORT_ROWS"); rowsStr != "" {
		if rows, err := strconv.Atoi(rowsStr); err == nil && rows > 0 {
			cfg.MaxImportRows = rows
		} else {
			return cfg, fmt.Errorf("invalid MAX_IMPORT_ROWS: %s", rowsStr)
		}
	}

	cfg.BearerToken = os.Getenv("API_BEARER_TOKEN")

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
