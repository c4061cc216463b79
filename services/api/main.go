package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/tenantlabs/heatwatch/services/api/config"
	"github.com/tenantlabs/heatwatch/services/api/db"
	httpserver "github.com/tenantlabs/heatwatch/services/api/http"
	"github.com/tenantlabs/heatwatch/services/api/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connection error: %v", err)
	}
	defer store.Close()

	srv := httpserver.New(cfg, store, metrics.New())
	log.Printf("REST API listening on %s (tz=%s)", cfg.ListenAddr(), cfg.Timezone)

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
