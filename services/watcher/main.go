package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tenantlabs/heatwatch/services/watcher/internal/config"
	"github.com/tenantlabs/heatwatch/services/watcher/internal/db"
	"github.com/tenantlabs/heatwatch/services/watcher/internal/meteo"
	"github.com/tenantlabs/heatwatch/services/watcher/internal/utils"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("watcher failed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout+10*time.Second)
	defer cancel()

	client := &http.Client{Timeout: cfg.RequestTimeout}
	retrievalTS := time.Now().UTC().Truncate(time.Second)

	payload, err := meteo.FetchCurrent(ctx, client, cfg.CurrentURL)
	if err != nil {
		return err
	}

	cand, ok := utils.BuildSampleCandidate(payload, retrievalTS)
	if !ok {
		log.Printf("feed returned no temperature (retrieval=%s)", retrievalTS.Format(time.RFC3339))
		return nil
	}
	log.Printf("fetched outdoor sample ts=%s temp=%s", cand.TS.Format(time.RFC3339), utils.TempString(cand.TempF))

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	last, err := db.LastOutdoor(ctx, pool, cfg.Station)
	if err != nil {
		return err
	}

	if !utils.ShouldStore(cand, last, cfg.MinInterval, cfg.ValueEpsilon) {
		log.Printf("no new sample to insert (retrieval=%s)", retrievalTS.Format(time.RFC3339))
		return nil
	}

	if cfg.DryRun {
		log.Printf("dry-run: would insert ts=%s temp=%s", cand.TS.Format(time.RFC3339), utils.TempString(cand.TempF))
		return nil
	}

	if err := db.InsertOutdoor(ctx, pool, cand, cfg.Station); err != nil {
		return err
	}

	log.Printf("inserted outdoor sample ts=%s source=%s", cand.TS.Format(time.RFC3339), cfg.Station)
	return nil
}
