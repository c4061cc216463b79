package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tenantlabs/heatwatch/services/watcher/internal/models"
)

// LastOutdoor loads the most recent sample stored under the given source
// label, or nil when none exists yet.
func LastOutdoor(ctx context.Context, pool *pgxpool.Pool, station string) (*models.LastSample, error) {
	row := pool.QueryRow(ctx, `
SELECT ts, temp_f
FROM heatwatch.outdoor_readings
WHERE source = $1
ORDER BY ts DESC
LIMIT 1`, station)

	var last models.LastSample
	if err := row.Scan(&last.TS, &last.TempF); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &last, nil
}

// InsertOutdoor writes one outdoor sample. Re-running against the same feed
// timestamp updates in place.
func InsertOutdoor(ctx context.Context, pool *pgxpool.Pool, cand models.SampleCandidate, station string) error {
	_, err := pool.Exec(ctx, `
INSERT INTO heatwatch.outdoor_readings (ts, temp_f, source, ingested_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (ts, source) DO UPDATE
SET temp_f = EXCLUDED.temp_f,
    ingested_at = NOW()`, cand.TS, cand.TempF, station)
	return err
}
