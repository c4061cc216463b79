package db

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tenantlabs/heatwatch/internal/outdoor"
	"github.com/tenantlabs/heatwatch/internal/readings"
)

// Store wraps database access helpers.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by a pgx pool.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Unit represents a monitored apartment unit.
type Unit struct {
	ID        string    `json:"id"`
	Name      *string   `json:"name,omitempty"`
	Address   *string   `json:"address,omitempty"`
	Apartment *string   `json:"apartment,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const listUnitsSQL = `
    SELECT id, name, address, apartment, notes, created_at, updated_at
    FROM heatwatch.units
    ORDER BY id
`

// ListUnits returns all unit metadata.
func (s *Store) ListUnits(ctx context.Context) ([]Unit, error) {
	rows, err := s.pool.Query(ctx, listUnitsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	units := make([]Unit, 0)
	for rows.Next() {
		var unit Unit
		if err := rows.Scan(
			&unit.ID,
			&unit.Name,
			&unit.Address,
			&unit.Apartment,
			&unit.Notes,
			&unit.CreatedAt,
			&unit.UpdatedAt,
		); err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, rows.Err()
}

const getUnitSQL = `
    SELECT id, name, address, apartment, notes, created_at, updated_at
    FROM heatwatch.units
    WHERE id = $1
`

// GetUnit returns one unit, or nil when the id is unknown.
func (s *Store) GetUnit(ctx context.Context, unitID string) (*Unit, error) {
	row := s.pool.QueryRow(ctx, getUnitSQL, unitID)

	var unit Unit
	if err := row.Scan(
		&unit.ID,
		&unit.Name,
		&unit.Address,
		&unit.Apartment,
		&unit.Notes,
		&unit.CreatedAt,
		&unit.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &unit, nil
}

const upsertUnitSQL = `
    INSERT INTO heatwatch.units (id, name, address, apartment, notes, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
    ON CONFLICT (id) DO UPDATE
    SET name = COALESCE(EXCLUDED.name, heatwatch.units.name),
        address = COALESCE(EXCLUDED.address, heatwatch.units.address),
        apartment = COALESCE(EXCLUDED.apartment, heatwatch.units.apartment),
        notes = COALESCE(EXCLUDED.notes, heatwatch.units.notes),
        updated_at = NOW()
`

// UpsertUnit inserts or updates a unit. Nil fields never clobber existing
// values, so an import against a known unit keeps its registered name.
func (s *Store) UpsertUnit(ctx context.Context, unit Unit) error {
	_, err := s.pool.Exec(ctx, upsertUnitSQL,
		unit.ID, unit.Name, unit.Address, unit.Apartment, unit.Notes)
	return err
}

// ReadingQuery holds filters for retrieving indoor readings.
type ReadingQuery struct {
	UnitID string
	Since  *time.Time
	Until  *time.Time
	Limit  int
}

const readingsBase = `
    SELECT ts, indoor_f, humidity, radiator_f
    FROM heatwatch.readings
    WHERE unit_id = $1
`

// FetchReadings returns raw indoor readings for a unit, ascending by time.
func (s *Store) FetchReadings(ctx context.Context, q ReadingQuery) ([]readings.Raw, error) {
	args := []any{q.UnitID}
	clause := ""
	argPos := 2
	if q.Since != nil {
		clause += " AND ts >= $" + strconv.Itoa(argPos)
		args = append(args, *q.Since)
		argPos++
	}
	if q.Until != nil {
		clause += " AND ts <= $" + strconv.Itoa(argPos)
		args = append(args, *q.Until)
		argPos++
	}
	order := " ORDER BY ts"
	limit := ""
	if q.Limit > 0 {
		limit = " LIMIT $" + strconv.Itoa(argPos)
		args = append(args, q.Limit)
	}

	sql := readingsBase + clause + order + limit

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]readings.Raw, 0)
	for rows.Next() {
		var r readings.Raw
		if err := rows.Scan(
			&r.Timestamp,
			&r.IndoorF,
			&r.Humidity,
			&r.RadiatorF,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const insertReadingSQL = `
    INSERT INTO heatwatch.readings (unit_id, ts, indoor_f, humidity, radiator_f, created_at)
    VALUES ($1, $2, $3, $4, $5, NOW())
    ON CONFLICT (unit_id, ts) DO UPDATE
    SET indoor_f = EXCLUDED.indoor_f,
        humidity = EXCLUDED.humidity,
        radiator_f = EXCLUDED.radiator_f
`

// InsertReadings writes a batch of readings for one unit. Re-importing the
// same timestamps overwrites rather than duplicating.
func (s *Store) InsertReadings(ctx context.Context, unitID string, raws []readings.Raw) error {
	if len(raws) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, r := range raws {
		batch.Queue(insertReadingSQL, unitID, r.Timestamp, r.IndoorF, r.Humidity, r.RadiatorF)
	}

	res := s.pool.SendBatch(ctx, batch)
	defer res.Close()

	for range raws {
		if _, err := res.Exec(); err != nil {
			return err
		}
	}

	return nil
}

const outdoorRangeSQL = `
    SELECT ts, temp_f, source
    FROM heatwatch.outdoor_readings
    WHERE ts >= $1 AND ts <= $2
    ORDER BY ts
`

// FetchOutdoor returns outdoor samples in [since, until], ascending by time.
func (s *Store) FetchOutdoor(ctx context.Context, since, until time.Time) ([]outdoor.Sample, error) {
	rows, err := s.pool.Query(ctx, outdoorRangeSQL, since, until)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	samples := make([]outdoor.Sample, 0)
	for rows.Next() {
		var sm outdoor.Sample
		if err := rows.Scan(&sm.Timestamp, &sm.TempF, &sm.Source); err != nil {
			return nil, err
		}
		samples = append(samples, sm)
	}
	return samples, rows.Err()
}

const latestOutdoorSQL = `
    SELECT ts, temp_f, source
    FROM heatwatch.outdoor_readings
    ORDER BY ts DESC
    LIMIT 1
`

// LatestOutdoor returns the most recent outdoor sample, or nil when none
// exists yet.
func (s *Store) LatestOutdoor(ctx context.Context) (*outdoor.Sample, error) {
	row := s.pool.QueryRow(ctx, latestOutdoorSQL)

	var sm outdoor.Sample
	if err := row.Scan(&sm.Timestamp, &sm.TempF, &sm.Source); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &sm, nil
}

// UnitLatest is a unit joined with its most recent reading.
type UnitLatest struct {
	UnitID    string    `json:"unit_id"`
	Name      *string   `json:"name,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	IndoorF   float64   `json:"indoor_f"`
	Humidity  float64   `json:"humidity"`
	RadiatorF *float64  `json:"radiator_f,omitempty"`
}

const latestReadingsSQL = `
    SELECT DISTINCT ON (r.unit_id) r.unit_id, u.name, r.ts, r.indoor_f, r.humidity, r.radiator_f
    FROM heatwatch.readings r
    JOIN heatwatch.units u ON u.id = r.unit_id
    ORDER BY r.unit_id, r.ts DESC
`

// LatestReadings returns the newest reading per unit.
func (s *Store) LatestReadings(ctx context.Context) ([]UnitLatest, error) {
	rows, err := s.pool.Query(ctx, latestReadingsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UnitLatest, 0)
	for rows.Next() {
		var ul UnitLatest
		if err := rows.Scan(
			&ul.UnitID,
			&ul.Name,
			&ul.Timestamp,
			&ul.IndoorF,
			&ul.Humidity,
			&ul.RadiatorF,
		); err != nil {
			return nil, err
		}
		out = append(out, ul)
	}
	return out, rows.Err()
}
