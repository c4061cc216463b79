package db

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// ImportRecord is one CSV upload in the import ledger.
type ImportRecord struct {
	ID           string    `json:"id"`
	UnitID       string    `json:"unit_id"`
	Filename     *string   `json:"filename,omitempty"`
	TotalRows    int       `json:"total_rows"`
	AcceptedRows int       `json:"accepted_rows"`
	RejectedRows int       `json:"rejected_rows"`
	CreatedAt    time.Time `json:"created_at"`
}

// ImportsPage is one page of import records with the unpaged total.
type ImportsPage struct {
	Imports    []ImportRecord `json:"imports"`
	TotalCount int            `json:"total_count"`
}

const recordImportSQL = `
    INSERT INTO heatwatch.imports (id, unit_id, filename, total_rows, accepted_rows, rejected_rows, created_at)
    VALUES ($1, $2, $3, $4, $5, $6, NOW())
`

// RecordImport appends one upload to the import ledger.
func (s *Store) RecordImport(ctx context.Context, rec ImportRecord) error {
	_, err := s.pool.Exec(ctx, recordImportSQL,
		rec.ID, rec.UnitID, rec.Filename, rec.TotalRows, rec.AcceptedRows, rec.RejectedRows)
	return err
}

// ListImports returns a page of import records for a unit, newest first,
// optionally bounded to a time range.
func (s *Store) ListImports(ctx context.Context, unitID string, limit, offset int, startTime, endTime *time.Time) (*ImportsPage, error) {
	conditions := []string{"unit_id = $1"}
	args := []any{unitID}

	if startTime != nil {
		conditions = append(conditions, "created_at >= $"+strconv.Itoa(len(args)+1))
		args = append(args, *startTime)
	}
	if endTime != nil {
		conditions = append(conditions, "created_at <= $"+strconv.Itoa(len(args)+1))
		args = append(args, *endTime)
	}

	whereClause := "WHERE " + strings.Join(conditions, " AND ")

	countSQL := "SELECT COUNT(*) FROM heatwatch.imports " + whereClause
	var totalCount int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&totalCount); err != nil {
		return nil, err
	}

	limitPos := len(args) + 1
	offsetPos := len(args) + 2
	args = append(args, limit, offset)

	query := strings.Builder{}
	query.WriteString("SELECT id, unit_id, filename, total_rows, accepted_rows, rejected_rows, created_at ")
	query.WriteString("FROM heatwatch.imports ")
	query.WriteString(whereClause + " ")
	query.WriteString("ORDER BY created_at DESC ")
	query.WriteString("LIMIT $" + strconv.Itoa(limitPos) + " OFFSET $" + strconv.Itoa(offsetPos))

	rows, err := s.pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	imports := make([]ImportRecord, 0, limit)
	for rows.Next() {
		var rec ImportRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.UnitID,
			&rec.Filename,
			&rec.TotalRows,
			&rec.AcceptedRows,
			&rec.RejectedRows,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		imports = append(imports, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &ImportsPage{Imports: imports, TotalCount: totalCount}, nil
}
