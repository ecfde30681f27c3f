package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Conversion statuses recorded in the history store.
const (
	StatusConverted = "converted"
	StatusSkipped   = "skipped"
	StatusError     = "error"
)

// ConversionRecord is one row of the conversions table: a single file run
// through the engine.
type ConversionRecord struct {
	ID            int64
	CorrelationID string
	SourcePath    string
	OutputPath    string
	Width         int
	Height        int
	Crushed       bool
	InputSHA256   string
	OutputSHA256  string
	InputBytes    int64
	OutputBytes   int64
	DurationMS    int64
	Status        string
	ErrorMessage  string
	CreatedAt     time.Time
}

// Repository provides typed access to the conversions table.
type Repository struct {
	conn *sql.DB
}

// NewRepository wraps a database connection.
func NewRepository(database *Database) *Repository {
	return &Repository{conn: database.DB()}
}

// InsertConversion stores one conversion outcome and fills in the record's
// generated ID.
func (r *Repository) InsertConversion(ctx context.Context, rec *ConversionRecord) error {
	const query = `
		INSERT INTO conversions (
			correlation_id, source_path, output_path, width, height, crushed,
			input_sha256, output_sha256, input_bytes, output_bytes,
			duration_ms, status, error_message
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := r.conn.ExecContext(ctx, query,
		rec.CorrelationID, rec.SourcePath, rec.OutputPath, rec.Width, rec.Height,
		rec.Crushed, rec.InputSHA256, rec.OutputSHA256, rec.InputBytes,
		rec.OutputBytes, rec.DurationMS, rec.Status, rec.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("inserting conversion record: %w", err)
	}
	rec.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted id: %w", err)
	}
	return nil
}

// RecentConversions returns up to limit records, newest first.
func (r *Repository) RecentConversions(ctx context.Context, limit int) ([]ConversionRecord, error) {
	const query = `
		SELECT id, correlation_id, source_path, output_path, width, height,
			crushed, input_sha256, output_sha256, input_bytes, output_bytes,
			duration_ms, status, error_message, created_at
		FROM conversions
		ORDER BY id DESC
		LIMIT ?`

	rows, err := r.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent conversions: %w", err)
	}
	defer rows.Close()

	var records []ConversionRecord
	for rows.Next() {
		var rec ConversionRecord
		if err := rows.Scan(
			&rec.ID, &rec.CorrelationID, &rec.SourcePath, &rec.OutputPath,
			&rec.Width, &rec.Height, &rec.Crushed, &rec.InputSHA256,
			&rec.OutputSHA256, &rec.InputBytes, &rec.OutputBytes,
			&rec.DurationMS, &rec.Status, &rec.ErrorMessage, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning conversion record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// FindBySourcePath returns the most recent record for a source file, or nil
// when the file has never been converted.
func (r *Repository) FindBySourcePath(ctx context.Context, sourcePath string) (*ConversionRecord, error) {
	const query = `
		SELECT id, correlation_id, source_path, output_path, width, height,
			crushed, input_sha256, output_sha256, input_bytes, output_bytes,
			duration_ms, status, error_message, created_at
		FROM conversions
		WHERE source_path = ?
		ORDER BY id DESC
		LIMIT 1`

	var rec ConversionRecord
	err := r.conn.QueryRowContext(ctx, query, sourcePath).Scan(
		&rec.ID, &rec.CorrelationID, &rec.SourcePath, &rec.OutputPath,
		&rec.Width, &rec.Height, &rec.Crushed, &rec.InputSHA256,
		&rec.OutputSHA256, &rec.InputBytes, &rec.OutputBytes,
		&rec.DurationMS, &rec.Status, &rec.ErrorMessage, &rec.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying conversion for %s: %w", sourcePath, err)
	}
	return &rec, nil
}

// CountByStatus returns how many records exist per status.
func (r *Repository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.conn.QueryContext(ctx, `SELECT status, COUNT(*) FROM conversions GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("counting conversions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning status count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
