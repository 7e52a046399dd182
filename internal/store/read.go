package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/rotate/internal/transform"
)

// ErrRunNotFound is returned when a run id is not in the store.
var ErrRunNotFound = errors.New("store: run not found")

// Run is a recorded run summary.
type Run struct {
	Seq           int64           `json:"seq"`
	ID            string          `json:"id"`
	InputPath     string          `json:"input_path"`
	HeaderEmitted bool            `json:"header_emitted"`
	Stats         transform.Stats `json:"stats"`
}

const runColumns = `seq, id, input_path, header_emitted, lines, records, valid, invalid`

// ListRuns returns all runs ordered by seq ASC.
//
// Returns an empty slice (not nil) if no runs exist.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun returns the run with the given id, or ErrRunNotFound.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

// ReadRecords returns a run's records in emission order.
//
// Returns an empty slice (not nil) if the run has no records.
func (s *Store) ReadRecords(ctx context.Context, runID string) ([]transform.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT record_id, json, is_valid
		FROM records
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []transform.Record{}
	for rows.Next() {
		var rec transform.Record
		if err := rows.Scan(&rec.ID, &rec.JSON, &rec.Valid); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var run Run
	err := row.Scan(
		&run.Seq,
		&run.ID,
		&run.InputPath,
		&run.HeaderEmitted,
		&run.Stats.Lines,
		&run.Stats.Records,
		&run.Stats.Valid,
		&run.Stats.Invalid,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	return run, nil
}

// RecordRef is a record located within the history.
type RecordRef struct {
	RunID string `json:"run_id"`
	Seq   int64  `json:"seq"`
	transform.Record
}

// FindRecords returns every record emitted under the given CSV id, across
// all runs, ordered by run then by position within the run.
//
// Returns an empty slice (not nil) if the id was never emitted.
func (s *Store) FindRecords(ctx context.Context, recordID string) ([]RecordRef, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT rec.run_id, rec.seq, rec.record_id, rec.json, rec.is_valid
		FROM records rec
		JOIN runs r ON r.id = rec.run_id
		WHERE rec.record_id = ?
		ORDER BY r.seq ASC, rec.seq ASC
	`, recordID)
	if err != nil {
		return nil, fmt.Errorf("query records by id: %w", err)
	}
	defer rows.Close()

	refs := []RecordRef{}
	for rows.Next() {
		var ref RecordRef
		if err := rows.Scan(&ref.RunID, &ref.Seq, &ref.ID, &ref.JSON, &ref.Valid); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return refs, nil
}
