package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/rotate/internal/transform"
)

// RunWriter records one run. All writes share a transaction that is
// committed by Finish or discarded by Abort.
type RunWriter struct {
	id   string
	tx   *sql.Tx
	stmt *sql.Stmt
	seq  int64
	done bool
}

// BeginRun starts recording a run with the given id.
// Exactly one of Finish or Abort must be called on the returned writer.
func (s *Store) BeginRun(ctx context.Context, id, inputPath string) (*RunWriter, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin run: begin tx: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, input_path)
		VALUES (?, ?)
	`, id, inputPath); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("begin run: insert: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (run_id, seq, record_id, json, is_valid)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("begin run: prepare: %w", err)
	}

	return &RunWriter{id: id, tx: tx, stmt: stmt}, nil
}

// ID returns the run id.
func (w *RunWriter) ID() string {
	return w.id
}

// Write appends rec as the run's next record.
func (w *RunWriter) Write(ctx context.Context, rec transform.Record) error {
	if w.done {
		return fmt.Errorf("write record: run %s already closed", w.id)
	}
	w.seq++
	if _, err := w.stmt.ExecContext(ctx, w.id, w.seq, rec.ID, rec.JSON, rec.Valid); err != nil {
		return fmt.Errorf("write record %d: %w", w.seq, err)
	}
	return nil
}

// Finish stores the run summary and commits.
func (w *RunWriter) Finish(ctx context.Context, headerEmitted bool, stats transform.Stats) error {
	if w.done {
		return fmt.Errorf("finish run: run %s already closed", w.id)
	}
	w.done = true
	defer w.stmt.Close()

	if _, err := w.tx.ExecContext(ctx, `
		UPDATE runs
		SET header_emitted = ?, lines = ?, records = ?, valid = ?, invalid = ?
		WHERE id = ?
	`, headerEmitted, stats.Lines, stats.Records, stats.Valid, stats.Invalid, w.id); err != nil {
		w.tx.Rollback()
		return fmt.Errorf("finish run: update: %w", err)
	}

	if err := w.tx.Commit(); err != nil {
		return fmt.Errorf("finish run: commit: %w", err)
	}
	return nil
}

// Abort discards everything written for the run. It is a no-op after
// Finish, so it can be deferred.
func (w *RunWriter) Abort() error {
	if w.done {
		return nil
	}
	w.done = true
	w.stmt.Close()
	return w.tx.Rollback()
}
