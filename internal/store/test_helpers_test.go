package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/rotate/internal/transform"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// recordRun writes a complete run with the given records.
func recordRun(t *testing.T, s *Store, id, input string, records ...transform.Record) {
	t.Helper()
	ctx := context.Background()

	w, err := s.BeginRun(ctx, id, input)
	if err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}
	stats := transform.Stats{Lines: len(records) + 1}
	for _, rec := range records {
		if err := w.Write(ctx, rec); err != nil {
			t.Fatalf("Write() failed: %v", err)
		}
		stats.Records++
		if rec.Valid {
			stats.Valid++
		} else {
			stats.Invalid++
		}
	}
	if err := w.Finish(ctx, true, stats); err != nil {
		t.Fatalf("Finish() failed: %v", err)
	}
}
