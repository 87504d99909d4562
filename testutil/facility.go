package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/pkordes/tribute-wall/internal/repo"
)

// NewSQLiteFacility opens a SQLite-backed facility in a per-test temporary
// directory. The database is closed when the test finishes.
func NewSQLiteFacility(t *testing.T) *repo.SQLiteFacility {
	t.Helper()

	f, err := repo.NewSQLiteFacility(filepath.Join(t.TempDir(), "tributes.db"))
	if err != nil {
		t.Fatalf("testutil.NewSQLiteFacility: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

// NewPostgresFacility returns a Postgres-backed facility bound to a
// transaction that is rolled back when the test finishes.
// Skips the test when TEST_DATABASE_URL is not set.
func NewPostgresFacility(t *testing.T) repo.Facility {
	t.Helper()
	pool := newPool(t)

	tx, err := pool.Begin(context.Background())
	if err != nil {
		t.Fatalf("testutil.NewPostgresFacility: begin: %v", err)
	}
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })

	return repo.NewPostgresFacility(tx)
}

// NewBufferLogger returns a JSON slog.Logger writing into the returned buffer,
// for tests that assert on logged diagnostics.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, nil)), &buf
}
