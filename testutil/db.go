// Package testutil provides shared helpers for facility and migration tests.
// Postgres helpers skip the calling test when TEST_DATABASE_URL is not set, so
// the in-memory and SQLite suites run without a database server.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql

	"github.com/pkordes/tribute-wall/migrations"
)

// DatabaseURLEnv names the variable holding the Postgres test DSN.
const DatabaseURLEnv = "TEST_DATABASE_URL"

// PostgresEnabled reports whether Postgres-backed tests can run.
func PostgresEnabled() bool {
	return os.Getenv(DatabaseURLEnv) != ""
}

// MigrateKVSchema applies every pending migration to the test database so
// the kv_entries table exists before facility tests run. It is meant for
// TestMain, where no *testing.T is available, and is a no-op when Postgres
// tests are disabled.
func MigrateKVSchema(ctx context.Context) error {
	if !PostgresEnabled() {
		return nil
	}
	db, err := openSQLDB(ctx, os.Getenv(DatabaseURLEnv))
	if err != nil {
		return fmt.Errorf("testutil.MigrateKVSchema: %w", err)
	}
	defer db.Close()

	if _, err := migrations.Up(ctx, db); err != nil {
		return fmt.Errorf("testutil.MigrateKVSchema: %w", err)
	}
	return nil
}

// NewSQLDB opens a *sql.DB on the test database through the pgx driver, for
// tests that drive goose directly. It is closed when the test finishes.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := openSQLDB(context.Background(), requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// newPool opens the pool behind NewPostgresFacility.
func newPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.newPool: open pool: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Fatalf("testutil.newPool: ping: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func openSQLDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return db, nil
}

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv(DatabaseURLEnv)
	if dsn == "" {
		t.Skip(DatabaseURLEnv + " not set; skipping Postgres facility test")
	}
	return dsn
}
