package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLiteFacility is a Facility persisted to a single SQLite file.
type SQLiteFacility struct {
	db *sql.DB
}

// NewSQLiteFacility opens (creating if needed) the database at path and
// ensures the kv_entries table exists.
func NewSQLiteFacility(path string) (*SQLiteFacility, error) {
	if path == "" {
		path = "tributewall.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("repo.NewSQLiteFacility: create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("repo.NewSQLiteFacility: open: %w", err)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY under load.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv_entries (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("repo.NewSQLiteFacility: create table: %w", err)
	}
	return &SQLiteFacility{db: db}, nil
}

// Get reads a single entry by key.
func (f *SQLiteFacility) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := f.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("repo.SQLiteFacility.Get: %w", err)
	}
	return value, true, nil
}

// Set upserts an entry.
func (f *SQLiteFacility) Set(ctx context.Context, key, value string) error {
	const q = `
		INSERT INTO kv_entries (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
	if _, err := f.db.ExecContext(ctx, q, key, value); err != nil {
		return fmt.Errorf("repo.SQLiteFacility.Set: %w", err)
	}
	return nil
}

// Remove deletes an entry. Missing keys are ignored.
func (f *SQLiteFacility) Remove(ctx context.Context, key string) error {
	if _, err := f.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("repo.SQLiteFacility.Remove: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (f *SQLiteFacility) Close() error {
	return f.db.Close()
}
