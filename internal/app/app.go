// Package app holds the bootstrap steps shared by the API server and the
// admin CLI: logger construction, storage selection and profile loading.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql

	"github.com/pkordes/tribute-wall/internal/config"
	"github.com/pkordes/tribute-wall/internal/domain"
	"github.com/pkordes/tribute-wall/internal/profile"
	"github.com/pkordes/tribute-wall/internal/repo"
	"github.com/pkordes/tribute-wall/migrations"
)

// NewLogger returns a JSON slog.Logger writing to w at the named level.
// Unknown levels fall back to info.
func NewLogger(w io.Writer, level string) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// Storage is an opened persistence facility plus whatever must be released
// when the process exits.
type Storage struct {
	Facility repo.Facility
	closers  []func()
}

// Close releases every resource opened by OpenStorage, last opened first.
func (s *Storage) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// OpenStorage opens the facility selected by cfg.StorageDriver. For postgres
// it verifies connectivity and applies pending migrations before returning.
func OpenStorage(ctx context.Context, cfg config.Config, log *slog.Logger) (*Storage, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory, "":
		return &Storage{Facility: repo.NewMemoryFacility(cfg.StorageQuotaBytes)}, nil

	case config.DriverSQLite:
		f, err := repo.NewSQLiteFacility(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("app.OpenStorage: %w", err)
		}
		log.Info("sqlite storage opened", "path", cfg.SQLitePath)
		return &Storage{Facility: f, closers: []func(){func() { _ = f.Close() }}}, nil

	case config.DriverPostgres:
		// pgxpool.New does not open connections immediately; the ping does.
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("app.OpenStorage: create pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("app.OpenStorage: ping: %w", err)
		}
		n, err := Migrate(ctx, cfg.DatabaseURL)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("app.OpenStorage: %w", err)
		}
		log.Info("database connection established", "migrations_applied", n)
		return &Storage{Facility: repo.NewPostgresFacility(pool), closers: []func(){pool.Close}}, nil

	case config.DriverS3:
		f, err := repo.NewS3Facility(ctx, repo.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("app.OpenStorage: %w", err)
		}
		log.Info("s3 storage configured", "bucket", cfg.S3Bucket, "region", cfg.S3Region)
		return &Storage{Facility: f}, nil
	}
	return nil, fmt.Errorf("app.OpenStorage: unknown storage driver %q", cfg.StorageDriver)
}

// Migrate applies the embedded goose migrations to the Postgres database at dsn.
func Migrate(ctx context.Context, dsn string) (int, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return 0, fmt.Errorf("app.Migrate: open: %w", err)
	}
	defer db.Close()

	n, err := migrations.Up(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("app.Migrate: %w", err)
	}
	return n, nil
}

// LoadProfile reads the subject profile at cfg.ProfilePath, or the embedded
// default when no path is configured.
func LoadProfile(cfg config.Config) (domain.Subject, error) {
	return profile.Load(cfg.ProfilePath)
}

// ValidationRules maps the configuration onto domain.ValidationRules.
func ValidationRules(cfg config.Config) domain.ValidationRules {
	return domain.ValidationRules{
		RequireRelationship: cfg.RequireRelationship,
		MaxMessageLength:    cfg.MaxMessageLength,
	}
}
