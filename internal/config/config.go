// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage drivers accepted in STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverS3       = "s3"
)

// Config holds all configuration values for the API server and the admin CLI.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:3000"] (Next.js dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StorageDriver selects the persistence facility: memory, sqlite, postgres or s3.
	StorageDriver string

	// DatabaseURL is the Postgres connection string. Required for the postgres driver.
	DatabaseURL string

	// SQLitePath is the database file used by the sqlite driver.
	SQLitePath string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3PathStyle bool

	// StorageQuotaBytes caps a single stored value for the memory driver.
	StorageQuotaBytes int

	// ProfilePath points at a YAML subject profile. Empty means the embedded default.
	ProfilePath string

	RequireSignIn       bool
	RequireRelationship bool
	MaxMessageLength    int

	SubmitDelay time.Duration
	SignInDelay time.Duration

	// AdminEnabled exposes DELETE /tributes.
	AdminEnabled bool

	// MaxBodyBytes limits request bodies.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or the
// first variable that does not parse.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", DriverMemory)),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SQLitePath:    getEnv("SQLITE_PATH", "tributewall.db"),
		S3Bucket:      os.Getenv("S3_BUCKET"),
		S3Region:      getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:    os.Getenv("S3_ENDPOINT"),
		ProfilePath:   os.Getenv("PROFILE_PATH"),
	}

	p := parser{}
	cfg.S3PathStyle = p.bool("S3_PATH_STYLE", false)
	cfg.StorageQuotaBytes = p.int("STORAGE_QUOTA_BYTES", 5<<20)
	cfg.RequireSignIn = p.bool("REQUIRE_SIGN_IN", false)
	cfg.RequireRelationship = p.bool("REQUIRE_RELATIONSHIP", true)
	cfg.MaxMessageLength = p.int("MAX_MESSAGE_LENGTH", 150)
	cfg.SubmitDelay = p.duration("SUBMIT_DELAY", 0)
	cfg.SignInDelay = p.duration("SIGN_IN_DELAY", 750*time.Millisecond)
	cfg.AdminEnabled = p.bool("ADMIN_ENABLED", false)
	cfg.MaxBodyBytes = int64(p.int("MAX_BODY_BYTES", 1<<20))
	if p.err != nil {
		return Config{}, p.err
	}

	var missing []string
	switch cfg.StorageDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case DriverS3:
		if cfg.S3Bucket == "" {
			missing = append(missing, "S3_BUCKET")
		}
	default:
		return Config{}, fmt.Errorf("STORAGE_DRIVER: unknown driver %q", cfg.StorageDriver)
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// parser reads typed variables and keeps the first parse error.
type parser struct {
	err error
}

func (p *parser) bool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v)
		return fallback
	}
	return b
}

func (p *parser) int(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		p.fail(key, v)
		return fallback
	}
	return n
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		p.fail(key, v)
		return fallback
	}
	return d
}

func (p *parser) fail(key, value string) {
	if p.err == nil {
		p.err = fmt.Errorf("%s: invalid value %q", key, value)
	}
}
