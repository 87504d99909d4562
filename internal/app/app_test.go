package app_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tribute-wall/internal/app"
	"github.com/pkordes/tribute-wall/internal/config"
	"github.com/pkordes/tribute-wall/internal/domain"
	"github.com/pkordes/tribute-wall/internal/repo"
)

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	log := app.NewLogger(&buf, "warn")

	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func TestNewLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := app.NewLogger(&buf, "chatty")

	log.Debug("hidden")
	log.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestOpenStorage_Memory(t *testing.T) {
	var buf bytes.Buffer
	st, err := app.OpenStorage(context.Background(), config.Config{StorageDriver: config.DriverMemory, StorageQuotaBytes: 8}, app.NewLogger(&buf, "info"))
	require.NoError(t, err)
	defer st.Close()

	err = st.Facility.Set(context.Background(), "k", "far too long for the quota")
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
}

func TestOpenStorage_SQLite(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "data", "walls.db")
	st, err := app.OpenStorage(context.Background(), config.Config{StorageDriver: config.DriverSQLite, SQLitePath: path}, app.NewLogger(&buf, "info"))
	require.NoError(t, err)

	require.NoError(t, st.Facility.Set(context.Background(), "k", "v"))
	st.Close()

	_, statErr := os.Stat(path)
	require.NoError(t, statErr)
	_, ok := st.Facility.(*repo.SQLiteFacility)
	assert.True(t, ok)
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	var buf bytes.Buffer
	_, err := app.OpenStorage(context.Background(), config.Config{StorageDriver: "redis"}, app.NewLogger(&buf, "info"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestLoadProfile(t *testing.T) {
	subject, err := app.LoadProfile(config.Config{})
	require.NoError(t, err)
	assert.Equal(t, "Lerato Nomvula Mnguni", subject.FullName)

	_, err = app.LoadProfile(config.Config{ProfilePath: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestValidationRules(t *testing.T) {
	rules := app.ValidationRules(config.Config{RequireRelationship: false, MaxMessageLength: 42})
	assert.Equal(t, domain.ValidationRules{RequireRelationship: false, MaxMessageLength: 42}, rules)
}
