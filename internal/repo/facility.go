// Package repo contains all persistence logic for the Tribute Wall service.
// Storage is modelled as a key-value Facility (the server-side stand-in for
// browser local storage) with memory, Postgres, SQLite and S3 backends.
// The tribute and visitor repos are thin typed facades over a Facility.
// No business logic lives here, only key derivation and encoding.
package repo

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkordes/tribute-wall/internal/domain"
)

// Facility is a string key-value store addressed by key.
// Implementations must treat Set as a full overwrite of the previous value.
type Facility interface {
	// Get returns the value stored at key. ok is false when the key is absent;
	// an absent key is not an error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set writes value at key, replacing anything already there.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// DefaultQuotaBytes matches the 5 MiB per-origin budget browsers give local storage.
const DefaultQuotaBytes = 5 << 20

// MemoryFacility is an in-process Facility. It backs the default deployment
// and every unit test.
type MemoryFacility struct {
	mu     sync.RWMutex
	values map[string]string
	quota  int
}

// NewMemoryFacility returns an empty MemoryFacility. A positive quota makes Set
// reject values longer than quota bytes with domain.ErrQuotaExceeded.
func NewMemoryFacility(quota int) *MemoryFacility {
	return &MemoryFacility{values: make(map[string]string), quota: quota}
}

// Get returns the value stored at key.
func (m *MemoryFacility) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores value at key.
func (m *MemoryFacility) Set(_ context.Context, key, value string) error {
	if m.quota > 0 && len(value) > m.quota {
		return fmt.Errorf("repo.MemoryFacility.Set: %d bytes: %w", len(value), domain.ErrQuotaExceeded)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Remove deletes key.
func (m *MemoryFacility) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
