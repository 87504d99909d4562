package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkordes/tribute-wall/internal/domain"
)

// VisitorKeyPrefix namespaces simulated sign-in sessions. Each session token
// gets its own slot: VisitorKeyPrefix + "_" + token.
const VisitorKeyPrefix = "tributeWall_mockUser_v1"

// VisitorRepo persists simulated sign-in sessions in a Facility.
type VisitorRepo struct {
	kv Facility
}

// NewVisitorRepo constructs a VisitorRepo backed by kv.
func NewVisitorRepo(kv Facility) *VisitorRepo {
	return &VisitorRepo{kv: kv}
}

func visitorKey(token string) string {
	return VisitorKeyPrefix + "_" + token
}

// Put stores v under token, replacing any previous session.
func (r *VisitorRepo) Put(ctx context.Context, token string, v domain.Visitor) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("repo.VisitorRepo.Put: %w", err)
	}
	if err := r.kv.Set(ctx, visitorKey(token), string(b)); err != nil {
		return fmt.Errorf("repo.VisitorRepo.Put: %w: %w", domain.ErrPersistenceWrite, err)
	}
	return nil
}

// Get returns the session stored under token.
// Returns domain.ErrNotFound if there is none. Read failures wrap
// domain.ErrPersistenceRead; a stored value that does not decode also wraps
// domain.ErrMalformed.
func (r *VisitorRepo) Get(ctx context.Context, token string) (domain.Visitor, error) {
	raw, ok, err := r.kv.Get(ctx, visitorKey(token))
	if err != nil {
		return domain.Visitor{}, fmt.Errorf("repo.VisitorRepo.Get: %w: %w", domain.ErrPersistenceRead, err)
	}
	if !ok {
		return domain.Visitor{}, fmt.Errorf("repo.VisitorRepo.Get: %w", domain.ErrNotFound)
	}
	var v domain.Visitor
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return domain.Visitor{}, fmt.Errorf("repo.VisitorRepo.Get: %w: %w: %w", domain.ErrPersistenceRead, domain.ErrMalformed, err)
	}
	return v, nil
}

// Delete removes the session stored under token.
func (r *VisitorRepo) Delete(ctx context.Context, token string) error {
	if err := r.kv.Remove(ctx, visitorKey(token)); err != nil {
		return fmt.Errorf("repo.VisitorRepo.Delete: %w", err)
	}
	return nil
}
