package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tribute-wall/internal/domain"
)

// VisitorStore persists simulated sessions by token.
type VisitorStore interface {
	Put(ctx context.Context, token string, v domain.Visitor) error
	Get(ctx context.Context, token string) (domain.Visitor, error)
	Delete(ctx context.Context, token string) error
}

// SignInRecorder counts sign-ins. *metrics.Metrics satisfies it.
type SignInRecorder interface {
	SignedIn()
}

// SessionOptions tunes a SessionService. The zero value is usable.
type SessionOptions struct {
	// Delay is the artificial pause before a sign-in completes.
	Delay time.Duration

	Recorder SignInRecorder
	Logger   *slog.Logger

	// NewToken and Sleep default to uuid.NewString and time.Sleep.
	NewToken func() string
	Sleep    func(time.Duration)
}

// SessionService implements the simulated sign-in that gates tribute posting
// in some deployments. The password is required but never checked or stored.
type SessionService struct {
	visitors VisitorStore
	opts     SessionOptions
}

// NewSessionService constructs a SessionService backed by visitors.
func NewSessionService(visitors VisitorStore, opts SessionOptions) *SessionService {
	if opts.NewToken == nil {
		opts.NewToken = uuid.NewString
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &SessionService{visitors: visitors, opts: opts}
}

// SignIn validates the form, pauses, and issues a session token for the visitor.
// Returns domain.ErrValidation when any field is blank after trimming.
func (s *SessionService) SignIn(ctx context.Context, fullName, password, relationship string) (string, domain.Visitor, error) {
	v := domain.Visitor{
		FullName:     strings.TrimSpace(fullName),
		Relationship: strings.TrimSpace(relationship),
	}
	if !v.Complete() || strings.TrimSpace(password) == "" {
		return "", domain.Visitor{}, fmt.Errorf("service.SessionService.SignIn: %w: please complete all fields to continue", domain.ErrValidation)
	}

	if s.opts.Delay > 0 {
		s.opts.Sleep(s.opts.Delay)
	}

	token := s.opts.NewToken()
	if err := s.visitors.Put(ctx, token, v); err != nil {
		return "", domain.Visitor{}, fmt.Errorf("service.SessionService.SignIn: %w", err)
	}
	if s.opts.Recorder != nil {
		s.opts.Recorder.SignedIn()
	}
	return token, v, nil
}

// Lookup returns the visitor signed in under token.
// Unknown tokens yield domain.ErrUnauthorized. Sessions that are malformed or
// missing a field are removed and also yield domain.ErrUnauthorized, so the
// visitor is sent back to sign in. Any other store error is returned as is and
// leaves the session in place.
func (s *SessionService) Lookup(ctx context.Context, token string) (domain.Visitor, error) {
	if token == "" {
		return domain.Visitor{}, fmt.Errorf("service.SessionService.Lookup: %w", domain.ErrUnauthorized)
	}

	v, err := s.visitors.Get(ctx, token)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.Visitor{}, fmt.Errorf("service.SessionService.Lookup: %w", domain.ErrUnauthorized)
	case errors.Is(err, domain.ErrMalformed):
		s.opts.Logger.ErrorContext(ctx, "error parsing session, clearing it", "error", err)
		s.discard(ctx, token)
		return domain.Visitor{}, fmt.Errorf("service.SessionService.Lookup: %w", domain.ErrUnauthorized)
	case err != nil:
		return domain.Visitor{}, fmt.Errorf("service.SessionService.Lookup: %w", err)
	case !v.Complete():
		s.opts.Logger.WarnContext(ctx, "incomplete session, clearing it")
		s.discard(ctx, token)
		return domain.Visitor{}, fmt.Errorf("service.SessionService.Lookup: %w", domain.ErrUnauthorized)
	}
	return v, nil
}

// SignOut ends the session. Signing out an unknown token is not an error.
func (s *SessionService) SignOut(ctx context.Context, token string) error {
	if err := s.visitors.Delete(ctx, token); err != nil {
		return fmt.Errorf("service.SessionService.SignOut: %w", err)
	}
	return nil
}

func (s *SessionService) discard(ctx context.Context, token string) {
	if err := s.visitors.Delete(ctx, token); err != nil {
		s.opts.Logger.ErrorContext(ctx, "error removing session", "error", err)
	}
}
