// Package handler implements the HTTP handlers for the Tribute Wall API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, tribute.go, etc.) but share the same Server struct so they
// can access its dependencies. Routes are registered on a chi router by Handler.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/tribute-wall/internal/domain"
)

// TributeServicer defines the wall operations the tribute handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the store or service layer.
type TributeServicer interface {
	State() domain.FlowState
	Feed(p domain.PaginationParams) ([]domain.Tribute, int)
	AddTribute(ctx context.Context, n domain.NewTribute) (domain.Tribute, error)
	Acknowledge() error
	ClearUserTributes(ctx context.Context)
	IsSeed(id string) bool
}

// SessionServicer defines the simulated sign-in operations.
type SessionServicer interface {
	SignIn(ctx context.Context, fullName, password, relationship string) (string, domain.Visitor, error)
	Lookup(ctx context.Context, token string) (domain.Visitor, error)
	SignOut(ctx context.Context, token string) error
}

// ExportServicer defines the export operation.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Options carries deployment switches that change handler behaviour.
type Options struct {
	// RequireSignIn makes POST /tributes take the author from the session.
	RequireSignIn bool

	// AdminEnabled exposes DELETE /tributes.
	AdminEnabled bool

	// OpenAPI, when non-empty, is served at GET /openapi.yaml.
	OpenAPI []byte

	Logger *slog.Logger
}

// Server holds the dependencies of every handler.
type Server struct {
	tributes TributeServicer
	sessions SessionServicer
	export   ExportServicer
	subject  domain.Subject
	opts     Options
}

// NewServer constructs the Server with all its dependencies.
// Any servicer may be nil if the corresponding routes are not exercised.
func NewServer(tributes TributeServicer, sessions SessionServicer, export ExportServicer, subject domain.Subject, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Server{
		tributes: tributes,
		sessions: sessions,
		export:   export,
		subject:  subject,
		opts:     opts,
	}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, domain.Subject{}, Options{})
}

// Handler returns a chi router with every API route registered.
// main.go mounts it at "/" behind the shared middleware stack.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	if len(s.opts.OpenAPI) > 0 {
		r.Get("/openapi.yaml", s.GetOpenAPI)
	}

	r.Route("/subject", func(r chi.Router) {
		r.Get("/", s.GetSubject)
		r.Get("/about", s.GetAbout)
		r.Get("/favorites", s.GetFavorites)
	})

	r.Route("/tributes", func(r chi.Router) {
		r.Get("/", s.ListTributes)
		r.Post("/", s.CreateTribute)
		r.Delete("/", s.ClearTributes)
		r.Post("/acknowledge", s.AcknowledgeTribute)
		r.Get("/export", s.GetExport)
	})

	r.Route("/session", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Get("/", s.GetSession)
		r.Delete("/", s.DeleteSession)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, notFoundBody("route not found"))
	})
	return r
}
