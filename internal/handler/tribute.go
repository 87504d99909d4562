package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/tribute-wall/internal/domain"
)

// postedNotice is the confirmation toast returned with every accepted tribute.
var postedNotice = Notice{Message: "Tribute posted successfully!", DismissAfterMs: 3000}

// ListTributes handles GET /tributes.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTributes(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	if err := runtime.BindQueryParameter("form", true, false, "page", r.URL.Query(), &page); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid page parameter"))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid limit parameter"))
		return
	}

	params := domain.NewPaginationParams(page, limit)
	tributes, total := s.tributes.Feed(params)

	data := make([]Tribute, len(tributes))
	for i, t := range tributes {
		data[i] = s.tributeToResponse(t)
	}
	writeJSON(w, http.StatusOK, TributeFeed{
		Data: data,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
		State: s.tributes.State(),
	})
}

// CreateTribute handles POST /tributes.
func (s *Server) CreateTribute(w http.ResponseWriter, r *http.Request) {
	var body CreateTributeRequest
	if err := decodeJSON(r, &body); err != nil {
		writeDecodeError(w, err)
		return
	}
	n := requestToNewTribute(body)

	if s.opts.RequireSignIn {
		v, err := s.sessions.Lookup(r.Context(), bearerToken(r))
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				writeJSON(w, http.StatusUnauthorized, unauthorizedBody("please sign in to leave a tribute"))
				return
			}
			s.writeInternal(w, r, err)
			return
		}
		n.Name = v.FullName
		n.Relationship = v.Relationship
	}

	created, err := s.tributes.AddTribute(r.Context(), n)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		case errors.Is(err, domain.ErrInvalidTransition):
			writeJSON(w, http.StatusConflict, conflictBody("the wall is not accepting tributes yet"))
		default:
			s.writeInternal(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, CreateTributeResponse{
		Tribute: s.tributeToResponse(created),
		State:   s.tributes.State(),
		Notice:  postedNotice,
	})
}

// AcknowledgeTribute handles POST /tributes/acknowledge.
// It dismisses the confirmation of the last accepted tribute.
func (s *Server) AcknowledgeTribute(w http.ResponseWriter, r *http.Request) {
	if err := s.tributes.Acknowledge(); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			writeJSON(w, http.StatusConflict, conflictBody("no tribute is awaiting acknowledgement"))
			return
		}
		s.writeInternal(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, StateResponse{State: s.tributes.State()})
}

// ClearTributes handles DELETE /tributes. It answers 404 unless admin routes
// are enabled, so the route is invisible in ordinary deployments.
func (s *Server) ClearTributes(w http.ResponseWriter, r *http.Request) {
	if !s.opts.AdminEnabled {
		writeJSON(w, http.StatusNotFound, notFoundBody("route not found"))
		return
	}
	s.tributes.ClearUserTributes(r.Context())
	s.opts.Logger.InfoContext(r.Context(), "user tributes cleared")
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// requestToNewTribute converts a CreateTributeRequest body into a domain.NewTribute.
// Trimming and validation happen in the service.
func requestToNewTribute(body CreateTributeRequest) domain.NewTribute {
	return domain.NewTribute{
		Name:            body.Name,
		Relationship:    body.Relationship,
		Message:         body.Message,
		AttachmentType:  domain.AttachmentType(body.AttachmentType),
		AttachmentValue: body.AttachmentValue,
	}
}

// tributeToResponse converts a domain.Tribute into the API representation.
func (s *Server) tributeToResponse(t domain.Tribute) Tribute {
	return Tribute{
		ID:              t.ID,
		Name:            t.Name,
		Relationship:    t.Relationship,
		Message:         t.Message,
		Timestamp:       t.Timestamp,
		PostedAt:        t.PostedAt(),
		AttachmentType:  string(t.AttachmentType),
		AttachmentValue: t.AttachmentValue,
		Seed:            s.tributes.IsSeed(t.ID),
	}
}

// bearerToken returns the token of an "Authorization: Bearer <token>" header,
// or "" when the header is absent or uses another scheme.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}
