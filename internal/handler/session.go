package handler

import (
	"errors"
	"net/http"

	"github.com/pkordes/tribute-wall/internal/domain"
)

// CreateSession handles POST /session (simulated sign-in).
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body SignInRequest
	if err := decodeJSON(r, &body); err != nil {
		writeDecodeError(w, err)
		return
	}

	token, v, err := s.sessions.SignIn(r.Context(), body.FullName, body.Password, body.Relationship)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
			return
		}
		s.writeInternal(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, SessionResponse{Token: token, Visitor: visitorToResponse(v)})
}

// GetSession handles GET /session.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	v, err := s.sessions.Lookup(r.Context(), bearerToken(r))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeJSON(w, http.StatusUnauthorized, unauthorizedBody("not signed in"))
			return
		}
		s.writeInternal(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{Visitor: visitorToResponse(v)})
}

// DeleteSession handles DELETE /session. Signing out without a session is a no-op.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if token := bearerToken(r); token != "" {
		if err := s.sessions.SignOut(r.Context(), token); err != nil {
			s.writeInternal(w, r, err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func visitorToResponse(v domain.Visitor) Visitor {
	return Visitor{FullName: v.FullName, Relationship: v.Relationship}
}
