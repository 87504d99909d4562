package handler

import (
	"net/http"

	"github.com/pkordes/tribute-wall/internal/domain"
)

// GetSubject handles GET /subject.
func (s *Server) GetSubject(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, SubjectResponse{
		FullName:    s.subject.FullName,
		Lifespan:    s.subject.Lifespan,
		PortraitURL: s.subject.PortraitURL,
	})
}

// GetAbout handles GET /subject/about.
func (s *Server) GetAbout(w http.ResponseWriter, _ *http.Request) {
	about := s.subject.About
	if about.Paragraphs == nil {
		about.Paragraphs = []string{}
	}
	writeJSON(w, http.StatusOK, about)
}

// GetFavorites handles GET /subject/favorites.
func (s *Server) GetFavorites(w http.ResponseWriter, _ *http.Request) {
	favs := s.subject.Favorites
	if favs.Categories == nil {
		favs.Categories = []domain.FavoriteCategory{}
	}
	writeJSON(w, http.StatusOK, favs)
}
