package service

import (
	"context"
	"time"

	"github.com/pkordes/tribute-wall/internal/domain"
)

// ExportSource is the part of TributeWall the export reads from.
type ExportSource interface {
	Tributes() []domain.Tribute
	IsSeed(id string) bool
}

// ExportService flattens the merged tribute feed for download.
type ExportService struct {
	wall ExportSource
}

// NewExportService constructs an ExportService over wall.
func NewExportService(wall ExportSource) *ExportService {
	return &ExportService{wall: wall}
}

// Export returns one ExportRow per tribute, newest first.
// Always returns a non-nil slice.
func (s *ExportService) Export(_ context.Context) ([]domain.ExportRow, error) {
	tributes := s.wall.Tributes()
	rows := make([]domain.ExportRow, 0, len(tributes))
	for _, t := range tributes {
		rows = append(rows, domain.ExportRow{
			ID:              t.ID,
			Name:            t.Name,
			Relationship:    t.Relationship,
			Message:         t.Message,
			Timestamp:       t.Timestamp,
			PostedAt:        t.PostedAt().Format(time.RFC3339),
			AttachmentType:  string(t.AttachmentType),
			AttachmentValue: t.AttachmentValue,
			Seed:            s.wall.IsSeed(t.ID),
		})
	}
	return rows, nil
}
