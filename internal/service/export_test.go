package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tribute-wall/internal/domain"
	"github.com/pkordes/tribute-wall/internal/service"
)

var _ service.ExportSource = (*service.TributeWall)(nil)

func TestExportService_Export(t *testing.T) {
	store := &mockTributeStore{
		load: func(context.Context, string) []domain.Tribute {
			return []domain.Tribute{{
				ID: "u1", Name: "Thabo", Relationship: "Husband", Timestamp: 1_700_000_000_000,
				AttachmentType: domain.AttachmentPicture, AttachmentValue: "/assets/images/rose.png",
			}}
		},
	}
	wall := service.NewTributeWall(store, subject, seedFixture(), wallOptions())
	wall.Initialize(context.Background())

	rows, err := service.NewExportService(wall).Export(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "u1", rows[0].ID)
	assert.Equal(t, "2023-11-14T22:13:20Z", rows[0].PostedAt)
	assert.Equal(t, "picture", rows[0].AttachmentType)
	assert.Equal(t, "/assets/images/rose.png", rows[0].AttachmentValue)
	assert.False(t, rows[0].Seed)

	assert.Equal(t, "s1", rows[1].ID)
	assert.True(t, rows[1].Seed)
}

func TestExportService_Export_Empty(t *testing.T) {
	wall := service.NewTributeWall(&mockTributeStore{}, subject, nil, wallOptions())
	wall.Initialize(context.Background())

	rows, err := service.NewExportService(wall).Export(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
