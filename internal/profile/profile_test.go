package profile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tribute-wall/internal/domain"
	"github.com/pkordes/tribute-wall/internal/profile"
)

func TestDefault(t *testing.T) {
	s, err := profile.Default()

	require.NoError(t, err)
	assert.Equal(t, "Lerato Nomvula Mnguni", s.FullName)
	assert.Equal(t, "1976 – 2025", s.Lifespan)
	assert.Len(t, s.About.Paragraphs, 5)
	require.Len(t, s.Favorites.Categories, 6)
	assert.Equal(t, "Music2", s.Favorites.Categories[0].Icon)
	require.Len(t, s.Seeds, 1)
	assert.Equal(t, "seed-family", s.Seeds[0].ID)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	doc := `
fullName: Thabo Mnguni
lifespan: "1950 – 2020"
seeds:
  - id: s1
    name: Naledi
    message: First
    timestamp: 1000
  - id: s2
    name: Sipho
    message: Second
    timestamp: 2000
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	s, err := profile.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "Thabo Mnguni", s.FullName)
	require.Len(t, s.Seeds, 2)
	// Seeds are returned newest first.
	assert.Equal(t, "s2", s.Seeds[0].ID)
	assert.Equal(t, int64(2000), s.Seeds[0].Timestamp)
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	s, err := profile.Load("")

	require.NoError(t, err)
	assert.Equal(t, "Lerato Nomvula Mnguni", s.FullName)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := profile.Load(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"missing name":       "lifespan: x\n",
		"unknown field":      "fullName: A\nnickname: B\n",
		"duplicate category": "fullName: A\nfavorites:\n  categories:\n    - id: music\n    - id: music\n",
		"seed without id":    "fullName: A\nseeds:\n  - name: B\n    timestamp: 1\n",
		"duplicate seed":     "fullName: A\nseeds:\n  - id: s\n  - id: s\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := profile.Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestParse_ValidationErrorsWrapSentinel(t *testing.T) {
	_, err := profile.Parse([]byte("lifespan: x\n"))

	assert.ErrorIs(t, err, domain.ErrValidation)
}
