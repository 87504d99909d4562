// Package profile loads the subject profile (header, About, Favorites and
// seed tributes) that a wall deployment is configured for.
package profile

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/tribute-wall/internal/domain"
)

//go:embed default_profile.yaml
var defaultProfile []byte

// Default returns the embedded profile.
func Default() (domain.Subject, error) {
	return Parse(defaultProfile)
}

// Load reads the profile at path, or the embedded default when path is empty.
func Load(path string) (domain.Subject, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Subject{}, fmt.Errorf("profile.Load: %w", err)
	}
	s, err := Parse(b)
	if err != nil {
		return domain.Subject{}, fmt.Errorf("profile.Load %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a YAML profile document.
// Unknown keys are rejected so typos do not silently drop content.
func Parse(b []byte) (domain.Subject, error) {
	dec := yaml.NewDecoder(strings.NewReader(string(b)))
	dec.KnownFields(true)

	var s domain.Subject
	if err := dec.Decode(&s); err != nil {
		return domain.Subject{}, fmt.Errorf("profile.Parse: %w", err)
	}
	if err := validate(s); err != nil {
		return domain.Subject{}, fmt.Errorf("profile.Parse: %w", err)
	}
	domain.SortNewestFirst(s.Seeds)
	return s, nil
}

func validate(s domain.Subject) error {
	if strings.TrimSpace(s.FullName) == "" {
		return fmt.Errorf("%w: fullName is required", domain.ErrValidation)
	}

	categories := make(map[string]bool, len(s.Favorites.Categories))
	for _, c := range s.Favorites.Categories {
		if c.ID == "" {
			return fmt.Errorf("%w: favorite category %q has no id", domain.ErrValidation, c.Title)
		}
		if categories[c.ID] {
			return fmt.Errorf("%w: duplicate favorite category %q", domain.ErrValidation, c.ID)
		}
		categories[c.ID] = true
	}

	seeds := make(map[string]bool, len(s.Seeds))
	for _, t := range s.Seeds {
		if t.ID == "" {
			return fmt.Errorf("%w: seed tribute from %q has no id", domain.ErrValidation, t.Name)
		}
		if seeds[t.ID] {
			return fmt.Errorf("%w: duplicate seed tribute id %q", domain.ErrValidation, t.ID)
		}
		seeds[t.ID] = true
	}
	return nil
}
