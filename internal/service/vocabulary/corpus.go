package vocabulary

import (
	"context"
	"fmt"
	"strings"

	"github.com/vocaquiz/backend/internal/domain"
)

// Levels returns the whole system corpus grouped by level.
func (s *Service) Levels(ctx context.Context) (map[string][]string, error) {
	grouped, err := s.corpus.AllLevels(ctx)
	if err != nil {
		return nil, fmt.Errorf("vocabulary.Levels: %w", err)
	}

	return grouped, nil
}

// WordsByLevel returns all corpus words at the given level, alphabetically.
func (s *Service) WordsByLevel(ctx context.Context, level string) ([]string, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return nil, domain.NewValidationError("level", "required")
	}

	words, err := s.corpus.WordsByLevel(ctx, level)
	if err != nil {
		return nil, fmt.Errorf("vocabulary.WordsByLevel: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("level %s: %w", level, domain.ErrNotFound)
	}

	return words, nil
}
