// Package progress implements practice statistics and mistake reports.
package progress

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/vocaquiz/backend/internal/domain"
)

// placeholderTranslation is returned in mistake reports when the translator
// cannot resolve a word. The report itself never fails over a translation.
const placeholderTranslation = "(translation unavailable)"

// progressRepo defines the progress repository interface needed by the service.
type progressRepo interface {
	RecordAnswer(ctx context.Context, userID uuid.UUID, level, word string, correct bool) error
	StatsByUser(ctx context.Context, userID uuid.UUID) ([]domain.LevelStats, error)
	MistakesByUser(ctx context.Context, userID uuid.UUID, level string) ([]domain.Mistake, error)
}

// translator resolves a word to its translation, cache-first.
type translator interface {
	Translate(ctx context.Context, word string) (string, error)
}

// Service implements progress operations.
type Service struct {
	log        *slog.Logger
	records    progressRepo
	translator translator
}

// NewService creates a new progress service instance.
func NewService(logger *slog.Logger, records progressRepo, translator translator) *Service {
	return &Service{
		log:        logger.With("service", "progress"),
		records:    records,
		translator: translator,
	}
}

// RecordAnswer increments exactly one counter of the (user, level, word)
// record, creating it on first contact.
func (s *Service) RecordAnswer(ctx context.Context, userID uuid.UUID, level, word string, correct bool) error {
	level = strings.TrimSpace(level)
	word = domain.NormalizeWord(word)
	if level == "" || word == "" {
		return domain.NewValidationError("level", "level and word are required")
	}

	if err := s.records.RecordAnswer(ctx, userID, level, word, correct); err != nil {
		return fmt.Errorf("progress.RecordAnswer: %w", err)
	}

	return nil
}

// Stats returns per-level aggregates for the user. Users with no history get
// an empty slice, not an error.
func (s *Service) Stats(ctx context.Context, userID uuid.UUID) ([]domain.LevelStats, error) {
	stats, err := s.records.StatsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("progress.Stats: %w", err)
	}

	return stats, nil
}

// Mistakes returns the user's wrongly answered words, worst first, each
// enriched with a translation. A translator outage degrades individual rows
// to a placeholder instead of failing the report.
func (s *Service) Mistakes(ctx context.Context, userID uuid.UUID, level string) ([]domain.Mistake, error) {
	mistakes, err := s.records.MistakesByUser(ctx, userID, level)
	if err != nil {
		return nil, fmt.Errorf("progress.Mistakes: %w", err)
	}

	for i := range mistakes {
		tr, err := s.translator.Translate(ctx, mistakes[i].Word)
		if err != nil {
			s.log.WarnContext(ctx, "mistake translation degraded",
				slog.String("word", mistakes[i].Word))
			tr = placeholderTranslation
		}
		mistakes[i].Translation = tr
	}

	return mistakes, nil
}
