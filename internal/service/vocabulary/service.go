// Package vocabulary implements corpus reads and personal library management.
package vocabulary

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vocaquiz/backend/internal/domain"
)

const (
	suggestionLimit = 10
	catalogLimit    = 20
)

// corpusRepo defines the system-vocabulary reads needed by the service.
type corpusRepo interface {
	WordsByLevel(ctx context.Context, level string) ([]string, error)
	AllLevels(ctx context.Context) (map[string][]string, error)
	SearchCatalog(ctx context.Context, userID uuid.UUID, query, level string, limit int) ([]domain.CorpusEntry, error)
}

// libraryRepo defines the library persistence needed by the service.
type libraryRepo interface {
	Upsert(ctx context.Context, e *domain.LibraryEntry) error
	Delete(ctx context.Context, userID uuid.UUID, word string) error
	UpdateNotes(ctx context.Context, userID uuid.UUID, word, notes string) error
	RecordReview(ctx context.Context, userID uuid.UUID, word string) error
	List(ctx context.Context, userID uuid.UUID, search, level string) ([]domain.LibraryEntry, error)
	Suggestions(ctx context.Context, userID uuid.UUID, query, level string, limit int) ([]domain.Suggestion, error)
}

// translator resolves a word to its translation, cache-first.
type translator interface {
	Translate(ctx context.Context, word string) (string, error)
}

// Service implements vocabulary operations.
type Service struct {
	log        *slog.Logger
	corpus     corpusRepo
	library    libraryRepo
	translator translator
}

// NewService creates a new vocabulary service instance.
func NewService(logger *slog.Logger, corpus corpusRepo, library libraryRepo, translator translator) *Service {
	return &Service{
		log:        logger.With("service", "vocabulary"),
		corpus:     corpus,
		library:    library,
		translator: translator,
	}
}
