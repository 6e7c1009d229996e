// Package quiz implements multiple-choice question generation and answer
// checking.
package quiz

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"github.com/vocaquiz/backend/internal/config"
	"github.com/vocaquiz/backend/internal/domain"
)

// corpusRepo defines the system-vocabulary reads needed by the quiz service.
type corpusRepo interface {
	WordsByLevel(ctx context.Context, level string) ([]string, error)
	RandomWords(ctx context.Context, n int) ([]string, error)
	Exists(ctx context.Context, word string) (bool, error)
}

// libraryRepo defines the per-user library reads needed by the quiz service.
type libraryRepo interface {
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	List(ctx context.Context, userID uuid.UUID, search, level string) ([]domain.LibraryEntry, error)
	Get(ctx context.Context, userID uuid.UUID, word string) (*domain.LibraryEntry, error)
}

// translator resolves a word to its translation, cache-first.
type translator interface {
	Translate(ctx context.Context, word string) (string, error)
}

// progressRecorder forwards answer outcomes to the progress tracker.
type progressRecorder interface {
	RecordAnswer(ctx context.Context, userID uuid.UUID, level, word string, correct bool) error
}

// Service implements quiz operations.
type Service struct {
	log        *slog.Logger
	corpus     corpusRepo
	library    libraryRepo
	translator translator
	progress   progressRecorder
	rngMu      sync.Mutex
	rng        *rand.Rand
	cfg        config.QuizConfig
}

// NewService creates a new quiz service instance.
func NewService(
	logger *slog.Logger,
	corpus corpusRepo,
	library libraryRepo,
	translator translator,
	progress progressRecorder,
	rng *rand.Rand,
	cfg config.QuizConfig,
) *Service {
	return &Service{
		log:        logger.With("service", "quiz"),
		corpus:     corpus,
		library:    library,
		translator: translator,
		progress:   progress,
		rng:        rng,
		cfg:        cfg,
	}
}

// distractorCount is how many wrong options accompany the correct one.
func (s *Service) distractorCount() int {
	return s.cfg.OptionCount - 1
}

// randIndex and shuffle serialize access to the rng, which is shared across
// request goroutines.
func (s *Service) randIndex(n int) int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.IntN(n)
}

func (s *Service) shuffle(n int, swap func(i, j int)) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	s.rng.Shuffle(n, swap)
}
