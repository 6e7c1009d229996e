package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vocaquiz/backend/internal/domain"
	"github.com/vocaquiz/backend/internal/metrics"
)

// CheckAnswerInput holds parameters for answer verification. Session is nil
// for anonymous checks; progress is recorded only when both Session and Level
// are present.
type CheckAnswerInput struct {
	Word     string
	Selected string
	Level    string
	Session  *domain.SessionContext
}

// Validate validates the check answer input.
func (i CheckAnswerInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Word) == "" {
		errs = append(errs, domain.FieldError{Field: "word", Message: "required"})
	}
	if strings.TrimSpace(i.Selected) == "" {
		errs = append(errs, domain.FieldError{Field: "selected", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CheckAnswer verifies a selected option against the word's correct
// translation. Words known to neither the system corpus nor the caller's
// library are rejected with ErrUnknownWord rather than scored as incorrect.
// Comparison trims whitespace and ignores case.
func (s *Service) CheckAnswer(ctx context.Context, input CheckAnswerInput) (*domain.AnswerResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	word := domain.NormalizeWord(input.Word)
	if word == "" {
		return nil, fmt.Errorf("word %q: %w", input.Word, domain.ErrUnknownWord)
	}

	entry, err := s.lookupWord(ctx, word, input.Session)
	if err != nil {
		return nil, err
	}

	correct, err := s.correctTranslation(ctx, word, entry)
	if err != nil {
		return nil, fmt.Errorf("quiz.CheckAnswer translate: %w", err)
	}

	isCorrect := strings.EqualFold(strings.TrimSpace(input.Selected), strings.TrimSpace(correct))

	if input.Session != nil && input.Level != "" {
		if err := s.progress.RecordAnswer(ctx, input.Session.UserID, input.Level, word, isCorrect); err != nil {
			return nil, fmt.Errorf("quiz.CheckAnswer record progress: %w", err)
		}
	}

	outcome := "incorrect"
	if isCorrect {
		outcome = "correct"
	}
	metrics.AnswersChecked.WithLabelValues(outcome).Inc()

	s.log.DebugContext(ctx, "answer checked",
		slog.String("word", word), slog.Bool("correct", isCorrect))

	return &domain.AnswerResult{
		Correct:            isCorrect,
		CorrectTranslation: correct,
	}, nil
}

// lookupWord confirms the word is known, returning the library entry when the
// word lives only in the caller's library.
func (s *Service) lookupWord(ctx context.Context, word string, session *domain.SessionContext) (*domain.LibraryEntry, error) {
	known, err := s.corpus.Exists(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("quiz.CheckAnswer corpus lookup: %w", err)
	}
	if known {
		return nil, nil
	}

	if session == nil {
		return nil, fmt.Errorf("word %q: %w", word, domain.ErrUnknownWord)
	}

	entry, err := s.library.Get(ctx, session.UserID, word)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("word %q: %w", word, domain.ErrUnknownWord)
		}
		return nil, fmt.Errorf("quiz.CheckAnswer library lookup: %w", err)
	}

	return entry, nil
}

// correctTranslation prefers the library's stored translation and falls back
// to the translation cache.
func (s *Service) correctTranslation(ctx context.Context, word string, entry *domain.LibraryEntry) (string, error) {
	if entry != nil && entry.Translation != nil && strings.TrimSpace(*entry.Translation) != "" {
		return strings.TrimSpace(*entry.Translation), nil
	}
	return s.translator.Translate(ctx, word)
}
