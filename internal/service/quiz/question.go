package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/vocaquiz/backend/internal/domain"
	"github.com/vocaquiz/backend/internal/metrics"
)

// GenerateQuestion builds a question from the system corpus at the given
// level: one target word, its translation, and distractor translations of
// other words at the same level, shuffled. A translation failure aborts the
// question; no partial payload is ever returned.
func (s *Service) GenerateQuestion(ctx context.Context, level string) (*domain.Question, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return nil, domain.NewValidationError("level", "required")
	}

	words, err := s.corpus.WordsByLevel(ctx, level)
	if err != nil {
		return nil, fmt.Errorf("quiz.GenerateQuestion load level: %w", err)
	}
	if len(words) < s.cfg.OptionCount {
		return nil, fmt.Errorf("level %s has %d words: %w", level, len(words), domain.ErrInsufficientCorpus)
	}

	target := words[s.randIndex(len(words))]
	targetWord := domain.NormalizeWord(target)
	if targetWord == "" {
		return nil, fmt.Errorf("level %s: %w", level, domain.ErrInsufficientCorpus)
	}

	correct, err := s.translator.Translate(ctx, targetWord)
	if err != nil {
		return nil, fmt.Errorf("quiz.GenerateQuestion translate target: %w", err)
	}

	pool := make([]string, 0, len(words)-1)
	for _, w := range words {
		if w != target {
			pool = append(pool, w)
		}
	}
	s.shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	distractors, err := s.pickDistractors(ctx, pool, correct)
	if err != nil {
		return nil, fmt.Errorf("quiz.GenerateQuestion: %w", err)
	}
	if len(distractors) < s.distractorCount() {
		return nil, fmt.Errorf("level %s: %w", level, domain.ErrInsufficientCorpus)
	}

	metrics.QuestionsGenerated.WithLabelValues(level).Inc()
	s.log.DebugContext(ctx, "question generated",
		slog.String("level", level), slog.String("word", targetWord))

	return &domain.Question{
		Word:    targetWord,
		Options: s.shuffleOptions(correct, distractors),
	}, nil
}

// GeneratePersonalQuestion builds a question from the user's own library,
// which must hold at least as many words as a question has options. The
// target always comes from the library; distractors come from the other
// library entries first and are padded from the system corpus when fewer than
// three are usable. Pad candidates with failing translations are skipped
// instead of aborting, since the corpus offers unlimited replacements.
func (s *Service) GeneratePersonalQuestion(ctx context.Context, userID uuid.UUID) (*domain.Question, error) {
	count, err := s.library.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("quiz.GeneratePersonalQuestion count library: %w", err)
	}
	if count < s.cfg.OptionCount {
		return nil, fmt.Errorf("library has %d words: %w", count, domain.ErrInsufficientCorpus)
	}

	entries, err := s.library.List(ctx, userID, "", "")
	if err != nil {
		return nil, fmt.Errorf("quiz.GeneratePersonalQuestion load library: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("library is empty: %w", domain.ErrInsufficientCorpus)
	}

	target := entries[s.randIndex(len(entries))]
	targetWord := domain.NormalizeWord(target.Word)
	if targetWord == "" {
		return nil, fmt.Errorf("quiz.GeneratePersonalQuestion: %w", domain.ErrInsufficientCorpus)
	}

	correct, err := s.resolveEntryTranslation(ctx, &target)
	if err != nil {
		return nil, fmt.Errorf("quiz.GeneratePersonalQuestion translate target: %w", err)
	}

	distractors, err := s.personalDistractors(ctx, entries, target.Word, correct)
	if err != nil {
		return nil, err
	}

	metrics.QuestionsGenerated.WithLabelValues("personal").Inc()
	s.log.DebugContext(ctx, "personal question generated",
		slog.String("user_id", userID.String()), slog.String("word", targetWord))

	return &domain.Question{
		Word:    targetWord,
		Options: s.shuffleOptions(correct, distractors),
	}, nil
}

// personalDistractors draws wrong options from the user's other library
// entries, then pads from random corpus words until enough are found.
func (s *Service) personalDistractors(ctx context.Context, entries []domain.LibraryEntry, targetWord, correct string) ([]string, error) {
	want := s.distractorCount()

	others := make([]domain.LibraryEntry, 0, len(entries)-1)
	for _, e := range entries {
		if e.Word != targetWord {
			others = append(others, e)
		}
	}
	s.shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })

	chosen := make([]string, 0, want)
	seen := map[string]bool{foldOption(correct): true}

	for _, e := range others {
		if len(chosen) == want {
			break
		}
		tr, err := s.resolveEntryTranslation(ctx, &e)
		if err != nil {
			// Library entries without a resolvable translation are skipped,
			// the corpus pad below fills the gap.
			continue
		}
		if seen[foldOption(tr)] {
			continue
		}
		seen[foldOption(tr)] = true
		chosen = append(chosen, tr)
	}

	// Pad from the system corpus. Bounded: one oversized batch, no refill loop.
	if len(chosen) < want {
		padWords, err := s.corpus.RandomWords(ctx, (want-len(chosen))*5)
		if err != nil {
			return nil, fmt.Errorf("quiz.GeneratePersonalQuestion pad distractors: %w", err)
		}

		for _, w := range padWords {
			if len(chosen) == want {
				break
			}
			word := domain.NormalizeWord(w)
			if word == "" || word == targetWord {
				continue
			}
			tr, err := s.translator.Translate(ctx, word)
			if err != nil {
				continue
			}
			if seen[foldOption(tr)] {
				continue
			}
			seen[foldOption(tr)] = true
			chosen = append(chosen, tr)
		}
	}

	if len(chosen) < want {
		return nil, fmt.Errorf("quiz.GeneratePersonalQuestion: %w", domain.ErrInsufficientCorpus)
	}

	return chosen, nil
}

// pickDistractors translates pool words in order until enough distinct wrong
// options are found. First pass requires distinct translations; if the pool
// runs dry, translations that merely duplicate another distractor are reused
// so sparse levels can still form a question.
func (s *Service) pickDistractors(ctx context.Context, pool []string, correct string) ([]string, error) {
	want := s.distractorCount()

	chosen := make([]string, 0, want)
	var duplicates []string
	seen := map[string]bool{foldOption(correct): true}

	for _, w := range pool {
		if len(chosen) == want {
			break
		}
		word := domain.NormalizeWord(w)
		if word == "" {
			continue
		}

		tr, err := s.translator.Translate(ctx, word)
		if err != nil {
			return nil, fmt.Errorf("translate distractor: %w", err)
		}

		if seen[foldOption(tr)] {
			if foldOption(tr) != foldOption(correct) {
				duplicates = append(duplicates, tr)
			}
			continue
		}
		seen[foldOption(tr)] = true
		chosen = append(chosen, tr)
	}

	// Second pass: tolerate duplicate distractors when the data has no better.
	for _, tr := range duplicates {
		if len(chosen) == want {
			break
		}
		chosen = append(chosen, tr)
	}

	return chosen, nil
}

// resolveEntryTranslation prefers the translation stored in the library and
// falls back to the translation cache.
func (s *Service) resolveEntryTranslation(ctx context.Context, e *domain.LibraryEntry) (string, error) {
	if e.Translation != nil && strings.TrimSpace(*e.Translation) != "" {
		return strings.TrimSpace(*e.Translation), nil
	}
	return s.translator.Translate(ctx, domain.NormalizeWord(e.Word))
}

// shuffleOptions merges the correct option and the distractors and shuffles
// them with a uniform permutation.
func (s *Service) shuffleOptions(correct string, distractors []string) []string {
	options := make([]string, 0, len(distractors)+1)
	options = append(options, correct)
	options = append(options, distractors...)
	s.shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	return options
}

// foldOption canonicalizes an option for duplicate detection.
func foldOption(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
