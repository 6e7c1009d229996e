package vocabulary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/vocaquiz/backend/internal/domain"
)

// AddWordInput holds parameters for adding a word to the library.
type AddWordInput struct {
	UserID      uuid.UUID
	Word        string
	Translation *string
	Level       *string
	Notes       *string
	AddedFrom   string
}

// Validate validates the add word input.
func (i AddWordInput) Validate() error {
	var errs []domain.FieldError

	if domain.NormalizeWord(i.Word) == "" {
		errs = append(errs, domain.FieldError{Field: "word", Message: "required"})
	} else if len(i.Word) > 100 {
		errs = append(errs, domain.FieldError{Field: "word", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AddWord upserts a library entry. Re-adding an existing word updates only
// the fields supplied; a missing translation is resolved best-effort so most
// entries arrive translated without blocking the add on a provider outage.
func (s *Service) AddWord(ctx context.Context, input AddWordInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	word := domain.NormalizeWord(input.Word)

	translation := input.Translation
	if translation == nil || strings.TrimSpace(*translation) == "" {
		if tr, err := s.translator.Translate(ctx, word); err == nil {
			translation = &tr
		} else {
			translation = nil
			s.log.WarnContext(ctx, "add word without translation",
				slog.String("word", word))
		}
	}

	addedFrom := input.AddedFrom
	if addedFrom == "" {
		addedFrom = "manual"
	}

	entry := &domain.LibraryEntry{
		UserID:      input.UserID,
		Word:        word,
		Translation: translation,
		Level:       input.Level,
		Notes:       input.Notes,
		AddedFrom:   addedFrom,
	}

	if err := s.library.Upsert(ctx, entry); err != nil {
		return fmt.Errorf("vocabulary.AddWord: %w", err)
	}

	return nil
}

// RemoveWord deletes a library entry. ErrNotFound if the word is not in the
// user's library.
func (s *Service) RemoveWord(ctx context.Context, userID uuid.UUID, word string) error {
	word = domain.NormalizeWord(word)
	if word == "" {
		return domain.NewValidationError("word", "required")
	}

	if err := s.library.Delete(ctx, userID, word); err != nil {
		return fmt.Errorf("vocabulary.RemoveWord: %w", err)
	}

	return nil
}

// UpdateNotes replaces the notes on a library entry.
func (s *Service) UpdateNotes(ctx context.Context, userID uuid.UUID, word, notes string) error {
	word = domain.NormalizeWord(word)
	if word == "" {
		return domain.NewValidationError("word", "required")
	}

	if err := s.library.UpdateNotes(ctx, userID, word, notes); err != nil {
		return fmt.Errorf("vocabulary.UpdateNotes: %w", err)
	}

	return nil
}

// RecordReview stamps the entry as reviewed now.
func (s *Service) RecordReview(ctx context.Context, userID uuid.UUID, word string) error {
	word = domain.NormalizeWord(word)
	if word == "" {
		return domain.NewValidationError("word", "required")
	}

	if err := s.library.RecordReview(ctx, userID, word); err != nil {
		return fmt.Errorf("vocabulary.RecordReview: %w", err)
	}

	return nil
}

// List returns the user's library, newest first, optionally filtered by a
// case-insensitive substring and a level.
func (s *Service) List(ctx context.Context, userID uuid.UUID, search, level string) ([]domain.LibraryEntry, error) {
	entries, err := s.library.List(ctx, userID, strings.TrimSpace(search), strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("vocabulary.List: %w", err)
	}

	return entries, nil
}

// Suggestions returns up to ten relevance-ranked hints from the user's own
// library for a search box.
func (s *Service) Suggestions(ctx context.Context, userID uuid.UUID, query, level string) ([]domain.Suggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Suggestion{}, nil
	}

	suggestions, err := s.library.Suggestions(ctx, userID, query, strings.TrimSpace(level), suggestionLimit)
	if err != nil {
		return nil, fmt.Errorf("vocabulary.Suggestions: %w", err)
	}

	return suggestions, nil
}

// SearchCatalog searches the system corpus for words the user has not added
// yet, relevance-ranked, translations filled best-effort.
func (s *Service) SearchCatalog(ctx context.Context, userID uuid.UUID, query, level string) ([]domain.CatalogHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.CatalogHit{}, nil
	}

	entries, err := s.corpus.SearchCatalog(ctx, userID, query, strings.TrimSpace(level), catalogLimit)
	if err != nil {
		return nil, fmt.Errorf("vocabulary.SearchCatalog: %w", err)
	}

	hits := make([]domain.CatalogHit, 0, len(entries))
	for _, e := range entries {
		hit := domain.CatalogHit{Word: e.Word, Level: e.Level}
		if tr, err := s.translator.Translate(ctx, e.Word); err == nil {
			hit.Translation = tr
		}
		hits = append(hits, hit)
	}

	return hits, nil
}
