package domain

import (
	"time"

	"github.com/google/uuid"
)

// CorpusEntry is one (word, level) row of the shared system vocabulary.
// The corpus is populated by the ingestion job and read-only afterwards.
type CorpusEntry struct {
	Word      string
	Level     string
	CreatedAt time.Time
}

// LibraryEntry is one word in a user's personal vocabulary library.
type LibraryEntry struct {
	UserID       uuid.UUID
	Word         string
	Translation  *string
	Level        *string
	Notes        *string
	AddedFrom    string
	CreatedAt    time.Time
	LastReviewed *time.Time
}

// Suggestion is a relevance-ranked search hint over the user's library.
type Suggestion struct {
	Word  string
	Level *string
}

// CatalogHit is a system-corpus search result that can be added to a
// personal library, enriched with a best-effort translation. Words already
// in the caller's library are excluded at query time.
type CatalogHit struct {
	Word        string
	Level       string
	Translation string
}
