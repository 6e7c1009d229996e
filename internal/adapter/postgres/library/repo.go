// Package library implements the per-user vocabulary library repository.
// Listing and suggestion queries are assembled dynamically with squirrel
// because of their optional filters; fixed-shape statements stay raw SQL.
package library

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/vocaquiz/backend/internal/adapter/postgres"
	"github.com/vocaquiz/backend/internal/domain"
)

// Repo provides vocabulary-library persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new library repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// entryRow mirrors the vocabulary_library columns for scany.
type entryRow struct {
	UserID       uuid.UUID  `db:"user_id"`
	Word         string     `db:"word"`
	Translation  *string    `db:"translation"`
	Level        *string    `db:"level"`
	Notes        *string    `db:"notes"`
	AddedFrom    string     `db:"added_from"`
	CreatedAt    time.Time  `db:"created_at"`
	LastReviewed *time.Time `db:"last_reviewed"`
}

const upsertSQL = `
INSERT INTO vocabulary_library (user_id, word, translation, level, notes, added_from)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id, word) DO UPDATE SET
    translation = COALESCE(EXCLUDED.translation, vocabulary_library.translation),
    level       = COALESCE(EXCLUDED.level, vocabulary_library.level),
    notes       = COALESCE(EXCLUDED.notes, vocabulary_library.notes),
    added_from  = EXCLUDED.added_from`

const deleteSQL = `
DELETE FROM vocabulary_library WHERE user_id = $1 AND word = $2`

const updateNotesSQL = `
UPDATE vocabulary_library SET notes = $3 WHERE user_id = $1 AND word = $2`

const recordReviewSQL = `
UPDATE vocabulary_library SET last_reviewed = now() WHERE user_id = $1 AND word = $2`

const countByUserSQL = `
SELECT count(*) FROM vocabulary_library WHERE user_id = $1`

const getSQL = `
SELECT user_id, word, translation, level, notes, added_from, created_at, last_reviewed
FROM vocabulary_library
WHERE user_id = $1 AND word = $2`

// Upsert adds a word to the user's library. Re-adding an existing word
// updates only the non-null fields; existing values are preserved otherwise.
func (r *Repo) Upsert(ctx context.Context, e *domain.LibraryEntry) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, upsertSQL,
		e.UserID, e.Word, e.Translation, e.Level, e.Notes, e.AddedFrom)
	if err != nil {
		return postgres.MapError(err, "library_entry", e.Word)
	}

	return nil
}

// Get returns a single library entry by its (user_id, word) key.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID, word string) (*domain.LibraryEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var row entryRow
	if err := pgxscan.Get(ctx, querier, &row, getSQL, userID, word); err != nil {
		return nil, postgres.MapError(err, "library_entry", word)
	}

	entries := toDomainEntries([]entryRow{row})
	return &entries[0], nil
}

// Delete removes a word from the user's library.
// Returns domain.ErrNotFound if no row matched.
func (r *Repo) Delete(ctx context.Context, userID uuid.UUID, word string) error {
	return r.execOne(ctx, deleteSQL, userID, word)
}

// UpdateNotes replaces the notes of a library entry.
// Returns domain.ErrNotFound if no row matched.
func (r *Repo) UpdateNotes(ctx context.Context, userID uuid.UUID, word, notes string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, updateNotesSQL, userID, word, notes)
	if err != nil {
		return postgres.MapError(err, "library_entry", word)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("library_entry %s: %w", word, domain.ErrNotFound)
	}

	return nil
}

// RecordReview stamps last_reviewed for a library entry.
// Returns domain.ErrNotFound if no row matched.
func (r *Repo) RecordReview(ctx context.Context, userID uuid.UUID, word string) error {
	return r.execOne(ctx, recordReviewSQL, userID, word)
}

// CountByUser returns the number of entries in the user's library.
func (r *Repo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	if err := querier.QueryRow(ctx, countByUserSQL, userID).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "library_entry", "count")
	}

	return n, nil
}

// List returns the user's library, most recently added first, optionally
// narrowed by a case-insensitive substring over word/translation/notes and
// by level.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, search, level string) ([]domain.LibraryEntry, error) {
	builder := sq.Select("user_id", "word", "translation", "level", "notes",
		"added_from", "created_at", "last_reviewed").
		From("vocabulary_library").
		Where(sq.Eq{"user_id": userID})

	if search != "" {
		pattern := "%" + search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"word": pattern},
			sq.ILike{"translation": pattern},
			sq.ILike{"notes": pattern},
		})
	}
	if level != "" && level != "all" {
		builder = builder.Where(sq.Eq{"level": level})
	}

	builder = builder.OrderBy("created_at DESC").PlaceholderFormat(sq.Dollar)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build library list query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var rows []entryRow
	if err := pgxscan.Select(ctx, querier, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "library_entry", "list")
	}

	return toDomainEntries(rows), nil
}

// Suggestions returns relevance-ranked word hints from the user's library:
// exact match first, prefix match next, substring match last, alphabetical
// within each rank.
func (r *Repo) Suggestions(ctx context.Context, userID uuid.UUID, query, level string, limit int) ([]domain.Suggestion, error) {
	pattern := "%" + query + "%"

	builder := sq.Select("word", "level").
		From("vocabulary_library").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Or{
			sq.ILike{"word": pattern},
			sq.ILike{"translation": pattern},
			sq.ILike{"notes": pattern},
		})

	if level != "" && level != "all" {
		builder = builder.Where(sq.Eq{"level": level})
	}

	builder = builder.
		OrderByClause("CASE WHEN lower(word) = lower(?) THEN 0 WHEN word ILIKE ? THEN 1 ELSE 2 END",
			query, query+"%").
		OrderBy("word ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build suggestions query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "library_entry", query)
	}
	defer rows.Close()

	var suggestions []domain.Suggestion
	for rows.Next() {
		var s domain.Suggestion
		if err := rows.Scan(&s.Word, &s.Level); err != nil {
			return nil, fmt.Errorf("scan suggestion: %w", err)
		}
		suggestions = append(suggestions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate suggestions: %w", err)
	}

	return suggestions, nil
}

// execOne runs a statement expected to affect exactly one (user_id, word) row.
func (r *Repo) execOne(ctx context.Context, sql string, userID uuid.UUID, word string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, sql, userID, word)
	if err != nil {
		return postgres.MapError(err, "library_entry", word)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("library_entry %s: %w", word, domain.ErrNotFound)
	}

	return nil
}

func toDomainEntries(rows []entryRow) []domain.LibraryEntry {
	entries := make([]domain.LibraryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.LibraryEntry{
			UserID:       row.UserID,
			Word:         row.Word,
			Translation:  row.Translation,
			Level:        row.Level,
			Notes:        row.Notes,
			AddedFrom:    row.AddedFrom,
			CreatedAt:    row.CreatedAt,
			LastReviewed: row.LastReviewed,
		})
	}
	return entries
}
