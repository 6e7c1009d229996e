// Package corpus implements read access to the shared system vocabulary,
// plus the bulk insert used by the ingestion job.
package corpus

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/vocaquiz/backend/internal/adapter/postgres"
	"github.com/vocaquiz/backend/internal/domain"
)

// Repo provides system-vocabulary reads backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new corpus repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const wordsByLevelSQL = `
SELECT word FROM system_vocabulary
WHERE level = $1
ORDER BY word`

const allWordsSQL = `
SELECT word, level FROM system_vocabulary
ORDER BY level, word`

const randomWordsSQL = `
SELECT word FROM system_vocabulary
ORDER BY random()
LIMIT $1`

const existsSQL = `
SELECT EXISTS (SELECT 1 FROM system_vocabulary WHERE word = $1)`

const insertEntrySQL = `
INSERT INTO system_vocabulary (word, level)
VALUES ($1, $2)
ON CONFLICT (word, level) DO NOTHING`

// WordsByLevel returns all words at the given level, alphabetically.
func (r *Repo) WordsByLevel(ctx context.Context, level string) ([]string, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, wordsByLevelSQL, level)
	if err != nil {
		return nil, postgres.MapError(err, "corpus", level)
	}
	defer rows.Close()

	return scanWords(rows)
}

// AllLevels returns the full corpus grouped by level.
func (r *Repo) AllLevels(ctx context.Context) (map[string][]string, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, allWordsSQL)
	if err != nil {
		return nil, postgres.MapError(err, "corpus", "all")
	}
	defer rows.Close()

	grouped := make(map[string][]string)
	for rows.Next() {
		var word, level string
		if err := rows.Scan(&word, &level); err != nil {
			return nil, fmt.Errorf("scan corpus row: %w", err)
		}
		grouped[level] = append(grouped[level], word)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate corpus rows: %w", err)
	}

	return grouped, nil
}

// RandomWords returns up to n words sampled uniformly from the whole corpus.
func (r *Repo) RandomWords(ctx context.Context, n int) ([]string, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, randomWordsSQL, n)
	if err != nil {
		return nil, postgres.MapError(err, "corpus", "random")
	}
	defer rows.Close()

	return scanWords(rows)
}

// Exists reports whether the word appears at any level of the corpus.
func (r *Repo) Exists(ctx context.Context, word string) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := querier.QueryRow(ctx, existsSQL, word).Scan(&exists); err != nil {
		return false, postgres.MapError(err, "corpus", word)
	}

	return exists, nil
}

// BulkInsert writes corpus entries in one batch, skipping duplicates.
// Returns the number of newly inserted rows.
func (r *Repo) BulkInsert(ctx context.Context, entries []domain.CorpusEntry) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(insertEntrySQL, e.Word, e.Level)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for range entries {
		ct, err := results.Exec()
		if err != nil {
			return inserted, postgres.MapError(err, "corpus", "bulk")
		}
		inserted += int(ct.RowsAffected())
	}

	return inserted, nil
}

// SearchCatalog searches the system corpus for words matching the query that
// are not yet in the user's library. Results are ranked: exact match first,
// prefix match next, substring match last, alphabetical within each rank.
func (r *Repo) SearchCatalog(ctx context.Context, userID uuid.UUID, query, level string, limit int) ([]domain.CorpusEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	builder := sq.Select("sv.word", "sv.level").
		From("system_vocabulary sv").
		LeftJoin("vocabulary_library vl ON vl.word = sv.word AND vl.user_id = ?", userID).
		Where("vl.word IS NULL").
		Where(sq.ILike{"sv.word": "%" + query + "%"})

	if level != "" && level != "all" {
		builder = builder.Where(sq.Eq{"sv.level": level})
	}

	builder = builder.
		OrderByClause("CASE WHEN lower(sv.word) = lower(?) THEN 0 WHEN sv.word ILIKE ? THEN 1 ELSE 2 END",
			query, query+"%").
		OrderBy("sv.word ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build catalog search query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "corpus", query)
	}
	defer rows.Close()

	var hits []domain.CorpusEntry
	for rows.Next() {
		var e domain.CorpusEntry
		if err := rows.Scan(&e.Word, &e.Level); err != nil {
			return nil, fmt.Errorf("scan catalog hit: %w", err)
		}
		hits = append(hits, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog hits: %w", err)
	}

	return hits, nil
}

// scanWords collects a single text column into a slice.
func scanWords(rows pgx.Rows) ([]string, error) {
	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate words: %w", err)
	}
	return words, nil
}
