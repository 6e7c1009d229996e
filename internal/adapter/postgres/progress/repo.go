// Package progress implements the per-user practice statistics repository.
package progress

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/vocaquiz/backend/internal/adapter/postgres"
	"github.com/vocaquiz/backend/internal/domain"
)

// Repo provides progress persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new progress repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const recordCorrectSQL = `
INSERT INTO user_progress (user_id, level, word, correct_count, incorrect_count, last_practiced)
VALUES ($1, $2, $3, 1, 0, now())
ON CONFLICT (user_id, level, word) DO UPDATE SET
    correct_count  = user_progress.correct_count + 1,
    last_practiced = now()`

const recordIncorrectSQL = `
INSERT INTO user_progress (user_id, level, word, correct_count, incorrect_count, last_practiced)
VALUES ($1, $2, $3, 0, 1, now())
ON CONFLICT (user_id, level, word) DO UPDATE SET
    incorrect_count = user_progress.incorrect_count + 1,
    last_practiced  = now()`

const statsByUserSQL = `
SELECT level,
       count(*)                                                             AS words_practiced,
       coalesce(sum(correct_count), 0)                                      AS total_correct,
       coalesce(sum(incorrect_count), 0)                                    AS total_incorrect,
       avg(correct_count::float / (correct_count + incorrect_count + 1))    AS accuracy
FROM user_progress
WHERE user_id = $1
GROUP BY level
ORDER BY level`

// RecordAnswer upserts one practice outcome: exactly one of the two counters
// is incremented and last_practiced moves forward.
func (r *Repo) RecordAnswer(ctx context.Context, userID uuid.UUID, level, word string, correct bool) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql := recordIncorrectSQL
	if correct {
		sql = recordCorrectSQL
	}

	if _, err := querier.Exec(ctx, sql, userID, level, word); err != nil {
		return postgres.MapError(err, "progress", word)
	}

	return nil
}

// StatsByUser returns per-level aggregates for the user, sorted by level.
// Users with no recorded answers get an empty slice.
func (r *Repo) StatsByUser(ctx context.Context, userID uuid.UUID) ([]domain.LevelStats, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var stats []domain.LevelStats
	if err := pgxscan.Select(ctx, querier, &stats, statsByUserSQL, userID); err != nil {
		return nil, postgres.MapError(err, "progress", "stats")
	}

	return stats, nil
}

// MistakesByUser returns words the user has answered incorrectly at least
// once, worst first, optionally narrowed by level.
func (r *Repo) MistakesByUser(ctx context.Context, userID uuid.UUID, level string) ([]domain.Mistake, error) {
	builder := sq.Select("word", "level", "correct_count", "incorrect_count", "last_practiced").
		From("user_progress").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Gt{"incorrect_count": 0})

	if level != "" && level != "all" {
		builder = builder.Where(sq.Eq{"level": level})
	}

	builder = builder.
		OrderBy("incorrect_count DESC", "last_practiced DESC").
		PlaceholderFormat(sq.Dollar)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build mistakes query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var mistakes []domain.Mistake
	if err := pgxscan.Select(ctx, querier, &mistakes, sql, args...); err != nil {
		return nil, postgres.MapError(err, "progress", "mistakes")
	}

	return mistakes, nil
}
