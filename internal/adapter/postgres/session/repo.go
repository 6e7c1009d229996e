// Package session implements the Session repository using PostgreSQL.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/vocaquiz/backend/internal/adapter/postgres"
	"github.com/vocaquiz/backend/internal/domain"
)

// Repo provides session persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new session repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const sessionColumns = `id, user_id, token, created_at, expires_at, is_active`

const createSQL = `
INSERT INTO sessions (id, user_id, token, expires_at)
VALUES ($1, $2, $3, $4)
RETURNING ` + sessionColumns

const getByTokenSQL = `
SELECT s.id, s.user_id, s.token, s.created_at, s.expires_at, s.is_active,
       a.username, a.email, a.is_active
FROM sessions s
JOIN accounts a ON a.id = s.user_id
WHERE s.token = $1`

const invalidateSQL = `
UPDATE sessions SET is_active = FALSE WHERE token = $1`

const deleteStaleSQL = `
DELETE FROM sessions WHERE expires_at < now() OR is_active = FALSE`

// Create inserts a new session and returns the persisted row.
func (r *Repo) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL, s.ID, s.UserID, s.Token, s.ExpiresAt)

	created, err := scanSession(row)
	if err != nil {
		return nil, postgres.MapError(err, "session", s.ID.String())
	}

	return created, nil
}

// GetByToken returns the session with the given token joined with its owning
// account. Returns domain.ErrNotFound for unknown tokens and for sessions
// whose account has been deactivated.
func (r *Repo) GetByToken(ctx context.Context, token string) (*domain.Session, *domain.SessionContext, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		s             domain.Session
		username      *string
		email         *string
		accountActive bool
	)
	err := querier.QueryRow(ctx, getByTokenSQL, token).Scan(
		&s.ID, &s.UserID, &s.Token, &s.CreatedAt, &s.ExpiresAt, &s.IsActive,
		&username, &email, &accountActive,
	)
	if err != nil {
		return nil, nil, postgres.MapError(err, "session", "by-token")
	}

	// A session is only as valid as its owning account.
	if !accountActive {
		return nil, nil, fmt.Errorf("session %s: %w", s.ID, domain.ErrNotFound)
	}

	sc := &domain.SessionContext{UserID: s.UserID}
	if username != nil {
		sc.Username = *username
	}
	if email != nil {
		sc.Email = *email
	}

	return &s, sc, nil
}

// Invalidate revokes the session with the given token.
// Idempotent: revoking an unknown or already-revoked token is not an error.
func (r *Repo) Invalidate(ctx context.Context, token string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, invalidateSQL, token); err != nil {
		return postgres.MapError(err, "session", "by-token")
	}

	return nil
}

// DeleteStale removes expired and revoked sessions.
// Returns the count of deleted rows. Maintenance operation, no transaction.
func (r *Repo) DeleteStale(ctx context.Context) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, deleteStaleSQL)
	if err != nil {
		return 0, postgres.MapError(err, "session", "stale")
	}

	return int(ct.RowsAffected()), nil
}

// scanSession scans a single session row from pgx.Row.
func scanSession(row pgx.Row) (*domain.Session, error) {
	var (
		s         domain.Session
		createdAt time.Time
	)
	if err := row.Scan(&s.ID, &s.UserID, &s.Token, &createdAt, &s.ExpiresAt, &s.IsActive); err != nil {
		return nil, err
	}
	s.CreatedAt = createdAt
	return &s, nil
}
