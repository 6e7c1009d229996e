// Package account implements the Account repository using PostgreSQL.
package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/vocaquiz/backend/internal/adapter/postgres"
	"github.com/vocaquiz/backend/internal/domain"
)

// Repo provides account persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new account repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const accountColumns = `id, activation_code, username, email, password_hash, created_at, activated_at, is_active, last_login`

const codeIsFreeSQL = `
SELECT EXISTS (
    SELECT 1 FROM accounts
    WHERE activation_code = $1 AND username IS NULL AND email IS NULL
)`

const redeemSQL = `
UPDATE accounts
SET username = $2, email = $3, password_hash = $4, activated_at = now(), is_active = TRUE
WHERE activation_code = $1 AND username IS NULL AND email IS NULL
RETURNING ` + accountColumns

const getByIDSQL = `
SELECT ` + accountColumns + `
FROM accounts
WHERE id = $1 AND is_active = TRUE`

const getByUsernameSQL = `
SELECT ` + accountColumns + `
FROM accounts
WHERE username = $1 AND is_active = TRUE`

const touchLastLoginSQL = `
UPDATE accounts SET last_login = now() WHERE id = $1`

const insertCodeSQL = `
INSERT INTO accounts (id, activation_code)
VALUES ($1, $2)
ON CONFLICT (activation_code) DO NOTHING`

const availableCodesSQL = `
SELECT activation_code FROM accounts
WHERE username IS NULL AND email IS NULL
ORDER BY created_at`

// CodeIsFree reports whether an activation code exists and has not been
// redeemed yet. The code must already be case-normalized by the caller.
func (r *Repo) CodeIsFree(ctx context.Context, code string) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var free bool
	if err := querier.QueryRow(ctx, codeIsFreeSQL, code).Scan(&free); err != nil {
		return false, postgres.MapError(err, "activation_code", code)
	}

	return free, nil
}

// Redeem consumes an activation code and populates the account fields in a
// single conditional update. Zero rows affected means the code is unknown or
// already redeemed: domain.ErrInvalidActivationCode. A unique violation on
// username or email surfaces as domain.ErrAlreadyExists.
func (r *Repo) Redeem(ctx context.Context, code, username, email, passwordHash string) (*domain.Account, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, redeemSQL, code, username, email, passwordHash)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("activation_code %s: %w", code, domain.ErrInvalidActivationCode)
		}
		return nil, postgres.MapError(err, "account", username)
	}

	return account, nil
}

// GetByID returns an active account by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	account, err := scanAccount(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "account", id.String())
	}

	return account, nil
}

// GetByUsername returns an active account by username.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	account, err := scanAccount(querier.QueryRow(ctx, getByUsernameSQL, username))
	if err != nil {
		return nil, postgres.MapError(err, "account", username)
	}

	return account, nil
}

// TouchLastLogin stamps last_login for the account.
func (r *Repo) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, touchLastLoginSQL, id); err != nil {
		return postgres.MapError(err, "account", id.String())
	}

	return nil
}

// InsertCode pre-provisions one unredeemed activation code.
// Returns domain.ErrAlreadyExists if the code is already present.
func (r *Repo) InsertCode(ctx context.Context, code string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, insertCodeSQL, uuid.New(), code)
	if err != nil {
		return postgres.MapError(err, "activation_code", code)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("activation_code %s: %w", code, domain.ErrAlreadyExists)
	}

	return nil
}

// AvailableCodes returns all unredeemed activation codes, oldest first.
func (r *Repo) AvailableCodes(ctx context.Context) ([]string, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, availableCodesSQL)
	if err != nil {
		return nil, postgres.MapError(err, "activation_code", "all")
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan activation code: %w", err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activation codes: %w", err)
	}

	return codes, nil
}

// scanAccount scans a single account row from pgx.Row.
func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		id           uuid.UUID
		code         string
		username     *string
		email        *string
		passwordHash *string
		createdAt    time.Time
		activatedAt  *time.Time
		isActive     bool
		lastLogin    *time.Time
	)

	if err := row.Scan(&id, &code, &username, &email, &passwordHash,
		&createdAt, &activatedAt, &isActive, &lastLogin); err != nil {
		return nil, err
	}

	return &domain.Account{
		ID:             id,
		ActivationCode: code,
		Username:       username,
		Email:          email,
		PasswordHash:   passwordHash,
		CreatedAt:      createdAt,
		ActivatedAt:    activatedAt,
		IsActive:       isActive,
		LastLogin:      lastLogin,
	}, nil
}
