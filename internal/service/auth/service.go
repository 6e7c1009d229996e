// Package auth implements account activation, login, and session management.
package auth

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/vocaquiz/backend/internal/config"
	"github.com/vocaquiz/backend/internal/domain"
)

// accountRepo defines the account repository interface needed by the auth service.
type accountRepo interface {
	CodeIsFree(ctx context.Context, code string) (bool, error)
	Redeem(ctx context.Context, code, username, email, passwordHash string) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
	InsertCode(ctx context.Context, code string) error
	AvailableCodes(ctx context.Context) ([]string, error)
}

// sessionRepo defines the session repository interface needed by the auth service.
type sessionRepo interface {
	Create(ctx context.Context, s *domain.Session) (*domain.Session, error)
	GetByToken(ctx context.Context, token string) (*domain.Session, *domain.SessionContext, error)
	Invalidate(ctx context.Context, token string) error
	DeleteStale(ctx context.Context) (int, error)
}

// txManager defines the transaction manager interface needed by the auth service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// tokenSource produces opaque session tokens.
type tokenSource func() (string, error)

// codeSource produces activation codes.
type codeSource func() string

// Service implements auth operations.
type Service struct {
	log      *slog.Logger
	accounts accountRepo
	sessions sessionRepo
	tx       txManager
	clock    clockwork.Clock
	newToken tokenSource
	newCode  codeSource
	cfg      config.AuthConfig
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	accounts accountRepo,
	sessions sessionRepo,
	tx txManager,
	clock clockwork.Clock,
	newToken tokenSource,
	newCode codeSource,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "auth"),
		accounts: accounts,
		sessions: sessions,
		tx:       tx,
		clock:    clock,
		newToken: newToken,
		newCode:  newCode,
		cfg:      cfg,
	}
}
