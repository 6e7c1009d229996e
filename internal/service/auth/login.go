package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/vocaquiz/backend/internal/domain"
)

// dummyPasswordHash is a bcrypt hash of an unguessable throwaway value. Miss
// paths compare against it so a login attempt costs one bcrypt comparison
// whether or not the username exists.
var dummyPasswordHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Login authenticates a user by username and password and opens a session.
// An unknown username and a wrong password both return ErrInvalidCredentials;
// the caller cannot tell which accounts exist, by response or by timing.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	input.Username = strings.TrimSpace(input.Username)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(input.Password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth.Login get account: %w", err)
	}

	if account.PasswordHash == nil {
		_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(input.Password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*account.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.newToken()
	if err != nil {
		return nil, fmt.Errorf("auth.Login generate token: %w", err)
	}

	session, err := s.createSession(ctx, account.ID, token)
	if err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}

	if err := s.accounts.TouchLastLogin(ctx, account.ID); err != nil {
		// Not worth failing the login over.
		s.log.WarnContext(ctx, "touch last login failed",
			slog.String("user_id", account.ID.String()), slog.String("error", err.Error()))
	}

	s.log.InfoContext(ctx, "user logged in",
		slog.String("user_id", account.ID.String()))

	return &AuthResult{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		Account:   account,
	}, nil
}
