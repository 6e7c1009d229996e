package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vocaquiz/backend/internal/domain"
)

// Signup redeems an activation code and opens the first session for the new
// account. Redemption and session creation run in one transaction, so a code
// is never consumed without its owner receiving a token. The conditional
// update in the repository makes the code single use even under concurrent
// signups.
func (s *Service) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	input.ActivationCode = domain.NormalizeActivationCode(input.ActivationCode)
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("auth.Signup hash password: %w", err)
	}

	token, err := s.newToken()
	if err != nil {
		return nil, fmt.Errorf("auth.Signup generate token: %w", err)
	}

	var result *AuthResult
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		account, err := s.accounts.Redeem(ctx, input.ActivationCode, input.Username, input.Email, string(hash))
		if err != nil {
			return fmt.Errorf("redeem code: %w", err)
		}

		session, err := s.createSession(ctx, account.ID, token)
		if err != nil {
			return err
		}

		result = &AuthResult{
			Token:     session.Token,
			ExpiresAt: session.ExpiresAt,
			Account:   account,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "account activated",
		slog.String("user_id", result.Account.ID.String()),
		slog.String("username", input.Username))

	return result, nil
}

// createSession persists a new session expiring after the configured TTL.
func (s *Service) createSession(ctx context.Context, userID uuid.UUID, token string) (*domain.Session, error) {
	session := &domain.Session{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: s.clock.Now().Add(s.cfg.SessionTTL),
	}

	created, err := s.sessions.Create(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return created, nil
}
