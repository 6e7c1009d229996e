package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vocaquiz/backend/internal/domain"
	"github.com/vocaquiz/backend/internal/metrics"
)

// ValidateSession resolves a token to the identity behind it. Expired and
// revoked sessions return ErrUnauthorized, same as unknown tokens. Pure read:
// validation never extends or mutates the session.
func (s *Service) ValidateSession(ctx context.Context, token string) (*domain.SessionContext, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	session, sc, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.ValidateSession: %w", err)
	}

	if !session.Valid(s.clock.Now()) {
		return nil, domain.ErrUnauthorized
	}

	return sc, nil
}

// PurgeStaleSessions deletes expired and revoked sessions. Run periodically
// by the cleanup job.
func (s *Service) PurgeStaleSessions(ctx context.Context) (int, error) {
	deleted, err := s.sessions.DeleteStale(ctx)
	if err != nil {
		return 0, fmt.Errorf("auth.PurgeStaleSessions: %w", err)
	}

	if deleted > 0 {
		metrics.SessionsPurged.Add(float64(deleted))
		s.log.InfoContext(ctx, "stale sessions purged", slog.Int("count", deleted))
	}

	return deleted, nil
}
