package auth

import (
	"context"
	"fmt"
)

// Logout revokes the session behind the given token. Revoking an unknown or
// already-revoked token succeeds; logout is idempotent.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.sessions.Invalidate(ctx, token); err != nil {
		return fmt.Errorf("auth.Logout: %w", err)
	}

	return nil
}
