package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vocaquiz/backend/internal/domain"
)

// CheckActivationCode reports whether a code exists and is still unredeemed.
func (s *Service) CheckActivationCode(ctx context.Context, code string) (bool, error) {
	code = domain.NormalizeActivationCode(code)
	if code == "" {
		return false, nil
	}

	free, err := s.accounts.CodeIsFree(ctx, code)
	if err != nil {
		return false, fmt.Errorf("auth.CheckActivationCode: %w", err)
	}

	return free, nil
}

// CreateActivationCodes generates and stores a batch of fresh activation
// codes. Collisions with existing codes are retried with a new code rather
// than surfaced.
func (s *Service) CreateActivationCodes(ctx context.Context, input GenerateCodesInput) ([]string, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	const maxAttemptsPerCode = 3

	codes := make([]string, 0, input.Count)
	for len(codes) < input.Count {
		var inserted bool
		for attempt := 0; attempt < maxAttemptsPerCode; attempt++ {
			code := s.newCode()

			err := s.accounts.InsertCode(ctx, code)
			if err == nil {
				codes = append(codes, code)
				inserted = true
				break
			}
			if errors.Is(err, domain.ErrAlreadyExists) {
				continue
			}
			return nil, fmt.Errorf("auth.CreateActivationCodes: %w", err)
		}
		if !inserted {
			return nil, fmt.Errorf("auth.CreateActivationCodes: repeated code collisions")
		}
	}

	s.log.InfoContext(ctx, "activation codes created", slog.Int("count", len(codes)))

	return codes, nil
}

// AvailableCodes returns all unredeemed activation codes, oldest first.
func (s *Service) AvailableCodes(ctx context.Context) ([]string, error) {
	codes, err := s.accounts.AvailableCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth.AvailableCodes: %w", err)
	}

	return codes, nil
}
