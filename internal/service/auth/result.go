package auth

import (
	"time"

	"github.com/vocaquiz/backend/internal/domain"
)

// AuthResult is the outcome of a successful signup or login.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	Account   *domain.Account
}
