package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account represents an application account. A row starts its life as a bare
// unredeemed activation code (Username and Email nil) and becomes a full
// account exactly once, when the code is redeemed via signup.
type Account struct {
	ID             uuid.UUID
	ActivationCode string
	Username       *string
	Email          *string
	PasswordHash   *string
	CreatedAt      time.Time
	ActivatedAt    *time.Time
	IsActive       bool
	LastLogin      *time.Time
}

// Redeemed reports whether the activation code has been consumed.
func (a *Account) Redeemed() bool {
	return a.Username != nil || a.Email != nil
}

// NormalizeActivationCode case-normalizes a code before lookup.
func NormalizeActivationCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
