package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session represents an opaque bearer session stored in the database.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
	IsActive  bool
}

// IsExpired returns true if the session has expired relative to now.
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// Valid reports whether the session may authenticate requests at now.
func (s *Session) Valid(now time.Time) bool {
	return s.IsActive && !s.IsExpired(now)
}

// SessionContext is the identity capability produced by session validation
// and consumed by protected handlers.
type SessionContext struct {
	UserID   uuid.UUID
	Username string
	Email    string
}
