package ctxutil

import (
	"context"

	"github.com/vocaquiz/backend/internal/domain"
)

type ctxKey string

const (
	sessionKey   ctxKey = "session"
	tokenKey     ctxKey = "session_token"
	requestIDKey ctxKey = "request_id"
)

// WithSession stores the validated session context.
func WithSession(ctx context.Context, sc *domain.SessionContext) context.Context {
	return context.WithValue(ctx, sessionKey, sc)
}

// SessionFromCtx extracts the validated session context.
// Returns nil and false for anonymous requests.
func SessionFromCtx(ctx context.Context) (*domain.SessionContext, bool) {
	sc, ok := ctx.Value(sessionKey).(*domain.SessionContext)
	if !ok || sc == nil {
		return nil, false
	}
	return sc, true
}

// WithSessionToken stores the raw bearer token, so logout can revoke the
// session it arrived on.
func WithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// SessionTokenFromCtx extracts the raw bearer token.
// Returns an empty string if absent.
func SessionTokenFromCtx(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
