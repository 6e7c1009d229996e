package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vocaquiz/backend/internal/domain"
	"github.com/vocaquiz/backend/pkg/ctxutil"
)

type sessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*domain.SessionContext, error)
}

// Auth resolves an optional bearer token into a session context. Requests
// without a token pass through anonymously; requests with an invalid or
// expired token are rejected outright, so handlers never see a half-valid
// identity.
func Auth(validator sessionValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			sc, err := validator.ValidateSession(r.Context(), token)
			if err != nil {
				writeUnauthorized(w)
				return
			}
			ctx := ctxutil.WithSession(r.Context(), sc)
			ctx = ctxutil.WithSessionToken(ctx, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests. Must run after Auth.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.SessionFromCtx(r.Context()); !ok {
			writeUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeUnauthorized emits the same JSON error shape the REST handlers use.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
