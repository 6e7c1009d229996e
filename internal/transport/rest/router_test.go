package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vocaquiz/backend/internal/config"
	"github.com/vocaquiz/backend/internal/domain"
	"github.com/vocaquiz/backend/internal/transport/middleware"
)

type sessionValidatorMock struct {
	ValidateSessionFunc func(ctx context.Context, token string) (*domain.SessionContext, error)
}

func (m *sessionValidatorMock) ValidateSession(ctx context.Context, token string) (*domain.SessionContext, error) {
	return m.ValidateSessionFunc(ctx, token)
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.AuthRateLimit = 1000
	cfg.CORS.AllowedOrigins = "*"

	sessions := &sessionValidatorMock{
		ValidateSessionFunc: func(ctx context.Context, token string) (*domain.SessionContext, error) {
			if token == "good-token" {
				return &domain.SessionContext{UserID: uuid.New(), Username: "alice01"}, nil
			}
			return nil, domain.ErrUnauthorized
		},
	}

	quizSvc := &quizServiceMock{
		GenerateQuestionFunc: func(ctx context.Context, level string) (*domain.Question, error) {
			return &domain.Question{Word: "apple", Options: []string{"a", "b", "c", "d"}}, nil
		},
	}
	progressSvc := &progressServiceMock{
		StatsFunc: func(ctx context.Context, userID uuid.UUID) ([]domain.LevelStats, error) {
			return nil, nil
		},
	}

	rl := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(rl.Stop)

	return NewRouter(cfg, newTestLogger(), RouterDeps{
		Auth:       NewAuthHandler(&authServiceMock{}, newTestLogger()),
		Quiz:       NewQuizHandler(quizSvc, newTestLogger()),
		Vocabulary: NewVocabularyHandler(&vocabularyServiceMock{}, newTestLogger()),
		Progress:   NewProgressHandler(progressSvc, newTestLogger()),
		Health:     NewHealthHandler(&dbPingerMock{}, "test"),
		Sessions:   sessions,
		RateLimit:  rl,
	})
}

func TestRouter_HealthOpen(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouter_QuestionOpen(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/question/Level%201", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_StatsRequiresAuth(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/user/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestRouter_StatsWithValidToken(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/user/stats", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_InvalidTokenRejectedEverywhere(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/question/Level%201", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", rec.Code)
	}
}

func TestRouter_MetricsExposed(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
