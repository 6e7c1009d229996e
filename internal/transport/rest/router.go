package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vocaquiz/backend/internal/config"
	"github.com/vocaquiz/backend/internal/domain"
	"github.com/vocaquiz/backend/internal/transport/middleware"
)

// SessionValidator resolves bearer tokens into session contexts for the
// auth middleware.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*domain.SessionContext, error)
}

// RouterDeps bundles the handlers and middleware dependencies of the router.
type RouterDeps struct {
	Auth       *AuthHandler
	Quiz       *QuizHandler
	Vocabulary *VocabularyHandler
	Progress   *ProgressHandler
	Health     *HealthHandler
	Sessions   SessionValidator
	RateLimit  *middleware.RateLimiter
}

// NewRouter builds the full HTTP route table.
func NewRouter(cfg *config.Config, logger *slog.Logger, deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(deps.Sessions),
	)

	r.Get("/health", deps.Health.Health)
	r.Get("/health/live", deps.Health.Live)
	r.Get("/health/ready", deps.Health.Ready)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if deps.RateLimit != nil {
					r.Use(deps.RateLimit.Limit(cfg.Server.AuthRateLimit))
				}
				r.Post("/signup", deps.Auth.Signup)
				r.Post("/login", deps.Auth.Login)
				r.Post("/check-activation-code", deps.Auth.CheckActivationCode)
				r.Post("/generate-codes", deps.Auth.GenerateCodes)
				r.Get("/available-codes", deps.Auth.AvailableCodes)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/logout", deps.Auth.Logout)
				r.Get("/me", deps.Auth.Me)
			})
		})

		r.Get("/levels", deps.Vocabulary.Levels)
		r.Get("/levels/{level}/words", deps.Vocabulary.WordsByLevel)
		r.Get("/question/{level}", deps.Quiz.Question)
		r.Post("/check-answer", deps.Quiz.CheckAnswer)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/vocabulary-question", deps.Quiz.PersonalQuestion)
			r.Get("/user/stats", deps.Progress.Stats)
			r.Get("/user/mistakes", deps.Progress.Mistakes)

			r.Route("/vocabulary", func(r chi.Router) {
				r.Get("/", deps.Vocabulary.List)
				r.Post("/", deps.Vocabulary.AddWord)
				r.Get("/suggestions", deps.Vocabulary.Suggestions)
				r.Get("/search", deps.Vocabulary.SearchCatalog)
				r.Delete("/{word}", deps.Vocabulary.RemoveWord)
				r.Put("/{word}/notes", deps.Vocabulary.UpdateNotes)
				r.Post("/{word}/review", deps.Vocabulary.RecordReview)
			})
		})
	})

	return r
}
