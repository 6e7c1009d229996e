package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/jonboulle/clockwork"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/vocaquiz/backend/internal/adapter/postgres"
	accountrepo "github.com/vocaquiz/backend/internal/adapter/postgres/account"
	corpusrepo "github.com/vocaquiz/backend/internal/adapter/postgres/corpus"
	libraryrepo "github.com/vocaquiz/backend/internal/adapter/postgres/library"
	progressrepo "github.com/vocaquiz/backend/internal/adapter/postgres/progress"
	sessionrepo "github.com/vocaquiz/backend/internal/adapter/postgres/session"
	"github.com/vocaquiz/backend/internal/adapter/provider/googletrans"
	authtoken "github.com/vocaquiz/backend/internal/auth"
	"github.com/vocaquiz/backend/internal/config"
	authsvc "github.com/vocaquiz/backend/internal/service/auth"
	progresssvc "github.com/vocaquiz/backend/internal/service/progress"
	quizsvc "github.com/vocaquiz/backend/internal/service/quiz"
	translationsvc "github.com/vocaquiz/backend/internal/service/translation"
	vocabularysvc "github.com/vocaquiz/backend/internal/service/vocabulary"
	"github.com/vocaquiz/backend/internal/transport/middleware"
	"github.com/vocaquiz/backend/internal/transport/rest"
	"github.com/vocaquiz/backend/migrations"
)

// Run is the application entry point. It loads configuration, connects to
// the database, applies pending migrations, wires the services and the HTTP
// router, and serves until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		if err := runMigrations(ctx, logger, cfg.Database.DSN); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}

	accounts := accountrepo.New(pool)
	sessions := sessionrepo.New(pool)
	corpus := corpusrepo.New(pool)
	library := libraryrepo.New(pool)
	progress := progressrepo.New(pool)
	tx := postgres.NewTxManager(pool)

	translator := googletrans.New(
		cfg.Translator.BaseURL,
		cfg.Translator.SourceLang,
		cfg.Translator.TargetLang,
		cfg.Translator.Timeout,
		logger,
	)
	translation := translationsvc.NewService(logger, translator)

	auth := authsvc.NewService(
		logger, accounts, sessions, tx,
		clockwork.NewRealClock(),
		authtoken.GenerateSessionToken,
		authtoken.GenerateActivationCode,
		cfg.Auth,
	)
	progressSvc := progresssvc.NewService(logger, progress, translation)
	quiz := quizsvc.NewService(
		logger, corpus, library, translation, progressSvc,
		rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(os.Getpid()))),
		cfg.Quiz,
	)
	vocab := vocabularysvc.NewService(logger, corpus, library, translation)

	rateLimiter := middleware.NewRateLimiter(10 * time.Minute)
	defer rateLimiter.Stop()

	router := rest.NewRouter(cfg, logger, rest.RouterDeps{
		Auth:       rest.NewAuthHandler(auth, logger),
		Quiz:       rest.NewQuizHandler(quiz, logger),
		Vocabulary: rest.NewVocabularyHandler(vocab, logger),
		Progress:   rest.NewProgressHandler(progressSvc, logger),
		Health:     rest.NewHealthHandler(pool, BuildVersion()),
		Sessions:   auth,
		RateLimit:  rateLimiter,
	})

	scheduler := gocron.NewScheduler(time.UTC)
	_, err = scheduler.Every(cfg.Auth.SessionCleanupInterval).Do(func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		purged, err := auth.PurgeStaleSessions(jobCtx)
		if err != nil {
			logger.Error("purge stale sessions", slog.String("error", err.Error()))
			return
		}
		if purged > 0 {
			logger.Info("purged stale sessions", slog.Int("count", purged))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule session cleanup: %w", err)
	}
	scheduler.StartAsync()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}

// runMigrations applies pending goose migrations over a stdlib connection.
// The pgx pool cannot be reused here because goose drives database/sql.
func runMigrations(ctx context.Context, logger *slog.Logger, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return err
	}
	if len(results) > 0 {
		logger.Info("applied migrations", slog.Int("count", len(results)))
	}

	return nil
}
