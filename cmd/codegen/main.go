// Command codegen mints a batch of activation codes and prints them to
// stdout, one per line. Codes are handed out manually; the server only
// redeems them.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/vocaquiz/backend/internal/adapter/postgres"
	accountrepo "github.com/vocaquiz/backend/internal/adapter/postgres/account"
	sessionrepo "github.com/vocaquiz/backend/internal/adapter/postgres/session"
	"github.com/vocaquiz/backend/internal/app"
	authtoken "github.com/vocaquiz/backend/internal/auth"
	"github.com/vocaquiz/backend/internal/config"
	authsvc "github.com/vocaquiz/backend/internal/service/auth"
)

func main() {
	countFlag := flag.Int("count", 10, "number of activation codes to generate")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	auth := authsvc.NewService(
		logger,
		accountrepo.New(pool),
		sessionrepo.New(pool),
		postgres.NewTxManager(pool),
		clockwork.NewRealClock(),
		authtoken.GenerateSessionToken,
		authtoken.GenerateActivationCode,
		cfg.Auth,
	)

	codes, err := auth.CreateActivationCodes(ctx, authsvc.GenerateCodesInput{Count: *countFlag})
	if err != nil {
		logger.Error("generate codes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, code := range codes {
		fmt.Println(code)
	}

	logger.Info("generated activation codes", slog.Int("count", len(codes)))
}
