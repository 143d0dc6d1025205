// Command cleanup-tokens deletes expired and revoked refresh tokens.
// Intended to run from cron.
//
// Requires DATABASE_DSN; see internal/config for the full variable list.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/lemarche/marketplace-backend/internal/adapter/postgres"
	tokenrepo "github.com/lemarche/marketplace-backend/internal/adapter/postgres/token"
	"github.com/lemarche/marketplace-backend/internal/app"
	"github.com/lemarche/marketplace-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	count, err := tokenrepo.New(pool).DeleteExpired(ctx)
	if err != nil {
		logger.Error("cleanup tokens", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("cleanup done", slog.Int("deleted", count))
}
