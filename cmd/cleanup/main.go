// Command cleanup physically removes access grants that expired before the
// retention cutoff. Expiry is enforced lazily at read time, so this is pure
// storage hygiene. It is intended to be invoked by an external cron job, not
// as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/docuchain/docuchain-backend/internal/adapter/postgres"
	"github.com/docuchain/docuchain-backend/internal/adapter/postgres/document"
	"github.com/docuchain/docuchain-backend/internal/app"
	"github.com/docuchain/docuchain-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	documentRepo := document.New(pool)

	cutoff := time.Now().UTC()

	deleted, err := documentRepo.DeleteExpiredGrants(ctx, cutoff)
	if err != nil {
		logger.Error("grant cleanup failed",
			slog.String("error", err.Error()),
			slog.Time("cutoff", cutoff),
		)
		os.Exit(1)
	}

	logger.Info("grant cleanup completed",
		slog.Int64("deleted", deleted),
		slog.Time("cutoff", cutoff),
	)
}
