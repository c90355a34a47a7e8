package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/docuchain/docuchain-backend/internal/adapter/ipfs"
	"github.com/docuchain/docuchain-backend/internal/adapter/ledger"
	"github.com/docuchain/docuchain-backend/internal/adapter/postgres"
	activitypg "github.com/docuchain/docuchain-backend/internal/adapter/postgres/activity"
	documentpg "github.com/docuchain/docuchain-backend/internal/adapter/postgres/document"
	mirrorpg "github.com/docuchain/docuchain-backend/internal/adapter/postgres/mirror"
	userpg "github.com/docuchain/docuchain-backend/internal/adapter/postgres/user"
	jwtauth "github.com/docuchain/docuchain-backend/internal/auth"
	"github.com/docuchain/docuchain-backend/internal/config"
	"github.com/docuchain/docuchain-backend/internal/cryptostore"
	authsvc "github.com/docuchain/docuchain-backend/internal/service/auth"
	documentsvc "github.com/docuchain/docuchain-backend/internal/service/document"
	mirrorsvc "github.com/docuchain/docuchain-backend/internal/service/mirror"
	"github.com/docuchain/docuchain-backend/internal/transport/middleware"
	"github.com/docuchain/docuchain-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, runs database
// migrations, wires adapters and services, starts the ledger mirror worker,
// and serves the REST API until the context is cancelled.
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

	if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	documentRepo := documentpg.New(pool)
	activityRepo := activitypg.New(pool)
	userRepo := userpg.New(pool)
	mirrorRepo := mirrorpg.New(pool)

	ipfsClient := ipfs.NewClient(cfg.IPFS, logger)
	store := cryptostore.New(ipfsClient)
	ledgerClient := ledger.NewClient(cfg.Ledger, logger)

	jwtManager := jwtauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	txManager := postgres.NewTxManager(pool)

	authService := authsvc.NewService(logger, userRepo, jwtManager)
	documentService := documentsvc.NewService(
		logger, documentRepo, activityRepo, userRepo, store, ledgerClient, mirrorRepo, txManager, cfg.Vault,
	)

	if cfg.Mirror.Enabled {
		worker := mirrorsvc.NewWorker(logger, mirrorRepo, ledgerClient, documentRepo, cfg.Mirror)
		go worker.Run(ctx)
	} else {
		logger.Info("ledger mirror worker disabled")
	}

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := newRouter(cfg, logger, routerDeps{
		auth:      rest.NewAuthHandler(authService, logger),
		documents: rest.NewDocumentHandler(documentService, logger, cfg.Vault.MaxUploadBytes),
		health:    rest.NewHealthHandler(pool, ipfsClient, BuildVersion()),
		validator: authService,
		limiter:   limiter,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
