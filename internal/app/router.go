package app

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/docuchain/docuchain-backend/internal/config"
	"github.com/docuchain/docuchain-backend/internal/transport/middleware"
	"github.com/docuchain/docuchain-backend/internal/transport/rest"
)

type tokenValidator interface {
	ValidateToken(token string) (uuid.UUID, string, error)
}

type routerDeps struct {
	auth      *rest.AuthHandler
	documents *rest.DocumentHandler
	health    *rest.HealthHandler
	validator tokenValidator
	limiter   *middleware.RateLimiter
}

// newRouter assembles the route table. All API routes share the common
// middleware chain; register and login additionally go through the per-IP
// rate limiter.
func newRouter(cfg *config.Config, logger *slog.Logger, deps routerDeps) http.Handler {
	common := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.ClientInfo(),
		middleware.Auth(deps.validator),
	)
	authLimit := deps.limiter.Limit(cfg.Server.AuthRateLimit)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", deps.health.Live)
	mux.HandleFunc("GET /ready", deps.health.Ready)
	mux.HandleFunc("GET /health", deps.health.Health)

	mux.Handle("POST /api/v1/auth/register", authLimit(http.HandlerFunc(deps.auth.Register)))
	mux.Handle("POST /api/v1/auth/login", authLimit(http.HandlerFunc(deps.auth.Login)))
	mux.HandleFunc("GET /api/v1/auth/me", deps.auth.Me)

	mux.HandleFunc("POST /api/v1/documents", deps.documents.Upload)
	mux.HandleFunc("GET /api/v1/documents", deps.documents.List)
	mux.HandleFunc("GET /api/v1/documents/{id}", deps.documents.Get)
	mux.HandleFunc("DELETE /api/v1/documents/{id}", deps.documents.Delete)
	mux.HandleFunc("GET /api/v1/documents/{id}/download", deps.documents.Download)
	mux.HandleFunc("POST /api/v1/documents/{id}/share", deps.documents.Share)
	mux.HandleFunc("DELETE /api/v1/documents/{id}/share/{userId}", deps.documents.Revoke)
	mux.HandleFunc("GET /api/v1/documents/{id}/logs", deps.documents.Logs)
	mux.HandleFunc("GET /api/v1/activity", deps.documents.Activity)

	return common(mux)
}
