package app

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/flashsync/internal/server/handlers"
	"github.com/iudanet/flashsync/internal/server/middleware"
)

const healthPath = "/api/v1/health"

type routes struct {
	auth          *handlers.AuthHandler
	sync          *handlers.SyncHandler
	health        *handlers.HealthHandler
	authenticator middleware.Authenticator
	rateLimit     func(http.Handler) http.Handler
	logger        *slog.Logger
}

func newRouter(r routes) http.Handler {
	mux := http.NewServeMux()

	requireAuth := middleware.AuthMiddleware(r.logger, r.authenticator)

	mux.Handle("POST /api/v1/auth/signup", r.rateLimit(http.HandlerFunc(r.auth.Signup)))
	mux.Handle("POST /api/v1/auth/signin", r.rateLimit(http.HandlerFunc(r.auth.Signin)))
	mux.HandleFunc("POST /api/v1/auth/signout", r.auth.Signout)
	mux.HandleFunc("POST /api/v1/auth/status", r.auth.Status)

	mux.Handle("POST /api/v1/sync", requireAuth(http.HandlerFunc(r.sync.Sync)))
	mux.Handle("GET /api/v1/sync/status", requireAuth(http.HandlerFunc(r.sync.Status)))

	mux.HandleFunc("GET "+healthPath, r.health.Health)

	// Recovery снаружи, чтобы паника в логировании тоже перехватывалась
	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(r.logger, healthPath)(handler)
	handler = middleware.RecoveryMiddleware(r.logger)(handler)

	return handler
}
