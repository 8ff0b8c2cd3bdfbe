// Package app wires the HTTP server: storage, services, handlers and middleware.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/iudanet/flashsync/internal/crypto"
	"github.com/iudanet/flashsync/internal/server/config"
	"github.com/iudanet/flashsync/internal/server/handlers"
	"github.com/iudanet/flashsync/internal/server/jwt"
	"github.com/iudanet/flashsync/internal/server/middleware"
	"github.com/iudanet/flashsync/internal/server/storage/sqlite"
	"github.com/iudanet/flashsync/internal/server/sync"
)

// App is a configured server ready to run
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	users    *sqlite.Storage
	accounts *sqlite.Provider
	limiter  *middleware.RateLimiter
	handler  http.Handler
}

// New opens the storage under cfg.DataDir and builds the HTTP handler
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, version string) (*App, error) {
	// Provider создает data_dir/accounts, а вместе с ним и data_dir
	accounts, err := sqlite.NewProvider(filepath.Join(cfg.DataDir, "accounts"), cfg.MaxOpenAccounts, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create account provider: %w", err)
	}

	users, err := sqlite.New(ctx, filepath.Join(cfg.DataDir, "accounts.db"))
	if err != nil {
		_ = accounts.Close()
		return nil, fmt.Errorf("failed to open accounts database: %w", err)
	}

	tokens := jwt.NewService(cfg.JWT.Secret, cfg.JWT.TTL)
	syncService := sync.NewService(accounts, logger)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.AuthRate, cfg.RateLimit.AuthWindow, logger)

	a := &App{
		cfg:      cfg,
		logger:   logger,
		users:    users,
		accounts: accounts,
		limiter:  limiter,
	}

	authHandler := handlers.NewAuthHandler(logger, users, tokens, crypto.NewPasswordHasher(0), cfg.SecureCookies)
	syncHandler := handlers.NewSyncHandler(logger, syncService)
	healthHandler := handlers.NewHealthHandler(logger, users, version)

	a.handler = newRouter(routes{
		auth:          authHandler,
		sync:          syncHandler,
		health:        healthHandler,
		authenticator: middleware.NewTokenAuthenticator(tokens, logger),
		rateLimit:     limiter.Middleware(cfg.TrustProxy),
		logger:        logger,
	})

	return a, nil
}

// Handler returns the root HTTP handler
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run serves HTTP on cfg.Addr until ctx is canceled, then shuts down
// gracefully: in-flight requests get up to cfg.ShutdownTimeout to finish.
func (a *App) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", a.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.cfg.Addr, err)
	}

	return a.Serve(ctx, listener)
}

// Serve is Run on an existing listener
func (a *App) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
		ErrorLog:          slog.NewLogLogger(a.logger.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Server listening", "addr", listener.Addr().String())
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down server", "timeout", a.cfg.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.ShutdownTimeout)
	defer cancel()

	// Запросы не наследуют ctx: Shutdown дожидается их завершения
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Join(fmt.Errorf("graceful shutdown failed: %w", err), srv.Close())
	}

	return nil
}

// Close releases the databases and background workers
func (a *App) Close() error {
	a.limiter.Stop()
	return errors.Join(a.accounts.Close(), a.users.Close())
}
