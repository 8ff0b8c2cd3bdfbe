package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/flashsync/internal/crypto"
	"github.com/iudanet/flashsync/internal/server/app"
	"github.com/iudanet/flashsync/internal/server/config"
	"github.com/iudanet/flashsync/internal/server/seed"
	"github.com/iudanet/flashsync/internal/server/storage/sqlite"
	"github.com/iudanet/flashsync/internal/server/sync"
	"github.com/iudanet/flashsync/internal/validation"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "flashsync-server",
		Short:         "Flashcard sync server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newSeedCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP sync server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg, logger, Version)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.Close(); err != nil {
					logger.Error("Failed to close storage", "error", err)
				}
			}()

			logger.Info("Starting flashsync server",
				"version", Version,
				"addr", cfg.Addr,
				"data_dir", cfg.DataDir)

			return a.Run(ctx)
		},
	}

	config.RegisterFlags(cmd.Flags())

	return cmd
}

func newSeedCommand() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a user (if missing) and add demo decks to its account",
		Long: `Create a user (if missing) and add two demo decks to its account.

The decks are written through the regular sync path, so connected clients
receive them on their next sync.

Example:
  flashsync-server seed --username alice --password test1234 --data_dir ./data`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.ValidateStorage(); err != nil {
				return err
			}
			if err := validation.ValidateCredentials(username, password); err != nil {
				return err
			}

			return runSeed(cmd.Context(), cfg, newLogger(cfg), username, password)
		},
	}

	cmd.Flags().StringVar(&username, "username", "alice", "account username")
	cmd.Flags().StringVar(&password, "password", "", "password for a newly created user (required)")
	_ = cmd.MarkFlagRequired("password")
	config.RegisterFlags(cmd.Flags())

	return cmd
}

func runSeed(ctx context.Context, cfg *config.Config, logger *slog.Logger, username, password string) error {
	accounts, err := sqlite.NewProvider(filepath.Join(cfg.DataDir, "accounts"), cfg.MaxOpenAccounts, logger)
	if err != nil {
		return err
	}
	defer accounts.Close()

	users, err := sqlite.New(ctx, filepath.Join(cfg.DataDir, "accounts.db"))
	if err != nil {
		return err
	}
	defer users.Close()

	now := time.Now()
	user, created, err := seed.EnsureUser(ctx, users, crypto.NewPasswordHasher(0), username, password, now)
	if err != nil {
		return err
	}
	if created {
		logger.Info("User created", "username", user.Username, "user_id", user.ID)
	}

	resp, err := seed.Seed(ctx, sync.NewService(accounts, logger), user.ID, now)
	if err != nil {
		return err
	}

	logger.Info("Demo data added", "username", user.Username, "records", len(resp.Local))
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "flashsync server\n")
			fmt.Fprintf(out, "Version:    %s\n", Version)
			fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
			fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
		},
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}

	var handler slog.Handler
	if cfg.Log.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
