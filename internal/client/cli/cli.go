package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/flashsync/internal/client/api"
	"github.com/iudanet/flashsync/internal/client/auth"
	"github.com/iudanet/flashsync/internal/client/data"
	"github.com/iudanet/flashsync/internal/client/iocli"
	"github.com/iudanet/flashsync/internal/client/storage/boltdb"
	"github.com/iudanet/flashsync/internal/client/sync"
)

// PasswordEnv overrides every other password source when set
const PasswordEnv = "FLASHSYNC_PASSWORD"

// Options are the global flags of the client
type Options struct {
	ServerURL string
	DBPath    string
	Verbose   bool
}

// Passwords lists the non-interactive password sources of a command
type Passwords struct {
	FromFile string
	FromArgs string
}

// Cli wires the client services for one command invocation
type Cli struct {
	opts    Options
	io      iocli.IO
	auth    *auth.Service
	data    *data.Service
	sync    *sync.Service
	store   *boltdb.Storage
	logger  *slog.Logger
	version string
}

// NewRootCommand builds the flashsync client command tree
func NewRootCommand(ioc iocli.IO, version string) *cobra.Command {
	c := &Cli{io: ioc, version: version}

	cmd := &cobra.Command{
		Use:           "flashsync",
		Short:         "Flashcards that sync between devices",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(ioc)
	cmd.SetErr(ioc)

	flags := cmd.PersistentFlags()
	flags.StringVar(&c.opts.ServerURL, "server", envOr("FLASHSYNC_SERVER", "http://localhost:8080"), "server URL")
	flags.StringVar(&c.opts.DBPath, "db", envOr("FLASHSYNC_DB", "flashsync.db"), "path to the local database")
	flags.BoolVarP(&c.opts.Verbose, "verbose", "v", false, "log sync details to stderr")

	cmd.AddCommand(
		c.newSignupCommand(),
		c.newSigninCommand(),
		c.newSignoutCommand(),
		c.newStatusCommand(),
		c.newSyncCommand(),
		c.newDeckCommand(),
		c.newCardCommand(),
		c.newReviewCommand(),
		c.newListCommand(),
		c.newVersionCommand(),
	)

	return cmd
}

// withStore opens the local store around fn and closes it afterwards
func (c *Cli) withStore(fn func(ctx context.Context, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := c.open(cmd.Context()); err != nil {
			return err
		}
		defer func() {
			if err := c.close(); err != nil {
				c.logger.Warn("Failed to close local store", "error", err)
			}
		}()
		return fn(cmd.Context(), args)
	}
}

func (c *Cli) open(ctx context.Context) error {
	level := slog.LevelWarn
	if c.opts.Verbose {
		level = slog.LevelDebug
	}
	c.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	store, err := boltdb.New(ctx, c.opts.DBPath)
	if err != nil {
		return err
	}
	c.store = store

	apiClient := api.NewClient(c.opts.ServerURL)
	c.auth = auth.NewService(apiClient, store, store, c.logger)
	c.data = data.NewService(store)
	c.sync = sync.NewService(apiClient, store, store, c.logger)

	return nil
}

func (c *Cli) close() error {
	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	return err
}

// getPassword retrieves the password with priority:
// 1. Environment variable FLASHSYNC_PASSWORD
// 2. File given by --password-file
// 3. --password flag
// 4. Interactive prompt
func (c *Cli) getPassword(passwords Passwords, prompt string) (string, error) {
	if envPassword := os.Getenv(PasswordEnv); envPassword != "" {
		return envPassword, nil
	}

	if passwords.FromFile != "" {
		content, err := os.ReadFile(passwords.FromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", errors.New("password file is empty")
		}
		return password, nil
	}

	if passwords.FromArgs != "" {
		return passwords.FromArgs, nil
	}

	password, err := c.io.ReadPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	return password, nil
}

func (c *Cli) getUsername(fromArgs string) (string, error) {
	if fromArgs != "" {
		return fromArgs, nil
	}
	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return "", fmt.Errorf("failed to read username: %w", err)
	}
	return strings.TrimSpace(username), nil
}

func addPasswordFlags(cmd *cobra.Command, passwords *Passwords) {
	cmd.Flags().StringVar(&passwords.FromArgs, "password", "", "password (prefer "+PasswordEnv+" or --password-file)")
	cmd.Flags().StringVar(&passwords.FromFile, "password-file", "", "file containing the password")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
