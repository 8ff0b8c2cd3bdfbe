package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/flashsync/internal/client/auth"
)

func (c *Cli) newStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show session and sync state",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.withStore(c.runStatus)
	return cmd
}

func (c *Cli) runStatus(ctx context.Context, args []string) error {
	pending, err := c.sync.Pending(ctx)
	if err != nil {
		return err
	}
	lastSync, err := c.store.LastSync(ctx)
	if err != nil {
		return err
	}

	session, err := c.auth.Session(ctx)
	switch {
	case errors.Is(err, auth.ErrNotSignedIn):
		c.io.Println("Status: not signed in")
	case err != nil:
		return err
	default:
		c.io.Printf("Status: signed in as %s\n", session.Username)
		c.io.Printf("Session expires at %s\n", time.Unix(session.ExpiresAt, 0).Format(time.RFC3339))
	}

	c.io.Printf("Last sync:       %d\n", lastSync)
	c.io.Printf("Pending changes: %d\n", pending)

	if session == nil {
		return nil
	}

	// Сервер может быть недоступен, локальное состояние уже выведено
	serverSeq, err := c.sync.ServerSeq(ctx)
	if err != nil {
		c.io.Printf("Server:          unavailable (%v)\n", err)
		return nil
	}
	c.io.Printf("Server max seq:  %d\n", serverSeq)
	return nil
}
