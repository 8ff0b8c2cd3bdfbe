package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func (c *Cli) newSignoutCommand() *cobra.Command {
	var forget bool

	cmd := &cobra.Command{
		Use:   "signout",
		Short: "Drop the local session",
		Long: `Drop the local session.

Unsynced changes are kept and uploaded after the same user signs in again.
With --forget the local database is emptied as well.`,
		Args: cobra.NoArgs,
	}
	cmd.RunE = c.withStore(func(ctx context.Context, args []string) error {
		if err := c.auth.Signout(ctx, forget); err != nil {
			return err
		}
		if forget {
			c.io.Println("✓ Signed out, local data removed")
		} else {
			c.io.Println("✓ Signed out")
		}
		return nil
	})
	cmd.Flags().BoolVar(&forget, "forget", false, "also remove all local decks, cards and reviews")

	return cmd
}
