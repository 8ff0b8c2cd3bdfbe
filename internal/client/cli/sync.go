package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *Cli) newSyncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Upload local changes and download changes from other devices",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.withStore(c.runSync)
	return cmd
}

func (c *Cli) runSync(ctx context.Context, args []string) error {
	result, err := c.sync.Sync(ctx)
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	c.io.Println("✓ Synchronization completed")
	c.io.Printf("Pushed to server:   %d\n", result.Pushed)
	c.io.Printf("Pulled from server: %d\n", result.Pulled)
	c.io.Printf("Last sync:          %d\n", result.LastSync)
	return nil
}
