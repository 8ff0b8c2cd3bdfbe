package cli

import (
	"github.com/spf13/cobra"
)

func (c *Cli) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			c.io.Printf("flashsync client %s\n", c.version)
		},
	}
}
