package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *Cli) newSignupCommand() *cobra.Command {
	var username string
	var passwords Passwords

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new account on the server",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.withStore(func(ctx context.Context, args []string) error {
		return c.runSignup(ctx, username, passwords)
	})
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	addPasswordFlags(cmd, &passwords)

	return cmd
}

func (c *Cli) runSignup(ctx context.Context, username string, passwords Passwords) error {
	username, err := c.getUsername(username)
	if err != nil {
		return err
	}

	password, err := c.getPassword(passwords, "Password: ")
	if err != nil {
		return err
	}

	userID, err := c.auth.Signup(ctx, username, password)
	if err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}

	c.io.Printf("✓ Account %s created (%s)\n", username, userID)
	c.io.Println("Run 'flashsync signin' to start syncing.")
	return nil
}
