package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func (c *Cli) newSigninCommand() *cobra.Command {
	var username string
	var passwords Passwords

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in and store the session locally",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.withStore(func(ctx context.Context, args []string) error {
		return c.runSignin(ctx, username, passwords)
	})
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	addPasswordFlags(cmd, &passwords)

	return cmd
}

func (c *Cli) runSignin(ctx context.Context, username string, passwords Passwords) error {
	username, err := c.getUsername(username)
	if err != nil {
		return err
	}

	password, err := c.getPassword(passwords, "Password: ")
	if err != nil {
		return err
	}

	session, err := c.auth.Signin(ctx, username, password)
	if err != nil {
		return fmt.Errorf("signin failed: %w", err)
	}

	c.io.Printf("✓ Signed in as %s\n", session.Username)
	c.io.Printf("Session expires at %s\n", time.Unix(session.ExpiresAt, 0).Format(time.RFC3339))
	return nil
}
