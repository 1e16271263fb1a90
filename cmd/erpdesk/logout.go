// Logout command ends the session.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored tokens",
		Args:  userArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := a.sessions()
			if _, err := store.Load(); err != nil {
				a.logger.Warn("discarding unreadable session", "err", err)
			}
			redirect, err := store.Logout()
			if err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			a.logger.Info("session ended")
			fmt.Fprintf(cmd.OutOrStdout(), "Logged out; sign in again at %s\n", redirect)
			return nil
		},
	}
}
