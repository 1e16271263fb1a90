// Whoami command shows the current session.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/erpdesk/pkg/types"
)

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  userArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.sessions().Load()
			if err != nil {
				return sysErr(err)
			}
			if !sess.Active() {
				return fmt.Errorf("whoami: %w", types.ErrNotLoggedIn)
			}

			if a.flagJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"user":       sess.User,
					"started_at": sess.StartedAt,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (since %s)\n", sess.User, sess.StartedAt.Local().Format(time.DateTime))
			return nil
		},
	}
}
