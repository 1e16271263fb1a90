// Login command starts an authenticated session.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// envToken lets scripts log in without the token showing in argv.
const envToken = "ERPDESK_TOKEN"

func newLoginCmd(a *app) *cobra.Command {
	var refresh, user string

	cmd := &cobra.Command{
		Use:   "login [token]",
		Short: "Store an access token for the REST backend",
		Long: `Login stores the access token (and optional refresh token) used to
authorize REST requests. The token may also come from ERPDESK_TOKEN.`,
		Args: userArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := os.Getenv(envToken)
			if len(args) == 1 {
				token = args[0]
			}

			sess, err := a.sessions().Login(token, refresh, user)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			a.logger.Info("session started", "user", sess.User)

			who := sess.User
			if who == "" {
				who = "anonymous user"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", who)
			return nil
		},
	}
	cmd.Flags().StringVar(&refresh, "refresh-token", "", "refresh token")
	cmd.Flags().StringVarP(&user, "user", "u", "", "user name shown by whoami")
	return cmd
}
