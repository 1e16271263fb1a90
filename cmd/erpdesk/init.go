// Init command for the erpdesk CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and local store directories",
		Args:  userArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			// prepare already wrote the default config.yaml.
			b, err := a.openBackend()
			if err != nil {
				return err
			}
			defer b.Close()

			cfg, err := a.storeConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "erpdesk initialized")
			fmt.Fprintln(out, "  config: ", a.configDir)
			fmt.Fprintln(out, "  backend:", cfg.Backend)
			fmt.Fprintln(out, "  data:   ", cfg.DataDir)
			return nil
		},
	}
}
