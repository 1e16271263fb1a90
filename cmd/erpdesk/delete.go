// Delete command removes records through the mutation gateway.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <entity|page> <id>...",
		Short: "Delete records by id",
		Long: `Delete removes each record in turn and stops at the first failure;
records deleted before it stay deleted.

Example:
  erpdesk delete bons-commande 3 4 5`,
		Args: userArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			entity, err := resolveEntity(args[0])
			if err != nil {
				return err
			}

			b, err := a.openBackend()
			if err != nil {
				return err
			}
			defer b.Close()

			for _, id := range args[1:] {
				if err := b.Delete(cmd.Context(), entity, id); err != nil {
					return fmt.Errorf("delete %s/%s: %w", entity, id, err)
				}
				a.logger.Info("record deleted", "entity", entity, "id", id)
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s/%s\n", entity, id)
			}
			return nil
		},
	}
}
