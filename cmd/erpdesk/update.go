// Update command replaces a record through the mutation gateway.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <entity|page> <id> <json>",
		Short: "Replace a record",
		Long: `Update replaces the record with the given id. The identifier cannot be
changed.

Example:
  erpdesk update bons-commande 7 '{"name":"BC-2024-007","state":"recu"}'`,
		Args: userArgs(cobra.ExactArgs(3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			entity, err := resolveEntity(args[0])
			if err != nil {
				return err
			}
			rec, err := parseRecord(args[2])
			if err != nil {
				return err
			}

			b, err := a.openBackend()
			if err != nil {
				return err
			}
			defer b.Close()

			if err := b.Update(cmd.Context(), entity, args[1], rec); err != nil {
				return fmt.Errorf("update %s/%s: %w", entity, args[1], err)
			}
			a.logger.Info("record updated", "entity", entity, "id", args[1])
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s/%s\n", entity, args[1])
			return nil
		},
	}
}
