// Create command adds a record through the mutation gateway.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create <entity|page> <json>",
		Short: "Create a record",
		Long: `Create sends a new record to the backend. The local store assigns a
UUID when the record has no "id".

Example:
  erpdesk create devises '{"code":"CHF","name":"Franc suisse","active":true}'`,
		Args: userArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			entity, err := resolveEntity(args[0])
			if err != nil {
				return err
			}
			rec, err := parseRecord(args[1])
			if err != nil {
				return err
			}

			b, err := a.openBackend()
			if err != nil {
				return err
			}
			defer b.Close()

			id, err := b.Create(cmd.Context(), entity, rec)
			if err != nil {
				return fmt.Errorf("create %s: %w", entity, err)
			}
			a.logger.Info("record created", "entity", entity, "id", id)

			if a.flagJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"entity": entity, "id": id})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s/%s\n", entity, id)
			return nil
		},
	}
}
