// Get command prints one record.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/erpdesk/pkg/types"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <entity|page> <id>",
		Short: "Print a record as JSON",
		Long: `Get fetches the collection and prints the record with the given id.

Example:
  erpdesk get purchase_orders 7
  erpdesk get devises 1`,
		Args: userArgs(cobra.ExactArgs(2)),
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

			recs, err := b.Fetch(cmd.Context(), entity)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", entity, err)
			}
			rec, ok := findRecord(recs, args[1])
			if !ok {
				return fmt.Errorf("record %q not found in %s: %w", args[1], entity, types.ErrNotFound)
			}
			return writeJSON(cmd.OutOrStdout(), rec)
		},
	}
}
