// Seed command loads demo data into the local store.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/erpdesk/pkg/erpdesk"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo ERP data into the local store",
		Long: `Seed fills every empty collection of the local store with demo data:
companies, currencies, suppliers, 25 purchase orders, and so on.
Collections that already hold records are left alone.`,
		Args: userArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.openBackend()
			if err != nil {
				return err
			}
			defer b.Close()

			seeder, ok := b.(erpdesk.Seeder)
			if !ok {
				return userErr(errors.New("seed: only the local store can be seeded"))
			}
			if err := seeder.Seed(cmd.Context()); err != nil {
				return sysErr(fmt.Errorf("seed: %w", err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Demo data loaded")
			return nil
		},
	}
}
