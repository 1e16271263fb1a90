// Browse command starts the interactive list browser.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/erpdesk/internal/logging"
	"github.com/mesh-intelligence/erpdesk/internal/pages"
	"github.com/mesh-intelligence/erpdesk/internal/tui"
)

func newBrowseCmd(a *app) *cobra.Command {
	var pageSize int

	cmd := &cobra.Command{
		Use:   "browse <page>",
		Short: "Browse a list interactively",
		Long: `Browse opens a list page in the terminal. Keys:

  /        search            n, →   next page      p, ←   previous page
  + / -    page size         space  select row     a      select page
  f        cycle filter      c      next filter    x      clear filters
  d        delete selected   r      refresh        q      quit

Logs go to erpdesk.log in the data directory.`,
		Args: userArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := pages.Lookup(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("page-size") {
				pageSize = a.pageSize()
			}

			// The terminal belongs to the UI, so logs move to a file.
			cfg, err := a.storeConfig()
			if err != nil {
				return err
			}
			logger, closer, err := logging.OpenFile(cfg.DataDir, a.logLevel())
			if logger == nil {
				return sysErr(err)
			}
			defer closer.Close()
			a.logger = logger

			b, err := a.openBackend()
			if err != nil {
				return err
			}
			defer b.Close()

			loader := &pages.Loader{Source: b, Gateway: b, Logger: logger}
			list, err := loader.Open(cmd.Context(), page, 0)
			if err != nil {
				return err
			}
			if err := list.Controller.SetPageSize(pageSize); err != nil {
				return err
			}
			return tui.Run(cmd.Context(), list)
		},
	}
	cmd.Flags().IntVarP(&pageSize, "page-size", "n", 0, "initial rows per page (5, 10, 25 or 50)")
	return cmd
}
