// Pages command lists the registered list pages.
package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/erpdesk/internal/pages"
)

type pageInfo struct {
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Entity   string   `json:"entity"`
	Criteria []string `json:"criteria,omitempty"`
}

func newPagesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "List the available list pages",
		Args:  userArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			var infos []pageInfo
			for _, p := range pages.All() {
				info := pageInfo{Name: p.Name, Title: p.Title, Entity: p.Entity}
				for _, c := range p.Criteria {
					info.Criteria = append(info.Criteria, c.Name)
				}
				infos = append(infos, info)
			}

			if a.flagJSON {
				return writeJSON(cmd.OutOrStdout(), infos)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PAGE\tENTITY\tTITLE")
			for _, info := range infos {
				fmt.Fprintf(w, "%s\t%s\t%s\n", info.Name, info.Entity, info.Title)
			}
			return w.Flush()
		},
	}
}
