// List command renders one page of a list with search, filters, paging,
// and selection applied.
package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/erpdesk/internal/pages"
	"github.com/mesh-intelligence/erpdesk/pkg/listview"
	"github.com/mesh-intelligence/erpdesk/pkg/types"
)

type listFlags struct {
	search    string
	where     []string
	page      int
	pageSize  int
	selects   []string
	selectAll bool
}

type listRow struct {
	ID       string            `json:"id"`
	Selected bool              `json:"selected"`
	Fields   map[string]string `json:"fields"`
}

type listOutput struct {
	Page               string            `json:"page"`
	Title              string            `json:"title"`
	PageNumber         int               `json:"page_number"`
	TotalPages         int               `json:"total_pages"`
	PageSize           int               `json:"page_size"`
	Total              int               `json:"total"`
	Search             string            `json:"search,omitempty"`
	Criteria           []types.Criterion `json:"criteria,omitempty"`
	Selected           []string          `json:"selected"`
	AllVisibleSelected bool              `json:"all_visible_selected"`
	Records            []listRow         `json:"records"`
}

func newListCmd(a *app) *cobra.Command {
	var f listFlags

	cmd := &cobra.Command{
		Use:   "list <page>",
		Short: "Show one page of a list",
		Long: `List fetches a page's records and its reference collections, applies
the search term and filters, and prints the requested page. Foreign fields
are shown as the label of the record they point at, or N/A.

Run "erpdesk pages" for the page names.

Example:
  erpdesk list bons-commande
  erpdesk list bons-commande --search fourn --where state=confirmer
  erpdesk list comptes --page 2 --page-size 5
  erpdesk list devises --select 1 --select 3 --json`,
		Args: userArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("page-size") {
				f.pageSize = a.pageSize()
			}
			return a.runList(cmd.Context(), cmd.OutOrStdout(), args[0], f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.search, "search", "s", "", "free-text search over the page's search fields")
	fl.StringArrayVarP(&f.where, "where", "w", nil, "filter name=value (repeatable; value \"all\" clears)")
	fl.IntVarP(&f.page, "page", "p", 1, "page number (clamped to the last page)")
	fl.IntVarP(&f.pageSize, "page-size", "n", listview.DefaultPageSize, "rows per page (5, 10, 25 or 50)")
	fl.StringArrayVar(&f.selects, "select", nil, "select a record by id (repeatable)")
	fl.BoolVar(&f.selectAll, "select-all", false, "toggle selection of every visible record")
	return cmd
}

func (a *app) runList(ctx context.Context, out io.Writer, name string, f listFlags) error {
	page, err := pages.Lookup(name)
	if err != nil {
		return err
	}

	b, err := a.openBackend()
	if err != nil {
		return err
	}
	defer b.Close()

	loader := &pages.Loader{Source: b, Gateway: b, Logger: a.logger}
	list, err := loader.Open(ctx, page, 0)
	if err != nil {
		return err
	}

	if err := applyListFlags(list.Controller, f); err != nil {
		return err
	}

	v := list.Controller.View()
	if a.flagJSON {
		return writeJSON(out, listJSON(list, v))
	}
	return printList(out, list, v)
}

// applyListFlags drives the controller with the flags in the order a user
// would: page size, filters, search, page, then selection.
func applyListFlags(ctrl *listview.Controller, f listFlags) error {
	if f.pageSize != ctrl.View().PageSize {
		if err := ctrl.SetPageSize(f.pageSize); err != nil {
			return err
		}
	}
	for _, w := range f.where {
		name, value, ok := strings.Cut(w, "=")
		if !ok || name == "" {
			return userErr(fmt.Errorf("invalid filter %q (expected name=value)", w))
		}
		if err := ctrl.SetCriterion(name, value); err != nil {
			return err
		}
	}
	if f.search != "" {
		ctrl.SetSearchTerm(f.search)
	}
	ctrl.SetPage(f.page)

	seen := make(map[string]bool, len(f.selects))
	for _, id := range f.selects {
		if !seen[id] {
			seen[id] = true
			ctrl.ToggleSelectOne(id)
		}
	}
	if f.selectAll {
		ctrl.ToggleSelectAllVisible()
	}
	return nil
}

func listJSON(list *pages.List, v listview.View) listOutput {
	ctrl := list.Controller
	out := listOutput{
		Page:               list.Page.Name,
		Title:              list.Page.Title,
		PageNumber:         v.Page,
		TotalPages:         v.TotalPages,
		PageSize:           v.PageSize,
		Total:              v.TotalFiltered,
		Search:             v.SearchTerm,
		Selected:           v.Selected,
		AllVisibleSelected: v.AllVisibleSelected,
		Records:            make([]listRow, 0, len(v.VisibleRecords)),
	}
	for _, c := range v.Criteria {
		if c.Active() {
			out.Criteria = append(out.Criteria, c)
		}
	}

	selected := selectedSet(v)
	for _, rec := range v.VisibleRecords {
		id, _ := rec.ID(ctrl.IDField())
		row := listRow{ID: id, Selected: selected[id], Fields: make(map[string]string, len(list.Page.Columns))}
		for _, col := range list.Page.Columns {
			row.Fields[col.Field] = col.Cell(rec, ctrl)
		}
		out.Records = append(out.Records, row)
	}
	return out
}

func printList(out io.Writer, list *pages.List, v listview.View) error {
	ctrl := list.Controller
	selected := selectedSet(v)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tID\t%s\n", mark(v.AllVisibleSelected), strings.Join(list.Page.Headers(), "\t"))
	for _, rec := range v.VisibleRecords {
		id, _ := rec.ID(ctrl.IDField())
		fmt.Fprintf(w, "%s\t%s\t%s\n", mark(selected[id]), id, strings.Join(list.Page.Row(rec, ctrl), "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out, pages.Footer(v))
	return err
}

func selectedSet(v listview.View) map[string]bool {
	set := make(map[string]bool, len(v.Selected))
	for _, id := range v.Selected {
		set[id] = true
	}
	return set
}

func mark(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}
