// Package tui is the interactive list browser started by `erpdesk browse`.
// It renders one page controller as a table and maps keys onto the
// controller's search, filter, paging, and selection operations.
package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/erpdesk/internal/pages"
	"github.com/mesh-intelligence/erpdesk/pkg/types"
)

const (
	maxColumnWidth = 32
	cellPadding    = 2 // table cells pad one space each side
	chromeHeight   = 8 // title, search, filters, footer, status, help
)

// fetchedMsg carries a completed background fetch.
type fetchedMsg struct {
	snap *pages.Snapshot
	err  error
}

// deletedMsg carries a completed background delete and the refetch that
// followed it.
type deletedMsg struct {
	n        int
	err      error
	fetchErr error
	snap     *pages.Snapshot
}

// Model is the bubbletea model for one list page.
type Model struct {
	ctx  context.Context
	list *pages.List

	table  table.Model
	search textinput.Model
	help   help.Model
	keys   keyMap

	rowIDs     []string
	searching  bool
	confirming bool
	criterion  int
	height     int
	status     string
	err        error
}

// New creates the browser for an opened list.
func New(ctx context.Context, list *pages.List) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search"
	ti.CharLimit = 120

	t := table.New(table.WithFocused(true))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true)
	styles.Selected = styles.Selected.Bold(true)
	t.SetStyles(styles)

	m := Model{
		ctx:    ctx,
		list:   list,
		table:  t,
		search: ti,
		help:   help.New(),
		keys:   defaultKeyMap(),
	}
	m.sync()
	return m
}

// Run starts the browser and blocks until the user quits or ctx ends.
func Run(ctx context.Context, list *pages.List) error {
	p := tea.NewProgram(New(ctx, list), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.help.Width = msg.Width
		m.sync()
		return m, nil

	case fetchedMsg:
		if msg.err != nil {
			if !m.superseded(msg.err) {
				m.err = msg.err
			}
			return m, nil
		}
		if m.list.Apply(msg.snap) {
			m.err = nil
			m.status = "refreshed"
			m.sync()
		}
		return m, nil

	case deletedMsg:
		m.status = fmt.Sprintf("deleted %d record(s)", msg.n)
		m.err = msg.err
		if msg.fetchErr != nil && !m.superseded(msg.fetchErr) {
			m.err = errors.Join(m.err, msg.fetchErr)
		}
		if msg.snap != nil {
			m.list.Apply(msg.snap)
		}
		m.sync()
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		if m.confirming {
			return m.updateConfirm(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.list.Controller.SetSearchTerm("")
		m.sync()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.list.Controller.SetSearchTerm(m.search.Value())
	m.sync()
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.confirming = false
	if msg.String() != "y" {
		m.status = "delete cancelled"
		return m, nil
	}
	m.status = "deleting…"
	return m, m.deleteSelected()
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctrl := m.list.Controller
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.NextPage):
		ctrl.NextPage()

	case key.Matches(msg, m.keys.PrevPage):
		ctrl.PrevPage()

	case key.Matches(msg, m.keys.Grow):
		m.stepPageSize(+1)

	case key.Matches(msg, m.keys.Shrink):
		m.stepPageSize(-1)

	case key.Matches(msg, m.keys.Toggle):
		if i := m.table.Cursor(); i >= 0 && i < len(m.rowIDs) && m.rowIDs[i] != "" {
			ctrl.ToggleSelectOne(m.rowIDs[i])
		}

	case key.Matches(msg, m.keys.ToggleAll):
		ctrl.ToggleSelectAllVisible()

	case key.Matches(msg, m.keys.Filter):
		m.cycleCriterion()

	case key.Matches(msg, m.keys.NextFilter):
		if n := len(ctrl.CriterionDefs()); n > 0 {
			m.criterion = (m.criterion + 1) % n
		}

	case key.Matches(msg, m.keys.Clear):
		ctrl.ClearFilters()
		m.search.SetValue("")

	case key.Matches(msg, m.keys.Delete):
		if n := len(ctrl.View().Selected); n > 0 {
			m.confirming = true
			m.status = fmt.Sprintf("delete %d selected record(s)? (y/n)", n)
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.status = "refreshing…"
		return m, m.fetch()

	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	m.sync()
	return m, nil
}

// fetch runs a refresh off the UI goroutine. The result is applied in
// Update, where the stale-response guard drops it if a newer fetch began.
func (m Model) fetch() tea.Cmd {
	list, ctx := m.list, m.ctx
	return func() tea.Msg {
		snap, err := list.Fetch(ctx)
		return fetchedMsg{snap: snap, err: err}
	}
}

// deleteSelected deletes the current selection off the UI goroutine and
// refetches once if anything was deleted. The selection is read here, on
// the UI goroutine; the controller is only touched again in Update.
func (m Model) deleteSelected() tea.Cmd {
	list, ctx := m.list, m.ctx
	ids := list.Controller.View().Selected
	return func() tea.Msg {
		n, err := list.DeleteIDs(ctx, ids)
		if n == 0 {
			return deletedMsg{err: err}
		}
		snap, ferr := list.Fetch(ctx)
		return deletedMsg{n: n, err: err, fetchErr: ferr, snap: snap}
	}
}

// superseded reports whether err came from a fetch that a newer one has
// replaced.
func (m Model) superseded(err error) bool {
	var fe *pages.FetchError
	return errors.As(err, &fe) && !m.list.Current(fe.Token)
}

func (m *Model) stepPageSize(dir int) {
	ctrl := m.list.Controller
	sizes := ctrl.PageSizes()
	i := slices.Index(sizes, ctrl.View().PageSize) + dir
	if i < 0 || i >= len(sizes) {
		return
	}
	if err := ctrl.SetPageSize(sizes[i]); err != nil {
		m.err = err
	}
}

func (m *Model) cycleCriterion() {
	ctrl := m.list.Controller
	defs := ctrl.CriterionDefs()
	if len(defs) == 0 {
		m.status = "this page has no filters"
		return
	}
	def := defs[m.criterion%len(defs)]
	current := ""
	for _, c := range ctrl.View().Criteria {
		if c.Name == def.Name {
			current = c.Value
		}
	}
	next := pages.NextValue(pages.CriterionValues(def, ctrl.Records()), current)
	if err := ctrl.SetCriterion(def.Name, next); err != nil {
		m.err = err
	}
}

// sync rebuilds the table from the controller view.
func (m *Model) sync() {
	ctrl := m.list.Controller
	v := ctrl.View()
	page := m.list.Page

	selected := make(map[string]bool, len(v.Selected))
	for _, id := range v.Selected {
		selected[id] = true
	}

	headers := append([]string{markFor(v.AllVisibleSelected)}, page.Headers()...)
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}

	rows := make([]table.Row, 0, len(v.VisibleRecords))
	m.rowIDs = make([]string, 0, len(v.VisibleRecords))
	for _, rec := range v.VisibleRecords {
		id, _ := rec.ID(ctrl.IDField())
		row := append(table.Row{markFor(selected[id])}, page.Row(rec, ctrl)...)
		for i, cell := range row {
			widths[i] = max(widths[i], min(lipgloss.Width(cell), maxColumnWidth))
		}
		rows = append(rows, row)
		m.rowIDs = append(m.rowIDs, id)
	}

	cols := make([]table.Column, len(headers))
	total := 0
	for i, h := range headers {
		cols[i] = table.Column{Title: h, Width: widths[i]}
		total += widths[i] + cellPadding
	}

	height := v.PageSize + 1
	if m.height > 0 {
		height = max(2, min(height, m.height-chromeHeight))
	}

	// Clear rows so none renders against a different column set.
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	m.table.SetWidth(total)
	m.table.SetHeight(height)
	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(max(0, len(rows)-1))
	}
}

func markFor(on bool) string {
	if on {
		return markSelected
	}
	return markEmpty
}

// View implements tea.Model.
func (m Model) View() string {
	ctrl := m.list.Controller
	v := ctrl.View()

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.list.Page.Title))
	b.WriteString("\n")

	if m.searching || v.SearchTerm != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}

	if defs := ctrl.CriterionDefs(); len(defs) > 0 {
		parts := make([]string, len(v.Criteria))
		for i, c := range v.Criteria {
			value := c.Value
			if !c.Active() {
				value = types.AllValue
			}
			text := c.Name + "=" + value
			if i == m.criterion%len(defs) {
				parts[i] = activeStyle.Render(text)
			} else {
				parts[i] = filterStyle.Render(text)
			}
		}
		b.WriteString(strings.Join(parts, "  "))
		b.WriteString("\n")
	}

	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(pages.Footer(v)))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}
