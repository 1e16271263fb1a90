package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Search     key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	Grow       key.Binding
	Shrink     key.Binding
	Toggle     key.Binding
	ToggleAll  key.Binding
	Filter     key.Binding
	NextFilter key.Binding
	Clear      key.Binding
	Delete     key.Binding
	Refresh    key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		NextPage:   key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n/→", "next page")),
		PrevPage:   key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p/←", "prev page")),
		Grow:       key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "bigger pages")),
		Shrink:     key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "smaller pages")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "select")),
		ToggleAll:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select page")),
		Filter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle filter")),
		NextFilter: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "next filter")),
		Clear:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear filters")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete selected")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.NextPage, k.PrevPage, k.Toggle, k.Filter, k.Delete, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Filter, k.NextFilter, k.Clear},
		{k.NextPage, k.PrevPage, k.Grow, k.Shrink},
		{k.Toggle, k.ToggleAll, k.Delete},
		{k.Refresh, k.Quit},
	}
}
