package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"rentaldesk/internal/ui/input/types"
)

// KeyMap documents the key bindings for the help bar and the help pager.
// Dispatch itself happens in the input modes.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	Tabs      key.Binding
	Search    key.Binding
	Add       key.Binding
	Edit      key.Binding
	View      key.Binding
	Delete    key.Binding
	Rent      key.Binding
	History   key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	Cancel    key.Binding
	Confirm   key.Binding
	Deny      key.Binding
}

// DefaultKeyMap returns the bindings the input modes implement
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PrevPage:  key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←/h", "prev page")),
		NextPage:  key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→/l", "next page")),
		Tabs:      key.NewBinding(key.WithKeys("1", "2", "3", "tab"), key.WithHelp("1-3", "switch tab")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		View:      key.NewBinding(key.WithKeys("enter", "v"), key.WithHelp("enter", "view")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Rent:      key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "rent")),
		History:   key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "rental history")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Confirm:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		Deny:      key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
	}
}

// contextKeys adapts the key map to what is possible in the current mode and tab
type contextKeys struct {
	keys      KeyMap
	mode      types.Mode
	tab       types.Tab
	canRent   bool
	hasDetail bool
}

func (c contextKeys) ShortHelp() []key.Binding {
	k := c.keys
	switch c.mode {
	case types.ModeSearch:
		return []key.Binding{k.Submit, k.Cancel}
	case types.ModeForm:
		return []key.Binding{k.NextField, k.PrevField, k.Submit, k.Cancel}
	case types.ModeRent:
		return []key.Binding{k.Submit, k.Cancel}
	case types.ModeView:
		if c.hasDetail {
			return []key.Binding{k.History, k.Cancel}
		}
		return []key.Binding{k.Cancel}
	case types.ModeDeleteConfirm:
		return []key.Binding{k.Confirm, k.Deny}
	}

	if c.tab == types.TabHome {
		return []key.Binding{k.Tabs, k.Refresh, k.Help, k.Quit}
	}
	out := []key.Binding{k.Up, k.Down, k.PrevPage, k.NextPage, k.Search, k.Add, k.Edit, k.View, k.Delete}
	if c.canRent {
		out = append(out, k.Rent)
	}
	return append(out, k.Help, k.Quit)
}

func (c contextKeys) FullHelp() [][]key.Binding {
	k := c.keys
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage, k.Tabs},
		{k.Search, k.Add, k.Edit, k.View, k.Delete, k.Rent, k.History},
		{k.Refresh, k.Help, k.Quit},
	}
}
