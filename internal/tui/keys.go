package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	SwipeLeft  key.Binding
	SwipeRight key.Binding
	Close      key.Binding
	Open       key.Binding
	Force      key.Binding
	MarkRead   key.Binding
	Reload     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("↓/j", "down"),
	),
	SwipeLeft: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("←/h", "reveal actions"),
	),
	SwipeRight: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("→/l", "swipe right"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close row"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "inner action"),
	),
	Force: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete"),
	),
	MarkRead: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "mark read"),
	),
	Reload: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwipeLeft, k.Force, k.MarkRead, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Reload},
		{k.SwipeLeft, k.SwipeRight, k.Close},
		{k.Open, k.Force, k.MarkRead},
		{k.Help, k.Quit},
	}
}
