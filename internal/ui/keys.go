package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the dashboard.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	NextView   key.Binding
	PrevView   key.Binding
	Refresh    key.Binding

	// View switching
	ViewStock     key.Binding
	ViewChores    key.Binding
	ViewTasks     key.Binding
	ViewBatteries key.Binding
	ViewShopping  key.Binding
	ViewLogs      key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Act marks the selected chore, task or battery as done.
	Act key.Binding

	// Logs
	ToggleFollow key.Binding
	CycleLevel   key.Binding
}

// defaultKeyMap returns the default key bindings.
func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "h"),
			key.WithHelp("?", "toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "cycle theme"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab", "left"),
			key.WithHelp("shift+tab", "previous view"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "redraw from store"),
		),

		ViewStock:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "stock")),
		ViewChores:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "chores")),
		ViewTasks:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "tasks")),
		ViewBatteries: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "batteries")),
		ViewShopping:  key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "shopping")),
		ViewLogs:      key.NewBinding(key.WithKeys("6"), key.WithHelp("6", "logs")),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),

		Act: key.NewBinding(
			key.WithKeys("x", "enter"),
			key.WithHelp("x", "execute chore / complete task / charge battery"),
		),

		ToggleFollow: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle follow"),
		),
		CycleLevel: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "cycle minimum level"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextView, k.Act, k.CycleTheme, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ViewStock, k.ViewChores, k.ViewTasks, k.ViewBatteries, k.ViewShopping, k.ViewLogs},
		{k.NextView, k.PrevView, k.Up, k.Down, k.Top, k.Bottom},
		{k.Act, k.ToggleFollow, k.CycleLevel},
		{k.Refresh, k.CycleTheme, k.Help, k.Quit},
	}
}
