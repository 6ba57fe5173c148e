package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the TUI.
type KeyMap struct {
	// Dial
	Cancel      key.Binding // Cancel gesture or leave editing
	RotateLeft  key.Binding // Move 00:00 counter-clockwise
	RotateRight key.Binding // Move 00:00 clockwise

	// Day
	PrevDay key.Binding
	NextDay key.Binding
	Today   key.Binding
	Refresh key.Binding

	// Task
	Toggle key.Binding // Toggle completion of the selected task
	Delete key.Binding // Delete the selected task

	// General
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		RotateLeft: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "rotate ↺"),
		),
		RotateRight: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "rotate ↻"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "done"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
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
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevDay, k.NextDay, k.Toggle, k.Delete, k.Cancel, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Cancel, k.RotateLeft, k.RotateRight},
		{k.PrevDay, k.NextDay, k.Today, k.Refresh},
		{k.Toggle, k.Delete},
		{k.Help, k.Quit},
	}
}
