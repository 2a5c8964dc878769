package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the demo.
type KeyMap struct {
	// Presenting
	Toast key.Binding
	Sheet key.Binding
	Modal key.Binding

	// Actions
	Dismiss    key.Binding
	DismissAll key.Binding
	Sound      key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toast, k.Sheet, k.Modal, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toast, k.Sheet, k.Modal},
		{k.Dismiss, k.DismissAll, k.Sound},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toast: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toast"),
		),
		Sheet: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sheet"),
		),
		Modal: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "modal"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d", "esc"),
			key.WithHelp("d", "dismiss front"),
		),
		DismissAll: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "dismiss all"),
		),
		Sound: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle sound"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
