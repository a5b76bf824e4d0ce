// Package keymap defines keybindings for the monitor.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the monitor.
type KeyMap struct {
	// Quit exits the monitor.
	Quit key.Binding

	// Help toggles the full help view.
	Help key.Binding

	// Refresh reloads the snapshot immediately.
	Refresh key.Binding

	// Turbo toggles turbo boost.
	Turbo key.Binding

	// Raise raises the maximum limit by one step.
	Raise key.Binding

	// Lower lowers the maximum limit by one step.
	Lower key.Binding

	// Reset restores the full range with turbo on.
	Reset key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Turbo: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle turbo"),
		),
		Raise: key.NewBinding(
			key.WithKeys("+", "=", "up", "k"),
			key.WithHelp("+/↑", "raise max"),
		),
		Lower: key.NewBinding(
			key.WithKeys("-", "down", "j"),
			key.WithHelp("-/↓", "lower max"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Turbo, k.Refresh, k.Help, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Raise, k.Lower, k.Reset},
		{k.Turbo, k.Refresh},
		{k.Help, k.Quit},
	}
}
