package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the converter dashboard.
// It implements help.KeyMap so the footer can render it.
type KeyMap struct {
	Quit  key.Binding
	Next  key.Binding
	Prev  key.Binding
	Algo  key.Binding
	Reset key.Binding
	Help  key.Binding
}

// DefaultKeyMap returns the default key bindings.
// Inputs only accept numeric characters, so letter keys stay free for commands.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down", "enter"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Algo: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "cycle algorithm"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "reset"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
	}
}

// ShortHelp returns the bindings shown in the collapsed footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Algo, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the expanded footer.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.Algo, k.Reset},
		{k.Help, k.Quit},
	}
}
