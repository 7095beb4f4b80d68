// Package keymap holds the TUI key bindings. KeyMap satisfies help.KeyMap so
// the status bar and help view render it with bubbles/help.
package keymap

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap is the set of global and list bindings.
type KeyMap struct {
	Quit    key.Binding
	Help    key.Binding
	Back    key.Binding
	Pull    key.Binding
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Add     key.Binding
	Delete  key.Binding
	Confirm key.Binding
}

var _ help.KeyMap = (*KeyMap)(nil)

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultKeyMap returns the bindings the app ships with.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit:    bind("q", "quit", "q", "ctrl+c"),
		Help:    bind("?", "help", "?"),
		Back:    bind("esc", "back to menu", "esc"),
		Pull:    bind("r", "pull from server", "r"),
		Up:      bind("↑/k", "up", "up", "k"),
		Down:    bind("↓/j", "down", "down", "j"),
		Open:    bind("enter", "details", "enter"),
		Add:     bind("a", "add", "a"),
		Delete:  bind("d", "delete", "d", "delete"),
		Confirm: bind("y", "confirm delete", "y"),
	}
}

// ShortHelp is shown in the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pull, k.Help, k.Quit}
}

// FullHelp is shown in the help view, one column per group.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pull, k.Help, k.Back, k.Quit},
		{k.Up, k.Down, k.Open},
		{k.Add, k.Delete, k.Confirm},
	}
}
