package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	toggle  key.Binding
	all     key.Binding
	extract key.Binding
	swap    key.Binding
	open    key.Binding
	remove  key.Binding
	clear   key.Binding
	restore key.Binding
	refresh key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		all:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all/none")),
		extract: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "extract")),
		swap:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
		open:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "load folder")),
		remove:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
		clear:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear pending")),
		restore: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restore")),
		refresh: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.swap, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.toggle, k.all, k.extract},
		{k.open, k.remove, k.clear, k.restore},
		{k.swap, k.refresh, k.quit},
	}
}
