package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Flop   key.Binding
	Turn   key.Binding
	River  key.Binding
	Winner key.Binding
	Undo   key.Binding
	New    key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Flop:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "flop")),
		Turn:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "turn")),
		River:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "river")),
		Winner: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "winner")),
		Undo:   key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new round")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Flop, k.Turn, k.River, k.Winner, k.Undo, k.New, k.Quit, k.Help}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Flop, k.Turn, k.River},
		{k.Winner, k.Undo, k.New},
		{k.Help, k.Quit},
	}
}
