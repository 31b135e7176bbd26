package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings of the table view.
type keyMap struct {
	Play       []key.Binding
	Truco      key.Binding
	NewGame    key.Binding
	Difficulty key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Play: []key.Binding{
			key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "出第 1 张")),
			key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "出第 2 张")),
			key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "出第 3 张")),
		},
		Truco:      key.NewBinding(key.WithKeys("t", "T"), key.WithHelp("t", "叫 TRUCO")),
		NewGame:    key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "新开一局")),
		Difficulty: key.NewBinding(key.WithKeys("d", "D"), key.WithHelp("d", "切换难度")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "帮助")),
		Quit:       key.NewBinding(key.WithKeys("q", "Q", "ctrl+c", "esc"), key.WithHelp("q", "退出")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Truco, k.NewGame, k.Difficulty, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.Play,
		{k.Truco, k.NewGame, k.Difficulty},
		{k.Help, k.Quit},
	}
}
