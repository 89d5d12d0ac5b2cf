package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Start  key.Binding
	Stop   key.Binding
	Faster key.Binding
	Slower key.Binding
	Clear  key.Binding
	Save   key.Binding
	Export key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Left:   key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←/h", "left")),
		Right:  key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→/l", "right")),
		Toggle: key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle")),
		Start:  key.NewBinding(key.WithKeys("enter", "s"), key.WithHelp("enter/s", "start")),
		Stop:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		Faster: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "tempo up")),
		Slower: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "tempo down")),
		Clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Save:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "save")),
		Export: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export .mid")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Start, k.Stop, k.Faster, k.Slower, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Toggle, k.Clear, k.Save, k.Export},
		{k.Start, k.Stop, k.Faster, k.Slower},
		{k.Help, k.Quit},
	}
}
