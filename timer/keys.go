package timer

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle key.Binding
	Enter  key.Binding
	Reset  key.Binding
	Skip   key.Binding
	Switch key.Binding
	Done   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Skip, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Enter, k.Reset, k.Skip},
		{k.Switch, k.Done, k.Help, k.Quit},
	}
}

var defaultKeymap = keyMap{
	Toggle: key.NewBinding(
		key.WithKeys("p", " ", "space"),
		key.WithHelp("p/space", "pause/resume"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "start"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Skip: key.NewBinding(
		key.WithKeys("s", "esc"),
		key.WithHelp("s", "skip break"),
	),
	Switch: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "focus/break"),
	),
	Done: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "toggle task done"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
