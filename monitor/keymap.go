package monitor

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	pause key.Binding
	quit  key.Binding
}

func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.pause, k.quit}
}

func (k keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultKeymap = keymap{
	pause: key.NewBinding(
		key.WithKeys("p", " "),
		key.WithHelp("p", "pause/resume"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "stop monitoring"),
	),
}
