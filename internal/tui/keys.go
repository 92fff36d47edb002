package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings of the arrival lookup screen. Letter keys are
// left free for the keyword box.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	NextFocus     key.Binding
	PreviousFocus key.Binding

	Activate key.Binding // Search, pick the route or pick the bus.
	Eta      key.Binding

	Quit key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PreviousFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search/select"),
		),
		Eta: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "查詢到站時間"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

func (keys KeyMap) bindings() []key.Binding {
	return []key.Binding{keys.NextFocus, keys.Up, keys.Down, keys.Activate, keys.Eta, keys.Quit}
}
