package components

import "github.com/charmbracelet/bubbles/key"

// ResultsKeyMap defines key bindings for results list navigation
type ResultsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Home     key.Binding
	End      key.Binding
	HalfUp   key.Binding
	HalfDown key.Binding
	Escape   key.Binding
	Enter    key.Binding
}

// DefaultResultsKeyMap returns the default results list key bindings
func DefaultResultsKeyMap() ResultsKeyMap {
	return ResultsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		HalfUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("C-u", "half page up"),
		),
		HalfDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("C-d", "half page down"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "accept filter"),
		),
	}
}

// ResultsKeys is the results list key bindings instance
var ResultsKeys = DefaultResultsKeyMap()

// DetailKeyMap defines key bindings for the detail screen
type DetailKeyMap struct {
	Back     key.Binding
	ScrollUp key.Binding
	ScrollDn key.Binding
}

// DetailKeys is the detail screen key bindings instance
var DetailKeys = DetailKeyMap{
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace", "h", "left"),
		key.WithHelp("esc", "back"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("k", "up", "pgup"),
		key.WithHelp("k/↑", "scroll up"),
	),
	ScrollDn: key.NewBinding(
		key.WithKeys("j", "down", "pgdown"),
		key.WithHelp("j/↓", "scroll down"),
	),
}
