package panel

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the front panel keybindings
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Press key.Binding
	Stop  key.Binding
	Servo key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// DefaultKeyMap maps the arrows to the encoder and enter to its button
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "turn left"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "turn right"),
		),
		Press: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "press"),
		),
		Stop: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "emergency stop"),
		),
		Servo: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "servo"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings to show in the help view (horizontal).
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Press, k.Stop, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Press},
		{k.Stop, k.Servo, k.Help, k.Quit},
	}
}
