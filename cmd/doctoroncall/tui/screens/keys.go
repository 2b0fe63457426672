package screens

import "github.com/charmbracelet/bubbles/key"

// treatmentKeys are the receptionist's controls at the desk.
type treatmentKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Admit  key.Binding
	Finish key.Binding
	Quit   key.Binding
}

func newTreatmentKeys() treatmentKeys {
	return treatmentKeys{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "give medication"),
		),
		Admit: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "admit to specialist"),
		),
		Finish: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "finish care"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k treatmentKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Admit, k.Finish, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k treatmentKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
