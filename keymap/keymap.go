package keymap

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type Mapping struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Click      key.Binding
	Play       key.Binding
	Layout     key.Binding
	Accidental key.Binding
	Code       key.Binding
	CycleFocus key.Binding
	GoBack     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var DefaultMapping = Mapping{
	Up: key.NewBinding(
		key.WithKeys(tea.KeyUp.String()),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys(tea.KeyDown.String()),
		key.WithHelp("↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys(tea.KeyLeft.String()),
		key.WithHelp("←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys(tea.KeyRight.String()),
		key.WithHelp("→", "right"),
	),
	Click: key.NewBinding(
		key.WithKeys(tea.KeyEnter.String(), " "),
		key.WithHelp("enter", "press key"),
	),
	Play: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "play again"),
	),
	Layout: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "switch layout"),
	),
	Accidental: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "sharps/flats"),
	),
	Code: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "enter chord code"),
	),
	CycleFocus: key.NewBinding(
		key.WithKeys(tea.KeyTab.String()),
		key.WithHelp("tab", "pick key"),
	),
	GoBack: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more help"),
	),
	Quit: key.NewBinding(
		key.WithKeys(tea.KeyCtrlC.String()),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (m Mapping) ShortHelp() []key.Binding {
	return []key.Binding{m.Click, m.Layout, m.CycleFocus, m.Help, m.Quit}
}

// FullHelp implements help.KeyMap.
func (m Mapping) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.Up, m.Down, m.Left, m.Right},
		{m.Click, m.Play, m.GoBack},
		{m.Layout, m.Accidental, m.Code},
		{m.CycleFocus, m.Help, m.Quit},
	}
}
