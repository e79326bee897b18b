package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rapidmidiex/chordpad/pitch"
)

const (
	// In real life situations we'd adjust the document to fit the width we've
	// detected. Here the width is hardcoded, and the detected width is only
	// used to truncate in order to avoid jaggy wrapping.
	Width = 72

	// CellWidth is the width of one pad key, in cells.
	CellWidth = 5
)

// https://github.com/inngest/inngest/blob/main/pkg/cli/styles.go
var (
	Color   = lipgloss.AdaptiveColor{Light: "#111222", Dark: "#FAFAFA"}
	Primary = lipgloss.Color("#4636f5")
	Green   = lipgloss.Color("#9dcc3a")
	Red     = lipgloss.Color("#ff0000")
	White   = lipgloss.Color("#ffffff")
	Black   = lipgloss.Color("#000000")
	Orange  = lipgloss.Color("#D3A347")
	Subtle  = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}

	// NoteColors gives every pitch class its own hue, C first.
	NoteColors = []lipgloss.Color{
		"#fbc02d", // yellow
		"#ffa000", // amber
		"#f57c00", // orange
		"#d32f2f", // red
		"#c2185b", // pink
		"#7b1fa2", // purple
		"#303f9f", // indigo
		"#1976d2", // blue
		"#0097a7", // cyan
		"#00796b", // teal
		"#388e3c", // green
		"#afb42b", // lime
	}

	TextStyle = lipgloss.NewStyle().Foreground(Color)
	BoldStyle = TextStyle.Copy().Bold(true)

	BaseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	// Status Bar.
	StatusNugget = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Padding(0, 1)
	PingStyle = StatusNugget.Copy().
			Background(lipgloss.Color("#e783f2")).
			Align(lipgloss.Right)
	KeyStyle = StatusNugget.Copy().
			Background(Primary)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#343433", Dark: "#C1C6B2"}).
			Background(lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#353533"})

	StatusStyle = lipgloss.NewStyle().
			Inherit(StatusBarStyle).
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#FF5F87")).
			Padding(0, 1).
			MarginRight(1)

	StatusText = lipgloss.NewStyle().Inherit(StatusBarStyle)

	MessageText = lipgloss.NewStyle().Align(lipgloss.Left)

	HelpMenu = lipgloss.NewStyle().Align(lipgloss.Center).PaddingTop(2)
	// Page
	DocStyle = lipgloss.NewStyle().Padding(1, 2, 1, 2)

	cellStyle = lipgloss.NewStyle().
			Width(CellWidth).
			Align(lipgloss.Center)
)

// CellState is how a pad key relates to the selected chord.
type CellState int

const (
	// Unreachable keys cannot join the selected chord.
	Unreachable CellState = iota
	Reachable
	Sounding
	Root
)

// RenderCell draws one pad key labelled with its note name.
func RenderCell(pc pitch.Class, label string, state CellState, cursor bool) string {
	color := NoteColors[pitch.Transpose(pc, 0)]
	s := cellStyle.Copy()
	switch state {
	case Unreachable:
		s = s.Foreground(Subtle)
	case Reachable:
		s = s.Foreground(color)
	case Sounding:
		s = s.Foreground(White).Background(color)
	case Root:
		s = s.Foreground(White).Background(color).Bold(true)
	}
	if cursor {
		s = s.Underline(true).Reverse(state != Sounding && state != Root)
	}
	return s.Render(label)
}

// RenderError returns a formatted error string.
func RenderError(msg string) string {
	// Error applies styles to an error message
	err := lipgloss.NewStyle().Background(Red).Foreground(White).Bold(true).Padding(0, 1).Render("Error")
	content := lipgloss.NewStyle().Bold(true).Padding(0, 1).Render(msg)
	return err + content
}
