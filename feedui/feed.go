// Package feedui shows the chords played in a session and takes chord codes
// typed by the user.
package feedui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rapidmidiex/chordpad/chord"
	"github.com/rapidmidiex/chordpad/chordcode"
	"github.com/rapidmidiex/chordpad/pitch"
	"github.com/rapidmidiex/chordpad/rmxerr"
)

// Reference:
// https://github.com/charmbracelet/bubbletea/blob/master/examples/chat/main.go

type (
	ToggleFocusMsg struct{}

	// EnteredMsg carries the chords decoded from a submitted code.
	EnteredMsg struct {
		Chords []chord.Chord
	}

	// PlayedMsg adds a chord to the feed.
	PlayedMsg struct {
		From     string
		FromSelf bool
		Chord    chord.Chord
	}

	// TextMsg adds a chat line from the jam to the feed.
	TextMsg struct {
		From     string
		FromSelf bool
		Body     string
	}

	// AccidentalsMsg changes how note names are spelled.
	AccidentalsMsg pitch.Accidental

	Model struct {
		viewport       viewport.Model
		messages       []string
		textarea       textarea.Model
		senderStyle    lipgloss.Style
		recipientStyle lipgloss.Style
		acc            pitch.Accidental
		err            error
	}
)

func New(acc pitch.Accidental) Model {
	ta := textarea.New()
	ta.Placeholder = "Chord code, e.g. CAmFG"
	ta.Blur()

	ta.Prompt = "┃ "
	ta.CharLimit = 280

	ta.SetWidth(30)
	ta.SetHeight(1)

	// Remove cursor line styling
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	ta.ShowLineNumbers = false

	vp := viewport.New(30, 6)
	vp.SetContent(`Chords played show up here.
Press c to type a chord code.`)

	ta.KeyMap.InsertNewline.SetEnabled(false)

	return Model{
		textarea:       ta,
		messages:       []string{},
		viewport:       vp,
		senderStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		recipientStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		acc:            acc,
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Focused reports whether typed keys go to the code input.
func (m Model) Focused() bool {
	return m.textarea.Focused()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0)

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)

	cmds = append(cmds, tiCmd, vpCmd)

	switch msg := msg.(type) {
	case ToggleFocusMsg:
		if m.textarea.Focused() {
			m.textarea.Blur()
		} else {
			cmds = append(cmds, m.textarea.Focus())
		}

	case AccidentalsMsg:
		m.acc = pitch.Accidental(msg)

	case PlayedMsg:
		line := m.chordLine(msg.Chord)
		m.add(msg.From, msg.FromSelf, line)

	case TextMsg:
		m.add(msg.From, msg.FromSelf, msg.Body)

	case tea.KeyMsg:
		if !m.textarea.Focused() {
			break
		}
		switch msg.Type {
		case tea.KeyEsc:
			m.textarea.Reset()
			m.textarea.Blur()
		case tea.KeyEnter:
			cmds = append(cmds, decode(m.textarea.Value()))
			m.textarea.Reset()
			m.textarea.Blur()
		}

	// We handle errors just like any other message
	case rmxerr.ErrMsg:
		m.err = msg
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) add(from string, fromSelf bool, text string) {
	if fromSelf {
		m.messages = append(m.messages, m.senderStyle.Render("You: "+text))
	} else {
		m.messages = append(m.messages, m.recipientStyle.Render(fmt.Sprintf("%s: %s", from, text)))
	}
	m.viewport.SetContent(strings.Join(m.messages, "\n"))
	m.viewport.GotoBottom()
}

func (m Model) chordLine(c chord.Chord) string {
	name := pitch.Pretty(c.Name(m.acc))
	if code, ok := chordcode.Encode(c); ok {
		return fmt.Sprintf("%s  [%s]", name, code)
	}
	return name
}

func (m Model) View() string {
	return fmt.Sprintf(
		"%s\n\n%s",
		m.viewport.View(),
		m.textarea.View(),
	) + "\n"
}

func decode(code string) tea.Cmd {
	return func() tea.Msg {
		code = strings.TrimSpace(code)
		chords, rest := chordcode.ReadAll(code)
		if rest != "" {
			return rmxerr.ErrMsg{Err: fmt.Errorf("chord code: cannot read %q", rest)}
		}
		return EnteredMsg{Chords: chords}
	}
}
