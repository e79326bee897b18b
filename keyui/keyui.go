// Package keyui lets the user pick the key that guides chord choices, and
// suggests progressions in it.
package keyui

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rapidmidiex/chordpad/chord"
	chordkey "github.com/rapidmidiex/chordpad/key"
	"github.com/rapidmidiex/chordpad/keymap"
	"github.com/rapidmidiex/chordpad/pitch"
	"github.com/rapidmidiex/chordpad/styles"
	"github.com/rapidmidiex/chordpad/suggest"
	"golang.org/x/term"
)

var (
	docStyle = styles.DocStyle
)

type (
	// KeySelected is sent when the user picks a key. Key is nil for "no key".
	KeySelected struct {
		Key *chordkey.Key
	}

	// ProgressionSelected asks the pad to play a suggested progression.
	ProgressionSelected struct {
		Name   string
		Chords []chord.Chord
	}

	Model struct {
		keys     []*chordkey.Key
		keyTable table.Model
		current  *chordkey.Key
		library  suggest.Library
		help     help.Model
		log      *log.Logger
	}
)

// Keys lists every selectable key: no key first, then the major and minor
// keys around the circle of fifths.
func Keys() []*chordkey.Key {
	keys := []*chordkey.Key{nil}
	for _, t := range []chordkey.Type{chordkey.Major, chordkey.Minor} {
		for _, name := range chordkey.Names {
			tonic, _ := pitch.ParseName(name)
			k := chordkey.Named(t, tonic, chordkey.DefaultAccidentals(tonic))
			keys = append(keys, &k)
		}
	}
	return keys
}

// New builds the key picker. A nil library offers the built in
// progressions.
func New(lib suggest.Library) Model {
	if lib == nil {
		lib = suggest.DefaultLibrary()
	}
	m := Model{
		keys:    Keys(),
		library: lib,
		help:    help.New(),
		log:     log.Default(),
	}
	m.keyTable = makeKeysTable(m)
	m.keyTable.Focus()
	return m
}

// Init is used to handle any initial I/O
func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.keyTable.SetWidth(msg.Width - 10)
		m.help.Width = msg.Width
	case KeySelected:
		m.current = msg.Key
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keymap.DefaultMapping.Click):
			k := m.keys[m.keyTable.Cursor()]
			m.current = k
			m.log.Printf("key selected: %s", keyName(k))
			cmds = append(cmds, keySelect(k))
		case key.Matches(msg, keymap.DefaultMapping.Help):
			m.help.ShowAll = !m.help.ShowAll
		default:
			if cmd := m.suggestion(msg.String()); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	newKeyTable, ktCmd := m.keyTable.Update(msg)
	m.keyTable = newKeyTable

	cmds = append(cmds, ktCmd)
	return m, tea.Batch(cmds...)
}

// Current returns the selected key, nil if none.
func (m Model) Current() *chordkey.Key {
	return m.current
}

func (m Model) View() string {
	physicalWidth, _, _ := term.GetSize(int(os.Stdout.Fd()))
	doc := strings.Builder{}

	// Key table
	{
		keyTable := styles.BaseStyle.Width(styles.Width).Render(m.keyTable.View())
		doc.WriteString(keyTable)
	}

	// Suggestions for the key under the cursor
	{
		doc.WriteString("\n\n" + Suggestions(m.library, m.keys[m.keyTable.Cursor()]))
	}

	// Help menu
	{
		doc.WriteString("\n" + styles.HelpMenu.Render(m.help.View(keymap.DefaultMapping)))
	}

	if physicalWidth > 0 {
		docStyle = styles.DocStyle.MaxWidth(physicalWidth)
	}

	return docStyle.Render(doc.String())
}

// Suggestions renders the suggested progressions of k, one per line, numbered
// for selection.
func Suggestions(lib suggest.Library, k *chordkey.Key) string {
	if k == nil {
		return styles.MessageText.Render("Without a key, chords start out major.")
	}
	progressions := lib.For(k.Type())
	if len(progressions) == 0 {
		return styles.MessageText.Render(fmt.Sprintf("No suggestions for %s keys yet.", k.Type()))
	}

	lines := make([]string, 0, len(progressions))
	for i, p := range progressions {
		names := make([]string, 0, len(p.Steps))
		for _, c := range p.Realize(*k) {
			names = append(names, pitch.Pretty(c.Name(k.Accidentals())))
		}
		lines = append(lines, fmt.Sprintf("%d  %-26s %s", i+1, pitch.Pretty(p.Name), strings.Join(names, " ")))
	}
	return styles.MessageText.Render(strings.Join(lines, "\n"))
}

func keyName(k *chordkey.Key) string {
	if k == nil {
		return "none"
	}
	return k.Name()
}

func makeKeysTable(m Model) table.Model {
	columns := []table.Column{
		{Title: "Key", Width: 12},
		{Title: "Notes", Width: 24},
		{Title: "Chords", Width: 30},
	}

	rows := make([]table.Row, 0, len(m.keys))
	for _, k := range m.keys {
		if k == nil {
			rows = append(rows, table.Row{"none", "", ""})
			continue
		}
		notes := make([]string, 0, 7)
		for _, pc := range k.Notes() {
			notes = append(notes, k.NoteName(pc))
		}
		chords := make([]string, 0, 7)
		for degree := 1; degree <= len(k.Notes()); degree++ {
			chords = append(chords, k.ChordNumeral(k.NaturalChord(degree)))
		}
		rows = append(rows, table.Row{k.Name(), strings.Join(notes, " "), strings.Join(chords, " ")})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// suggestion plays the numbered progression of the key under the cursor.
func (m Model) suggestion(pressed string) tea.Cmd {
	k := m.keys[m.keyTable.Cursor()]
	if k == nil || len(pressed) != 1 || pressed[0] < '1' || pressed[0] > '9' {
		return nil
	}
	progressions := m.library.For(k.Type())
	i := int(pressed[0] - '1')
	if i >= len(progressions) {
		return nil
	}
	p := progressions[i]
	return func() tea.Msg {
		return ProgressionSelected{Name: p.Name, Chords: p.Realize(*k)}
	}
}

// Commands
func keySelect(k *chordkey.Key) tea.Cmd {
	return func() tea.Msg {
		return KeySelected{k}
	}
}
