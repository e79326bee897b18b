// Package padui is the chord pad: a grid of note keys that builds chords as
// they are pressed, plays them and shares them with the jam.
package padui

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rapidmidiex/chordpad/chord"
	"github.com/rapidmidiex/chordpad/chordcode"
	"github.com/rapidmidiex/chordpad/feedui"
	"github.com/rapidmidiex/chordpad/jam"
	chordkey "github.com/rapidmidiex/chordpad/key"
	"github.com/rapidmidiex/chordpad/keyboard"
	"github.com/rapidmidiex/chordpad/keymap"
	"github.com/rapidmidiex/chordpad/keyui"
	"github.com/rapidmidiex/chordpad/layout"
	"github.com/rapidmidiex/chordpad/pitch"
	"github.com/rapidmidiex/chordpad/player"
	"github.com/rapidmidiex/chordpad/rmxerr"
	"github.com/rapidmidiex/chordpad/rtt"
	"github.com/rapidmidiex/chordpad/styles"
	"github.com/rapidmidiex/chordpad/voicing"
	"github.com/rapidmidiex/chordpad/vpiano"
	"github.com/rapidmidiex/chordpad/wsmsg"
	"gitlab.com/gomidi/midi/v2"
	"golang.org/x/term"
)

var (
	docStyle    = styles.DocStyle
	columnStyle = lipgloss.NewStyle().PaddingRight(1)
)

type (
	// Command Types
	ConnectedMsg struct {
		Session *jam.Session
	}

	LeaveRoomMsg struct {
		Err error
	}

	jamEventMsg struct {
		ev jam.Event
	}

	// A message from the jam that could not be understood. The session is
	// still usable.
	jamSkipMsg struct {
		err error
	}

	sequenceMsg struct {
		chords []chord.Chord
	}

	Options struct {
		Layout      layout.Kind
		Factors     int
		Accidentals pitch.Accidental
		Volume      float64
		// How long each chord of a sequence lasts.
		Beat time.Duration
		// Optional. Without a player the pad is silent.
		Player *player.Player
	}

	Model struct {
		opts   Options
		sel    keyboard.Selector
		cursor layout.Cell
		key    *chordkey.Key
		keys   vpiano.NoteKeyMap

		// Feed of played chords and code input
		feed tea.Model

		// Websocket session of the current jam, nil when playing alone.
		session *jam.Session
		ping    rtt.CalcMsg

		help help.Model
		err  error
		log  *log.Logger
	}
)

func New(opts Options) (Model, error) {
	if opts.Beat <= 0 {
		opts.Beat = 2 * time.Second
	}
	l, err := layout.NewKind(opts.Layout, opts.Factors, 0)
	if err != nil {
		return Model{}, err
	}
	return Model{
		opts:   opts,
		sel:    keyboard.New(l),
		cursor: l.LookupRoot(0),
		keys:   vpiano.MakeOctaveNotes(pitch.C4, opts.Accidentals).Octave().ToBindingMap(),
		feed:   feedui.New(opts.Accidentals),
		help:   help.New(),
		log:    log.Default(),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return m.feed.Init()
}

// Chord returns the selected chord, if any.
func (m Model) Chord() (chord.Chord, bool) {
	return m.sel.Chord()
}

// Typing reports whether keys go to the chord code input.
func (m Model) Typing() bool {
	return m.feed.(feedui.Model).Focused()
}

func (m Model) Cursor() layout.Cell {
	return m.cursor
}

func (m Model) Layout() *layout.Layout {
	return m.sel.Layout()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		if m.Typing() {
			m.feed, cmd = m.feed.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)

	case keyui.KeySelected:
		m.key = msg.Key
		if msg.Key == nil {
			m.sel = m.sel.SetScale(nil)
		} else {
			m.sel = m.sel.SetScale(*msg.Key)
		}

	case keyui.ProgressionSelected:
		cmds = append(cmds, sequence(msg.Chords))
	case feedui.EnteredMsg:
		cmds = append(cmds, sequence(msg.Chords))
	case sequenceMsg:
		if len(msg.chords) == 0 {
			break
		}
		m.sel = m.sel.SetChord(msg.chords[0])
		m.cursor, _ = m.sel.Root()
		cmds = append(cmds, m.chordChanged(msg.chords[0], "", true))
		if rest := msg.chords[1:]; len(rest) > 0 {
			cmds = append(cmds, tea.Tick(m.opts.Beat, func(time.Time) tea.Msg {
				return sequenceMsg{rest}
			}))
		}

	// Entered the Jam Session
	case ConnectedMsg:
		m.session = msg.Session
		m.log.Printf("jam: connected, user %s", msg.Session.UserID())
		cmds = append(cmds, m.listenSocket())

	case jamEventMsg:
		cmds = append(cmds, m.handleJamEvent(msg.ev), m.listenSocket())
	case jamSkipMsg:
		m.log.Printf("jam: %v", msg.err)
		cmds = append(cmds, m.listenSocket())

	case rtt.CalcMsg:
		m.ping = msg

	case rmxerr.ErrMsg:
		m.log.Println(msg.Err)
		m.err = msg
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd
	mapping := keymap.DefaultMapping

	switch {
	case key.Matches(msg, mapping.Up):
		m.cursor = m.move(0, -1)
	case key.Matches(msg, mapping.Down):
		m.cursor = m.move(0, 1)
	case key.Matches(msg, mapping.Left):
		m.cursor = m.move(-1, 0)
	case key.Matches(msg, mapping.Right):
		m.cursor = m.move(1, 0)

	case key.Matches(msg, mapping.Click):
		var changed bool
		m.sel, changed = m.sel.Click(m.cursor)
		if c, ok := m.sel.Chord(); ok && changed {
			cmds = append(cmds, m.chordChanged(c, "", true))
		}
		m.err = nil

	case key.Matches(msg, mapping.GoBack):
		m.sel = m.sel.Clear()
		if m.opts.Player != nil {
			m.opts.Player.Release()
		}
		m.err = nil

	case key.Matches(msg, mapping.Play):
		if c, ok := m.sel.Chord(); ok {
			cmds = append(cmds, m.play(c))
		}

	case key.Matches(msg, mapping.Layout):
		kind := layout.Fifths
		if m.sel.Layout().Kind() == layout.Fifths {
			kind = layout.Chromatic
		}
		l, err := layout.NewKind(kind, m.opts.Factors, 0)
		if err != nil {
			return m, rmxerr.Cmd("switch layout", err)
		}
		m.sel = m.sel.SetLayout(l)
		m.cursor = l.LookupRoot(m.cursor.Class)

	case key.Matches(msg, mapping.Accidental):
		m.opts.Accidentals = 1 - m.opts.Accidentals
		m.feed, cmd = m.feed.Update(feedui.AccidentalsMsg(m.opts.Accidentals))
		cmds = append(cmds, cmd)

	case key.Matches(msg, mapping.Code):
		m.feed, cmd = m.feed.Update(feedui.ToggleFocusMsg{})
		cmds = append(cmds, cmd)

	case key.Matches(msg, mapping.Help):
		m.help.ShowAll = !m.help.ShowAll

	default:
		// qwerty keys pick a root directly
		if n, ok := m.keys[msg.String()]; ok {
			root := m.sel.Layout().LookupRoot(n.Class)
			var changed bool
			m.sel, changed = m.sel.Clear().Click(root)
			m.cursor = root
			if c, ok := m.sel.Chord(); ok && changed {
				cmds = append(cmds, m.chordChanged(c, "", true))
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// move steps the cursor to the nearest cell in the given direction. Rows
// grow downwards.
func (m Model) move(dcol, drow int) layout.Cell {
	best, found := m.cursor, false
	bestDist := math.Inf(1)
	for _, c := range m.sel.Layout().Cells() {
		var dist float64
		switch {
		case dcol != 0:
			if c.Col != m.cursor.Col+dcol {
				continue
			}
			dist = math.Abs(c.Row - m.cursor.Row)
		default:
			if c.Col != m.cursor.Col || (c.Row-m.cursor.Row)*float64(drow) <= 0 {
				continue
			}
			dist = math.Abs(c.Row - m.cursor.Row)
		}
		if dist < bestDist || (dist == bestDist && c.Row < best.Row) {
			best, bestDist, found = c, dist, true
		}
	}
	if !found {
		return m.cursor
	}
	return best
}

// chordChanged records c in the feed and plays it. Chords chosen here are
// also shared with the jam.
func (m *Model) chordChanged(c chord.Chord, from string, fromSelf bool) tea.Cmd {
	var cmd tea.Cmd
	m.feed, cmd = m.feed.Update(feedui.PlayedMsg{From: from, FromSelf: fromSelf, Chord: c})
	cmds := []tea.Cmd{cmd, m.play(c)}
	if fromSelf && m.session != nil {
		cmds = append(cmds, m.sendChord(c))
	}
	return tea.Batch(cmds...)
}

func (m Model) play(c chord.Chord) tea.Cmd {
	p := m.opts.Player
	if p == nil {
		return nil
	}
	volume := m.opts.Volume
	beat := m.opts.Beat
	return func() tea.Msg {
		groups := voicing.NormalizeGroups(voicing.Shepard(c), volume)
		if err := player.Speak(p.Voice(groups, beat)); err != nil {
			return rmxerr.ErrMsg{Err: fmt.Errorf("play %s: %w", c, err)}
		}
		return nil
	}
}

// playNote sounds a single note played by someone else in the jam.
func (m Model) playNote(n wsmsg.MIDIMsg) tea.Cmd {
	p := m.opts.Player
	if p == nil || n.Number < 0 || n.Number > 127 {
		return nil
	}
	return func() tea.Msg {
		key := uint8(n.Number)
		vel := n.Velocity
		if vel > 127 {
			vel = 127
		}
		switch n.State {
		case wsmsg.NOTE_ON:
			p.Send(midi.NoteOn(0, key, uint8(vel)))
		case wsmsg.NOTE_OFF:
			p.Send(midi.NoteOff(0, key))
			return nil
		}
		s := player.NewStreamer(m.opts.Beat / 4)
		p.Render(s)
		if err := player.Speak(s); err != nil {
			return rmxerr.ErrMsg{Err: fmt.Errorf("playNote: %w", err)}
		}
		return nil
	}
}

func (m Model) sendChord(c chord.Chord) tea.Cmd {
	s := m.session
	return func() tea.Msg {
		if _, err := s.SendChord(c); err != nil {
			if errors.Is(err, jam.ErrNotChord) {
				return jamSkipMsg{err}
			}
			return rmxerr.ErrMsg{Err: fmt.Errorf("sendChord: %w", err)}
		}
		return nil
	}
}

func (m *Model) handleJamEvent(ev jam.Event) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case ev.RTT > 0:
		return rtt.CalcStats(ev.RTT, m.session.Pings())

	case ev.FromSelf:
		return nil

	case ev.Type == wsmsg.CHORD:
		m.sel = m.sel.SetChord(ev.Chord)
		return m.chordChanged(ev.Chord, shortID(ev), false)

	case ev.Type == wsmsg.MIDI:
		return m.playNote(ev.MIDI)

	case ev.Type == wsmsg.TEXT:
		m.feed, cmd = m.feed.Update(feedui.TextMsg{From: ev.Text.DisplayName, Body: ev.Text.Body})
		return cmd

	case ev.Type == wsmsg.CONNECT:
		m.log.Printf("jam: joined as %s", ev.Connect.UserName)
	}
	return nil
}

// ListenSocket reads the next message from the jam.
func (m Model) listenSocket() tea.Cmd {
	// https://github.com/charmbracelet/bubbletea/issues/25#issuecomment-732339162
	s := m.session
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		ev, err := s.Next()
		if errors.Is(err, jam.ErrNotChord) {
			return jamSkipMsg{err}
		}
		if err != nil {
			return rmxerr.ErrMsg{Err: err}
		}
		return jamEventMsg{ev}
	}
}

// LeaveRoom disconnects from the jam and sends a LeaveRoomMsg.
func (m Model) LeaveRoom() tea.Cmd {
	s := m.session
	return func() tea.Msg {
		if s == nil {
			return LeaveRoomMsg{}
		}
		return LeaveRoomMsg{Err: s.Close()}
	}
}

func (m Model) View() string {
	physicalWidth, _, _ := term.GetSize(int(os.Stdout.Fd()))
	doc := strings.Builder{}

	if physicalWidth > 0 {
		docStyle = docStyle.MaxWidth(physicalWidth)
	}

	doc.WriteString(m.statusBar() + "\n\n")
	doc.WriteString(m.grid() + "\n\n")
	doc.WriteString(m.feed.View())
	if m.err != nil {
		doc.WriteString(styles.RenderError(m.err.Error()) + "\n")
	}
	doc.WriteString(styles.HelpMenu.Render(m.help.View(keymap.DefaultMapping)))
	return docStyle.Render(doc.String())
}

func (m Model) statusBar() string {
	keyName := "no key"
	if m.key != nil {
		keyName = m.key.Name()
	}
	parts := []string{
		styles.KeyStyle.Render(keyName),
		styles.StatusNugget.Render(m.sel.Layout().Kind().String()),
	}

	if c, ok := m.sel.Chord(); ok {
		name := pitch.Pretty(c.Name(m.opts.Accidentals))
		if m.key != nil {
			name += " " + m.key.ChordNumeral(c)
		}
		parts = append(parts, styles.StatusStyle.Render(name))
		if code, ok := chordcode.Encode(c); ok {
			parts = append(parts, styles.StatusText.Render(code))
		}
	}

	if m.session != nil && m.ping.Latest > 0 {
		parts = append(parts, styles.PingStyle.Render(fmt.Sprintf("%s avg %s", m.ping.Latest.Round(time.Millisecond), m.ping.Avg)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) grid() string {
	l := m.sel.Layout()
	height := int(math.Ceil(l.Rows()*2)) + 2
	blank := strings.Repeat(" ", styles.CellWidth)

	columns := make([][]string, l.Cols())
	for i := range columns {
		columns[i] = make([]string, height)
		for j := range columns[i] {
			columns[i][j] = blank
		}
	}
	for _, c := range l.Cells() {
		line := int(math.Round(c.Row * 2))
		if line < 0 || line >= height {
			continue
		}
		label := pitch.PrettyName(c.Class, m.opts.Accidentals)
		columns[c.Col][line] = styles.RenderCell(c.Class, label, m.cellState(c), c == m.cursor)
	}

	rendered := make([]string, len(columns))
	for i, col := range columns {
		rendered[i] = columnStyle.Render(strings.Join(col, "\n"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) cellState(cell layout.Cell) styles.CellState {
	root, ok := m.sel.Root()
	if !ok {
		if cell.IsRoot {
			return styles.Reachable
		}
		return styles.Unreachable
	}
	if cell == root {
		return styles.Root
	}
	rel, ok := m.sel.Relationship(cell)
	if !ok {
		return styles.Unreachable
	}
	if c, _ := m.sel.Chord(); c.Type().Quality(rel.Factor) == rel.Quality {
		return styles.Sounding
	}
	return styles.Reachable
}

// sequence plays chords one after another, a beat apart.
func sequence(chords []chord.Chord) tea.Cmd {
	return func() tea.Msg {
		return sequenceMsg{chords}
	}
}

func shortID(ev jam.Event) string {
	id := ev.UserID.String()
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
