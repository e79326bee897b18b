package padui_test

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rapidmidiex/chordpad/chord"
	"github.com/rapidmidiex/chordpad/feedui"
	chordkey "github.com/rapidmidiex/chordpad/key"
	"github.com/rapidmidiex/chordpad/keyui"
	"github.com/rapidmidiex/chordpad/layout"
	"github.com/rapidmidiex/chordpad/padui"
	"github.com/rapidmidiex/chordpad/pitch"
	"github.com/stretchr/testify/require"
)

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collect(c)...)
		}
		return msgs
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// pump feeds msg and everything its commands produce back into m.
func pump(m tea.Model, msg tea.Msg) tea.Model {
	queue := []tea.Msg{msg}
	for i := 0; len(queue) > 0 && i < 50; i++ {
		var cmd tea.Cmd
		m, cmd = m.Update(queue[0])
		queue = append(queue[1:], collect(cmd)...)
	}
	return m
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newPad(t *testing.T) tea.Model {
	t.Helper()
	m, err := padui.New(padui.Options{
		Layout:  layout.Chromatic,
		Factors: 4,
		Volume:  0.5,
		Beat:    time.Millisecond,
	})
	require.NoError(t, err)
	return m
}

func selected(t *testing.T, m tea.Model) string {
	t.Helper()
	c, ok := m.(padui.Model).Chord()
	if !ok {
		return ""
	}
	return c.Name(pitch.Flat)
}

func TestNew(t *testing.T) {
	_, err := padui.New(padui.Options{Layout: layout.Kind(7), Factors: 4})
	require.Error(t, err)

	m := newPad(t)
	require.Equal(t, pitch.Class(0), m.(padui.Model).Cursor().Class)
	require.True(t, m.(padui.Model).Cursor().IsRoot)
	require.Empty(t, selected(t, m))
}

func TestKeys(t *testing.T) {
	t.Run("enter on a root picks a major triad", func(t *testing.T) {
		m := pump(newPad(t), keyPress("enter"))
		require.Equal(t, "C", selected(t, m))
	})

	t.Run("up moves to the next root", func(t *testing.T) {
		m := pump(newPad(t), keyPress("up"))
		require.Equal(t, pitch.Class(1), m.(padui.Model).Cursor().Class)

		m = pump(m, keyPress("down"))
		m = pump(m, keyPress("down"))
		require.Equal(t, pitch.Class(0), m.(padui.Model).Cursor().Class)
	})

	t.Run("pressing the sounding third takes it out", func(t *testing.T) {
		m := pump(newPad(t), keyPress("enter"))
		m = pump(m, keyPress("right"))
		cursor := m.(padui.Model).Cursor()
		require.Equal(t, 1, cursor.Col)
		require.Equal(t, pitch.Class(4), cursor.Class)

		m = pump(m, keyPress("enter"))
		require.Equal(t, "Csus", selected(t, m))

		m = pump(m, keyPress("left"))
		require.Equal(t, 0, m.(padui.Model).Cursor().Col)
	})

	t.Run("qwerty keys choose a root", func(t *testing.T) {
		m := pump(newPad(t), keyPress("h"))
		require.Equal(t, "A", selected(t, m))
		require.Equal(t, pitch.Class(9), m.(padui.Model).Cursor().Class)
	})

	t.Run("escape clears the chord", func(t *testing.T) {
		m := pump(newPad(t), keyPress("enter"))
		m = pump(m, keyPress("esc"))
		require.Empty(t, selected(t, m))
	})

	t.Run("l switches layout and keeps the chord", func(t *testing.T) {
		m := pump(newPad(t), keyPress("g"))
		m = pump(m, keyPress("l"))
		require.Equal(t, layout.Fifths, m.(padui.Model).Layout().Kind())
		require.Equal(t, "G", selected(t, m))
		require.Equal(t, pitch.Class(7), m.(padui.Model).Cursor().Class)

		m = pump(m, keyPress("l"))
		require.Equal(t, layout.Chromatic, m.(padui.Model).Layout().Kind())
	})

	t.Run("typing a code does not press keys", func(t *testing.T) {
		m, _ := newPad(t).Update(keyPress("c"))
		m, _ = m.Update(keyPress("h"))
		require.Empty(t, selected(t, m))
	})
}

func TestKeySelected(t *testing.T) {
	k := chordkey.NewMinor(9)
	m := pump(newPad(t), keyui.KeySelected{Key: &k})

	// E is the dominant of A minor, and its minor triad fits the key.
	m = pump(m, keyPress("d"))
	require.Equal(t, "Em", selected(t, m))
	require.Contains(t, m.View(), "A minor")
	require.Contains(t, m.View(), "v")

	m = pump(m, keyui.KeySelected{})
	require.Contains(t, m.View(), "no key")
}

func TestSequence(t *testing.T) {
	t.Run("plays a progression to its last chord", func(t *testing.T) {
		m := pump(newPad(t), keyui.ProgressionSelected{
			Name:   "I-V",
			Chords: []chord.Chord{chord.NewMajor(0), chord.NewMajor(7)},
		})
		require.Equal(t, "G", selected(t, m))
		require.Equal(t, pitch.Class(7), m.(padui.Model).Cursor().Class)
	})

	t.Run("plays entered codes", func(t *testing.T) {
		m := pump(newPad(t), feedui.EnteredMsg{Chords: []chord.Chord{chord.NewMinor(2)}})
		require.Equal(t, "Dm", selected(t, m))
		require.Contains(t, m.View(), "Dm")
	})

	t.Run("ignores an empty progression", func(t *testing.T) {
		m := pump(newPad(t), feedui.EnteredMsg{})
		require.Empty(t, selected(t, m))
	})
}
