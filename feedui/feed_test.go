package feedui_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rapidmidiex/chordpad/chord"
	"github.com/rapidmidiex/chordpad/feedui"
	"github.com/rapidmidiex/chordpad/pitch"
	"github.com/stretchr/testify/require"
)

func TestFeed(t *testing.T) {
	var m tea.Model = feedui.New(pitch.Flat)

	t.Run("lists played chords with their codes", func(t *testing.T) {
		m, _ = m.Update(feedui.PlayedMsg{FromSelf: true, Chord: chord.NewMinor(9)})
		m, _ = m.Update(feedui.PlayedMsg{From: "ana", Chord: chord.NewMajor(10)})
		view := m.View()
		require.Contains(t, view, "You: Am  [Am]")
		require.Contains(t, view, "ana: B♭  [V]")
	})

	t.Run("spells notes with the chosen accidentals", func(t *testing.T) {
		m, _ = m.Update(feedui.AccidentalsMsg(pitch.Sharp))
		m, _ = m.Update(feedui.PlayedMsg{FromSelf: true, Chord: chord.NewMajor(10)})
		require.Contains(t, m.View(), "You: A♯  [V]")
	})

	t.Run("takes focus on request", func(t *testing.T) {
		require.False(t, m.(feedui.Model).Focused())
		m, _ = m.Update(feedui.ToggleFocusMsg{})
		require.True(t, m.(feedui.Model).Focused())
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		require.False(t, m.(feedui.Model).Focused())
	})
}
