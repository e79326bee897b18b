package chordpad

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rapidmidiex/chordpad/config"
	chordkey "github.com/rapidmidiex/chordpad/key"
	"github.com/rapidmidiex/chordpad/keyui"
	"github.com/rapidmidiex/chordpad/layout"
	"github.com/rapidmidiex/chordpad/padui"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T) mainModel {
	t.Helper()
	m, err := NewModel(&config.Config{Layout: layout.Chromatic, Factors: 4, Volume: 1}, nil)
	require.NoError(t, err)
	return m
}

func TestNewModel(t *testing.T) {
	_, err := NewModel(&config.Config{Layout: layout.Kind(9), Factors: 4}, nil)
	require.Error(t, err)

	m := newModel(t)
	require.Equal(t, padView, m.curView)
	require.Contains(t, m.View(), "chordpad")
}

func TestUpdate(t *testing.T) {
	t.Run("tab switches between pad and keys", func(t *testing.T) {
		var tm tea.Model = newModel(t)
		tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyTab})
		require.Equal(t, keyView, tm.(mainModel).curView)

		tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyEsc})
		require.Equal(t, padView, tm.(mainModel).curView)
	})

	t.Run("a selected key reaches the pad", func(t *testing.T) {
		var tm tea.Model = newModel(t)
		tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyTab})

		k := chordkey.NewMajor(7)
		tm, _ = tm.Update(keyui.KeySelected{Key: &k})
		require.Equal(t, padView, tm.(mainModel).curView)
		require.Contains(t, tm.View(), "G major")
	})

	t.Run("key presses only reach the view on screen", func(t *testing.T) {
		var tm tea.Model = newModel(t)
		tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyTab})
		tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
		_, ok := tm.(mainModel).pad.(padui.Model).Chord()
		require.False(t, ok)
	})

	t.Run("ctrl+c leaves the jam before quitting", func(t *testing.T) {
		var tm tea.Model = newModel(t)
		tm, cmd := tm.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		require.True(t, tm.(mainModel).quitting)
		require.Equal(t, padui.LeaveRoomMsg{}, cmd())

		_, cmd = tm.Update(padui.LeaveRoomMsg{})
		require.Equal(t, tea.Quit(), cmd())
	})
}
