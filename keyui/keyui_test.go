package keyui_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	chordkey "github.com/rapidmidiex/chordpad/key"
	"github.com/rapidmidiex/chordpad/keyui"
	"github.com/rapidmidiex/chordpad/suggest"
	"github.com/stretchr/testify/require"
)

// collect runs cmd, and any batched commands inside it, returning the messages.
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
	return []tea.Msg{msg}
}

func TestKeys(t *testing.T) {
	keys := keyui.Keys()
	require.Len(t, keys, 25)
	require.Nil(t, keys[0])
	require.Equal(t, "C major", keys[1].Name())
	require.Equal(t, "A minor", keys[16].Name())
	require.Equal(t, "G♭ minor", keys[19].Name())
}

func TestSuggestions(t *testing.T) {
	lib := suggest.DefaultLibrary()

	k := chordkey.NewMajor(0)
	got := keyui.Suggestions(lib, &k)
	require.Contains(t, got, "C F G C")
	require.Contains(t, got, "C B♭ A♭ B♭")
	require.Contains(t, keyui.Suggestions(lib, nil), "major")

	minor := chordkey.NewMinor(9)
	require.Contains(t, keyui.Suggestions(lib, &minor), "No suggestions")

	p, err := suggest.Parse("i iv v i")
	require.NoError(t, err)
	lib = lib.Merge(suggest.Library{chordkey.Minor: {p}})
	require.Contains(t, keyui.Suggestions(lib, &minor), "Am Dm Em Am")
}

func TestUpdate(t *testing.T) {
	var m tea.Model = keyui.New(nil)

	t.Run("selects no key first", func(t *testing.T) {
		var cmd tea.Cmd
		m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.Contains(t, collect(cmd), keyui.KeySelected{})
	})

	t.Run("selects the key under the cursor", func(t *testing.T) {
		var cmd tea.Cmd
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		var got *chordkey.Key
		for _, msg := range collect(cmd) {
			if sel, ok := msg.(keyui.KeySelected); ok {
				got = sel.Key
			}
		}
		require.NotNil(t, got)
		require.Equal(t, "C major", got.Name())
		require.Equal(t, got, m.(keyui.Model).Current())
	})

	t.Run("plays numbered suggestions", func(t *testing.T) {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
		var got keyui.ProgressionSelected
		for _, msg := range collect(cmd) {
			if p, ok := msg.(keyui.ProgressionSelected); ok {
				got = p
			}
		}
		require.Equal(t, "I vi IV V", got.Name)
		require.Len(t, got.Chords, 4)
	})
}
