package vpiano_test

import (
	"testing"

	"github.com/rapidmidiex/chordpad/pitch"
	"github.com/rapidmidiex/chordpad/vpiano"
	"github.com/stretchr/testify/require"
)

func TestMakeOctaveNotes(t *testing.T) {
	got := vpiano.MakeOctaveNotes(pitch.C4, pitch.Sharp)
	wantNotes := []struct {
		midi       int
		keyBinding string
		name       string
		accidental bool
	}{
		{60, "a", "C", false},
		{61, "w", "C#", true},
		{62, "s", "D", false},
		{63, "e", "D#", true},
		{64, "d", "E", false},
		{65, "f", "F", false},
		{66, "t", "F#", true},
		{67, "g", "G", false},
		{68, "y", "G#", true},
		{69, "h", "A", false},
		{70, "u", "A#", true},
		{71, "j", "B", false},
		{72, "k", "C", false},
		{73, "o", "C#", true},
		{74, "l", "D", false},
		{75, "p", "D#", true},
		{76, ";", "E", false},
		{77, "'", "F", false},
	}

	require.Len(t, got, len(wantNotes))
	for i, want := range wantNotes {
		require.Equal(t, want.midi, got[i].MIDI())
		require.Equal(t, want.keyBinding, got[i].KeyBinding)
		require.Equal(t, want.name, got[i].Name)
		require.Equal(t, want.accidental, got[i].IsAccidental)
	}
}

func TestToBindingMap(t *testing.T) {
	notes := vpiano.MakeOctaveNotes(pitch.C3, pitch.Flat)
	m := notes.Octave().ToBindingMap()
	require.Len(t, m, 12)
	require.Equal(t, "Bb", m["u"].Name)
	require.Equal(t, pitch.Class(10), m["u"].Class)
	_, ok := m["k"]
	require.False(t, ok)
}
