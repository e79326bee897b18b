package key_test

import (
	"testing"

	"github.com/rapidmidiex/chordpad/chord"
	"github.com/rapidmidiex/chordpad/key"
	"github.com/rapidmidiex/chordpad/pitch"
	"github.com/stretchr/testify/require"
)

func TestScales(t *testing.T) {
	require.Equal(t, []pitch.Class{0, 2, 4, 5, 7, 9, 11}, key.NewMajor(0).Notes())
	require.Equal(t, []pitch.Class{9, 11, 0, 2, 4, 5, 7}, key.NewMinor(9).Notes())
	require.Len(t, key.NewChromatic(3).Notes(), 12)
	require.Equal(t, pitch.Class(3), key.NewChromatic(3).Notes()[0])
}

func TestIncludes(t *testing.T) {
	c := key.NewMajor(0)
	require.True(t, c.IncludesChord(chord.NewMajor(0)))
	require.False(t, c.IncludesChord(chord.NewMinor(1)))
	require.True(t, c.IncludesChord(chord.NewMinor(9)))
	// the root alone is not enough
	require.False(t, c.IncludesChord(chord.NewMajor(2)))
	require.True(t, key.NewChromatic(5).IncludesChord(chord.NewAugmented(1)))
}

func TestChordNumeral(t *testing.T) {
	tests := []struct {
		name  string
		key   key.Key
		chord chord.Chord
		want  string
	}{
		{"supertonic minor", key.NewMajor(0), chord.NewMinor(2), "ii"},
		{"dominant", key.NewMajor(0), chord.NewMajor(7), "V"},
		{"leading tone diminished", key.NewMajor(0), chord.NewDiminished(11), "vii⁰"},
		{"flat seven", key.NewMajor(0), chord.NewMajor(10), "♭VII"},
		{"augmented mediant", key.NewMinor(9), chord.NewAugmented(0), "♭III⁺"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.key.ChordNumeral(tt.chord))
		})
	}
}

func TestNaturalChord(t *testing.T) {
	t.Run("builds the diatonic triads of a major key", func(t *testing.T) {
		k := key.NewMajor(0)
		want := []string{"C", "Dm", "Em", "F", "G", "Am", "Bm♭5"}
		for degree := 1; degree <= 7; degree++ {
			require.Equal(t, want[degree-1], k.NaturalChord(degree).Name(pitch.Flat))
		}
	})

	t.Run("wraps degrees around the scale", func(t *testing.T) {
		k := key.NewMinor(9)
		require.True(t, k.NaturalChord(8).Equal(k.NaturalChord(1)))
		require.True(t, k.NaturalChord(0).Equal(k.NaturalChord(7)))
		require.Equal(t, "Am", k.NaturalChord(1).Name(pitch.Flat))
	})
}

func TestForChord(t *testing.T) {
	k := key.ForChord(chord.NewMajor(7))
	require.Equal(t, key.Major, k.Type())
	require.Equal(t, pitch.Sharp, k.Accidentals())

	k = key.ForChord(chord.NewMinor(3))
	require.Equal(t, key.Minor, k.Type())
	require.Equal(t, pitch.Flat, k.Accidentals())
	require.Equal(t, "E♭ minor", k.Name())
}

func TestParse(t *testing.T) {
	k, ok := key.Parse("F#m")
	require.True(t, ok)
	require.Equal(t, key.Minor, k.Type())
	require.Equal(t, pitch.Class(6), k.Tonic())
	require.Equal(t, pitch.Sharp, k.Accidentals())

	k, ok = key.Parse("Bb major")
	require.True(t, ok)
	require.Equal(t, key.Major, k.Type())
	require.Equal(t, pitch.Class(10), k.Tonic())

	_, ok = key.Parse("Q")
	require.False(t, ok)

	t.Run("spells natural keys by their signature", func(t *testing.T) {
		for name, want := range map[string]pitch.Accidental{
			"G":        pitch.Sharp,
			"D":        pitch.Sharp,
			"B major":  pitch.Sharp,
			"F":        pitch.Flat,
			"C":        pitch.Flat,
			"Em":       pitch.Sharp,
			"Bm":       pitch.Sharp,
			"Dm":       pitch.Flat,
			"G minor":  pitch.Flat,
			"Bb":       pitch.Flat,
			"Eb minor": pitch.Flat,
			"C#m":      pitch.Sharp,
		} {
			k, ok := key.Parse(name)
			require.True(t, ok, name)
			require.Equal(t, want, k.Accidentals(), name)
		}
	})

	t.Run("names a sharp key's notes with sharps", func(t *testing.T) {
		k, ok := key.Parse("D")
		require.True(t, ok)
		var names []string
		for _, n := range k.Notes() {
			names = append(names, pitch.Name(n, k.Accidentals()))
		}
		require.Contains(t, names, "F#")
		require.Contains(t, names, "C#")
	})
}
