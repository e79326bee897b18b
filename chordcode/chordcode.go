// Package chordcode writes chords as short strings of letters, for sharing
// progressions in URLs and jam messages.
//
// Each chord is one root letter, optionally followed by a letter for its
// third and fifth and then a letter for its seventh and ninth. A missing
// lower letter means a major triad, a missing upper letter means no seventh
// or ninth. Elevenths are not encoded.
package chordcode

import (
	"strings"

	"github.com/rapidmidiex/chordpad/chord"
	"github.com/rapidmidiex/chordpad/pitch"
)

type (
	slot int

	pair struct {
		low, high chord.Quality
	}

	meaning struct {
		slot slot
		pc   pitch.Class
		pair pair
	}
)

const (
	noteSlot slot = iota
	lowerSlot
	upperSlot
)

var (
	lowerDefault = pair{chord.Major, chord.Perfect}
	upperDefault = pair{chord.None, chord.None}
)

var letters = map[byte]meaning{
	'A': {slot: noteSlot, pc: 9},
	'V': {slot: noteSlot, pc: 10},
	'B': {slot: noteSlot, pc: 11},
	'C': {slot: noteSlot, pc: 0},
	'W': {slot: noteSlot, pc: 1},
	'D': {slot: noteSlot, pc: 2},
	'X': {slot: noteSlot, pc: 3},
	'E': {slot: noteSlot, pc: 4},
	'F': {slot: noteSlot, pc: 5},
	'Y': {slot: noteSlot, pc: 6},
	'G': {slot: noteSlot, pc: 7},
	'Z': {slot: noteSlot, pc: 8},

	// third and fifth
	'm': {slot: lowerSlot, pair: pair{chord.Minor, chord.Perfect}},
	'd': {slot: lowerSlot, pair: pair{chord.Minor, chord.Diminished}},
	'a': {slot: lowerSlot, pair: pair{chord.Major, chord.Augmented}},
	'u': {slot: lowerSlot, pair: pair{chord.None, chord.None}},
	'3': {slot: lowerSlot, pair: pair{chord.Major, chord.None}},
	'n': {slot: lowerSlot, pair: pair{chord.Minor, chord.None}},
	'5': {slot: lowerSlot, pair: pair{chord.None, chord.Perfect}},
	't': {slot: lowerSlot, pair: pair{chord.None, chord.Diminished}},
	'w': {slot: lowerSlot, pair: pair{chord.None, chord.Augmented}},

	// seventh and ninth
	'o': {slot: upperSlot, pair: pair{chord.Diminished, chord.Minor}},
	'p': {slot: upperSlot, pair: pair{chord.Minor, chord.Minor}},
	'q': {slot: upperSlot, pair: pair{chord.Minor, chord.Major}},
	'r': {slot: upperSlot, pair: pair{chord.Major, chord.Major}},
	'j': {slot: upperSlot, pair: pair{chord.Major, chord.None}},
	'7': {slot: upperSlot, pair: pair{chord.Major, chord.None}},
	'x': {slot: upperSlot, pair: pair{chord.Diminished, chord.None}},
	'9': {slot: upperSlot, pair: pair{chord.None, chord.Major}},
	'g': {slot: upperSlot, pair: pair{chord.None, chord.Minor}},
}

var (
	noteLetters  = map[pitch.Class]byte{}
	lowerLetters = map[pair]byte{}
	upperLetters = map[pair]byte{}
)

func init() {
	for letter, m := range letters {
		switch m.slot {
		case noteSlot:
			noteLetters[m.pc] = letter
		case lowerSlot:
			lowerLetters[m.pair] = letter
		case upperSlot:
			// '7' is accepted on input, 'j' is written
			if letter != '7' {
				upperLetters[m.pair] = letter
			}
		}
	}
}

// Encode writes c in code form. It reports false when c has an eleventh or
// a combination of factors the alphabet has no letter for.
func Encode(c chord.Chord) (string, bool) {
	t := c.Type()
	if t.Has(chord.Eleventh) {
		return "", false
	}

	var b strings.Builder
	b.WriteByte(noteLetters[c.Root()])

	lower := pair{t.Quality(chord.Third), t.Quality(chord.Fifth)}
	if lower != lowerDefault {
		letter, ok := lowerLetters[lower]
		if !ok {
			return "", false
		}
		b.WriteByte(letter)
	}

	upper := pair{t.Quality(chord.Seventh), t.Quality(chord.Ninth)}
	if upper != upperDefault {
		letter, ok := upperLetters[upper]
		if !ok {
			return "", false
		}
		b.WriteByte(letter)
	}
	return b.String(), true
}

// EncodeAll concatenates the codes of every chord.
func EncodeAll(chords []chord.Chord) (string, bool) {
	var b strings.Builder
	for _, c := range chords {
		code, ok := Encode(c)
		if !ok {
			return "", false
		}
		b.WriteString(code)
	}
	return b.String(), true
}

func read(s string, want slot) (meaning, string, bool) {
	if s == "" {
		return meaning{}, s, false
	}
	m, ok := letters[s[0]]
	if !ok || m.slot != want {
		return meaning{}, s, false
	}
	return m, s[1:], true
}

// Read decodes the chord at the start of s and returns the unread rest. If s
// does not start with a root letter, ok is false and rest is s.
func Read(s string) (c chord.Chord, rest string, ok bool) {
	root, rest, ok := read(s, noteSlot)
	if !ok {
		return chord.Chord{}, s, false
	}

	lower := lowerDefault
	if m, r, ok := read(rest, lowerSlot); ok {
		lower, rest = m.pair, r
	}
	upper := upperDefault
	if m, r, ok := read(rest, upperSlot); ok {
		upper, rest = m.pair, r
	}

	t := chord.NewType(chord.Parts{
		chord.Third:   lower.low,
		chord.Fifth:   lower.high,
		chord.Seventh: upper.low,
		chord.Ninth:   upper.high,
	})
	return chord.New(root.pc, t), rest, true
}

// ReadAll decodes chords until s runs out or stops making sense, and returns
// whatever could not be read.
func ReadAll(s string) ([]chord.Chord, string) {
	var chords []chord.Chord
	for {
		c, rest, ok := Read(s)
		if !ok {
			return chords, s
		}
		chords = append(chords, c)
		s = rest
	}
}
