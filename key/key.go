// Package key models key signatures: the scale degrees of a tonic and the
// questions a chord pad asks about them.
package key

import (
	"fmt"
	"strings"

	"github.com/rapidmidiex/chordpad/chord"
	"github.com/rapidmidiex/chordpad/pitch"
)

type (
	Type int

	// Key is an immutable key signature. Its notes are fixed at construction.
	Key struct {
		typ         Type
		tonic       pitch.Class
		notes       []pitch.Class
		accidentals pitch.Accidental
	}
)

const (
	Major Type = iota
	Minor
	Chromatic
)

var (
	Types = []Type{Major, Minor, Chromatic}

	// Names are the tonics offered for selection, around the circle of fifths.
	Names = []string{"C", "G", "D", "A", "E", "B", "Gb", "Db", "Ab", "Eb", "Bb", "F"}

	majorScale = []pitch.Interval{0, 2, 4, 5, 7, 9, 11}
	minorScale = []pitch.Interval{0, 2, 3, 5, 7, 8, 10}

	typeNames = []string{"major", "minor", "chromatic"}
)

// FromScale transposes each scale interval by the tonic.
func FromScale(t Type, tonic pitch.Class, scale []pitch.Interval, acc pitch.Accidental) Key {
	notes := make([]pitch.Class, len(scale))
	for i, interval := range scale {
		notes[i] = pitch.Transpose(tonic, interval)
	}
	return Key{
		typ:         t,
		tonic:       pitch.Transpose(tonic, 0),
		notes:       notes,
		accidentals: acc,
	}
}

func accidental(acc []pitch.Accidental) pitch.Accidental {
	if len(acc) > 0 {
		return acc[0]
	}
	return pitch.Flat
}

func NewMajor(tonic pitch.Class, acc ...pitch.Accidental) Key {
	return FromScale(Major, tonic, majorScale, accidental(acc))
}

func NewMinor(tonic pitch.Class, acc ...pitch.Accidental) Key {
	return FromScale(Minor, tonic, minorScale, accidental(acc))
}

func NewChromatic(tonic pitch.Class, acc ...pitch.Accidental) Key {
	scale := make([]pitch.Interval, len(pitch.Classes))
	for i, pc := range pitch.Classes {
		scale[i] = pitch.Interval(pc)
	}
	return FromScale(Chromatic, tonic, scale, accidental(acc))
}

func Named(t Type, tonic pitch.Class, acc ...pitch.Accidental) Key {
	switch t {
	case Minor:
		return NewMinor(tonic, acc...)
	case Chromatic:
		return NewChromatic(tonic, acc...)
	default:
		return NewMajor(tonic, acc...)
	}
}

func (k Key) Type() Type                    { return k.typ }
func (k Key) Tonic() pitch.Class            { return k.tonic }
func (k Key) Accidentals() pitch.Accidental { return k.accidentals }
func (k Key) Notes() []pitch.Class          { return append([]pitch.Class(nil), k.notes...) }

// Contains reports whether pc is a degree of the key.
func (k Key) Contains(pc pitch.Class) bool {
	for _, n := range k.notes {
		if n == pc {
			return true
		}
	}
	return false
}

// IncludesChord is true only if every pitch of c is in the key.
func (k Key) IncludesChord(c chord.Chord) bool {
	for _, pc := range c.Pitches() {
		if !k.Contains(pc) {
			return false
		}
	}
	return true
}

func (k Key) NoteName(pc pitch.Class) string {
	return pitch.PrettyName(pc, k.accidentals)
}

// Name is the display name of the key, e.g. "E♭ minor".
func (k Key) Name() string {
	return fmt.Sprintf("%s %s", k.NoteName(k.tonic), k.typ)
}

// ChordNumeral names c as a roman numeral relative to the tonic: lower case
// for a minor third, with ⁰ or ⁺ for a diminished or augmented fifth.
func (k Key) ChordNumeral(c chord.Chord) string {
	numeral := chord.Numerals[pitch.StepsAbove(k.tonic, c.Root())]
	if c.Type().Quality(chord.Third) == chord.Minor {
		numeral = strings.ToLower(numeral)
	}
	switch c.Type().Quality(chord.Fifth) {
	case chord.Diminished:
		numeral += "0"
	case chord.Augmented:
		numeral += "+"
	}
	return pitch.Pretty(numeral)
}

// NaturalChord stacks the key's own third and fifth on the given 1-based
// scale degree. Degrees wrap around the scale.
func (k Key) NaturalChord(degree int) chord.Chord {
	n := len(k.notes)
	firstIx := pitch.Mod(degree-1, n)
	thirdIx := (firstIx + 2) % n
	fifthIx := (thirdIx + 2) % n
	first, third, fifth := k.notes[firstIx], k.notes[thirdIx], k.notes[fifthIx]

	thirdQ, _ := chord.Identify(pitch.StepsAbove(first, third), chord.Third)
	fifthQ, _ := chord.Identify(pitch.StepsAbove(first, fifth), chord.Fifth)
	return chord.New(first, chord.NewType(chord.Parts{chord.Third: thirdQ, chord.Fifth: fifthQ}))
}

// DefaultAccidentals spells keys on G, D, A, E and B with sharps and the
// rest with flats.
func DefaultAccidentals(tonic pitch.Class) pitch.Accidental {
	switch pitch.Transpose(tonic, 0) {
	case 7, 2, 9, 4, 11:
		return pitch.Sharp
	}
	return pitch.Flat
}

// ForChord guesses a key from a single chord: major if it has a major third,
// minor otherwise.
func ForChord(c chord.Chord) Key {
	acc := DefaultAccidentals(c.Root())
	if c.Type().Quality(chord.Third) == chord.Major {
		return NewMajor(c.Root(), acc)
	}
	return NewMinor(c.Root(), acc)
}

// Parse reads keys written like "C", "F#m" or "Bb minor".
func Parse(s string) (Key, bool) {
	s = strings.TrimSpace(s)
	t := Major
	switch {
	case strings.HasSuffix(s, " minor"):
		s, t = strings.TrimSuffix(s, " minor"), Minor
	case strings.HasSuffix(s, " major"):
		s = strings.TrimSuffix(s, " major")
	case strings.HasSuffix(s, " chromatic"):
		s, t = strings.TrimSuffix(s, " chromatic"), Chromatic
	case strings.HasSuffix(s, "m"):
		s, t = strings.TrimSuffix(s, "m"), Minor
	}
	tonic, ok := pitch.ParseName(s)
	if !ok {
		return Key{}, false
	}
	return Named(t, tonic, parsedAccidentals(s, t, tonic)), true
}

// A written sharp or flat wins. Otherwise the key signature decides, and a
// minor key borrows the signature of its relative major.
func parsedAccidentals(name string, t Type, tonic pitch.Class) pitch.Accidental {
	switch {
	case strings.Contains(name, "#"):
		return pitch.Sharp
	case len(name) > 1 && strings.Contains(name[1:], "b"):
		return pitch.Flat
	case t == Minor:
		return DefaultAccidentals(pitch.Transpose(tonic, 3))
	}
	return DefaultAccidentals(tonic)
}

func (t Type) String() string {
	if t < Major || t > Chromatic {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

func ParseType(s string) (Type, bool) {
	for i, name := range typeNames {
		if strings.EqualFold(name, s) {
			return Type(i), true
		}
	}
	return Major, false
}
