// Package pitch contains pitch classes, intervals and octave-aware notes.
package pitch

import (
	"strings"

	"golang.org/x/exp/constraints"
)

type (
	// Class is a note name modulo the octave, 0 (C) through 11 (B).
	Class int

	// Interval is a signed number of semitones. It may exceed an octave.
	Interval int

	Accidental int
)

const (
	Flat Accidental = iota
	Sharp
)

var (
	// Classes lists every pitch class in ascending order.
	Classes = []Class{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}

	// CircleOfFifths lists the pitch classes a perfect fifth apart, starting at C.
	CircleOfFifths = func() []Class {
		pcs := make([]Class, 12)
		for i := range pcs {
			pcs[i] = Transpose(0, Interval(7*i))
		}
		return pcs
	}()

	namesSharp = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	namesFlat  = []string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

	prettySymbols = strings.NewReplacer("#", "♯", "b", "♭", "+", "⁺", "0", "⁰")
)

// Mod returns x modulo r, always in [0, r) for positive r.
func Mod[T constraints.Integer](x, r T) T {
	return ((x % r) + r) % r
}

// FloorDiv divides rounding towards negative infinity.
func FloorDiv[T constraints.Integer](x, r T) T {
	return (x - Mod(x, r)) / r
}

// Transpose moves pc by the interval, wrapping around the octave.
func Transpose(pc Class, i Interval) Class {
	return Class(Mod(int(pc)+int(i), 12))
}

// StepsAbove is the upward distance from low to high, in [0, 11].
func StepsAbove(low, high Class) Interval {
	return Interval(Mod(int(high)-int(low), 12))
}

func (pc Class) Valid() bool { return 0 <= pc && pc <= 11 }

func (pc Class) String() string { return Name(pc, Flat) }

// Name returns the plain ASCII note name, e.g. "Db" or "C#".
func Name(pc Class, acc Accidental) string {
	pc = Class(Mod(int(pc), 12))
	if acc == Sharp {
		return namesSharp[pc]
	}
	return namesFlat[pc]
}

// ParseName looks up a note name like "C", "F#" or "Bb".
func ParseName(name string) (Class, bool) {
	name = strings.TrimSpace(name)
	for i := range namesSharp {
		if namesSharp[i] == name || namesFlat[i] == name {
			return Class(i), true
		}
	}
	return 0, false
}

// Pretty swaps ASCII accidentals and chord modifiers for their typographic forms.
func Pretty(notation string) string {
	return prettySymbols.Replace(notation)
}

func PrettyName(pc Class, acc Accidental) string {
	return Pretty(Name(pc, acc))
}

func (a Accidental) String() string {
	if a == Sharp {
		return "sharp"
	}
	return "flat"
}

// ParseAccidental accepts "sharp" or "flat". Anything else is flat.
func ParseAccidental(s string) Accidental {
	if strings.EqualFold(strings.TrimSpace(s), "sharp") {
		return Sharp
	}
	return Flat
}
