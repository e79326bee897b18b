package pitch

import "fmt"

type (
	Octave int

	// Note is a pitch class in a specific octave, C4 being middle C.
	Note struct {
		Class  Class
		Octave Octave
	}
)

const (
	Cneg2 Octave = iota - 2
	Cneg1
	C0
	C1
	C2
	C3
	C4
	C5
	C6
	C7
)

// Transpose moves the note by i semitones, carrying into neighbouring
// octaves when the sum crosses a multiple of 12.
func (n Note) Transpose(i Interval) Note {
	notional := int(n.Class) + int(i)
	return Note{
		Class:  Transpose(n.Class, i),
		Octave: n.Octave + Octave(FloorDiv(notional, 12)),
	}
}

// MIDI returns the MIDI note number, with C4 = 60.
func (n Note) MIDI() int {
	return (int(n.Octave)+1)*12 + int(n.Class)
}

// InRange reports whether the note has a valid MIDI number.
func (n Note) InRange() bool {
	m := n.MIDI()
	return m >= 0 && m < 128
}

func (n Note) String() string {
	return fmt.Sprintf("%s%d", Name(n.Class, Flat), n.Octave)
}
