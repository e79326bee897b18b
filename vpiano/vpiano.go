// Package vpiano binds the qwerty keyboard to notes, laid out like a piano:
// the home row plays naturals and the row above plays accidentals.
package vpiano

import "github.com/rapidmidiex/chordpad/pitch"

type (
	Note struct {
		pitch.Note
		// Name of the note, ex: "C", "F#"
		Name string
		// Denotes if note is sharp/flat ie. "black" key.
		IsAccidental bool
		// qwerty keyboard key binding.
		KeyBinding string
	}

	Notes []Note

	NoteKeyMap map[string]Note
)

// qwerty keys ordered to allow for fingering similar to a real piano.
var qwertyKeys = []string{"a", "w", "s", "e", "d", "f", "t", "g", "y", "h", "u", "j", "k", "o", "l", "p", ";", "'"}

// MakeOctaveNotes maps the qwerty keys to notes starting at C in the given
// octave, and running a sixth into the next one.
func MakeOctaveNotes(octave pitch.Octave, acc pitch.Accidental) Notes {
	c := pitch.Note{Class: 0, Octave: octave}
	notes := make(Notes, 0, len(qwertyKeys))
	for i, kb := range qwertyKeys {
		n := c.Transpose(pitch.Interval(i))
		name := pitch.Name(n.Class, acc)
		notes = append(notes, Note{
			Note:         n,
			Name:         name,
			IsAccidental: len(name) > 1,
			KeyBinding:   kb,
		})
	}
	return notes
}

// Octave returns the first twelve bindings, one per pitch class.
func (notes Notes) Octave() Notes {
	if len(notes) > 12 {
		return notes[:12]
	}
	return notes
}

func (notes Notes) ToBindingMap() NoteKeyMap {
	nMap := make(NoteKeyMap, len(notes))
	for _, n := range notes {
		nMap[n.KeyBinding] = n
	}
	return nMap
}
