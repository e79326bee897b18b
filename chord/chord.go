package chord

import (
	"strings"

	"github.com/rapidmidiex/chordpad/pitch"
)

type (
	// Voicing places a chord in a register.
	Voicing struct {
		Octave    pitch.Octave
		Inversion int
	}

	// Chord is an immutable chord: a root, a type and a voicing. Every
	// alteration returns a new Chord.
	Chord struct {
		root    pitch.Class
		typ     Type
		voicing Voicing
		pitches []pitch.Class
		notes   []pitch.Note
	}

	Option func(*Voicing)

	// Scale is anything that can tell whether a pitch class belongs to it,
	// usually a key signature.
	Scale interface {
		Contains(pc pitch.Class) bool
	}
)

var DefaultVoicing = Voicing{Octave: pitch.C4, Inversion: 0}

func WithOctave(o pitch.Octave) Option { return func(v *Voicing) { v.Octave = o } }

func WithInversion(n int) Option { return func(v *Voicing) { v.Inversion = n } }

func WithVoicing(voicing Voicing) Option { return func(v *Voicing) { *v = voicing } }

func New(root pitch.Class, t Type, opts ...Option) Chord {
	voicing := DefaultVoicing
	for _, opt := range opts {
		opt(&voicing)
	}
	c := Chord{
		root:    pitch.Transpose(root, 0),
		typ:     t,
		voicing: voicing,
	}

	intervals := t.Inversion(voicing.Inversion)
	rootNote := c.RootNote()
	c.pitches = make([]pitch.Class, len(intervals))
	c.notes = make([]pitch.Note, len(intervals))
	for i, interval := range intervals {
		c.pitches[i] = pitch.Transpose(c.root, interval)
		c.notes[i] = rootNote.Transpose(interval)
	}
	return c
}

// Named builds a chord from one of the canonical triad names.
func Named(root pitch.Class, name string, opts ...Option) (Chord, bool) {
	t, ok := NamedType(name)
	if !ok {
		return Chord{}, false
	}
	return New(root, t, opts...), true
}

func NewMajor(root pitch.Class, opts ...Option) Chord      { return New(root, MajorType(), opts...) }
func NewMinor(root pitch.Class, opts ...Option) Chord      { return New(root, MinorType(), opts...) }
func NewDiminished(root pitch.Class, opts ...Option) Chord { return New(root, DiminishedType(), opts...) }
func NewAugmented(root pitch.Class, opts ...Option) Chord  { return New(root, AugmentedType(), opts...) }

func (c Chord) Root() pitch.Class { return c.root }
func (c Chord) Type() Type        { return c.typ }
func (c Chord) Voicing() Voicing  { return c.voicing }

// Pitches lists the pitch classes of the chord in voiced order.
func (c Chord) Pitches() []pitch.Class { return append([]pitch.Class(nil), c.pitches...) }

// Notes lists the voiced notes, lowest first.
func (c Chord) Notes() []pitch.Note { return append([]pitch.Note(nil), c.notes...) }

func (c Chord) RootNote() pitch.Note {
	return pitch.Note{Class: c.root, Octave: c.voicing.Octave}
}

func (c Chord) NameParts(acc pitch.Accidental) []string {
	return append([]string{pitch.Name(c.root, acc)}, c.typ.Symbols()...)
}

// Name is the root name followed by the factor symbols, e.g. "Am" or "C7".
func (c Chord) Name(acc pitch.Accidental) string {
	return strings.Join(c.NameParts(acc), "")
}

func (c Chord) String() string { return c.Name(pitch.Flat) }

func (c Chord) Includes(pc pitch.Class) bool {
	for _, p := range c.pitches {
		if p == pc {
			return true
		}
	}
	return false
}

func (c Chord) Equal(o Chord) bool {
	return c.root == o.root && c.voicing == o.voicing && c.typ.Equal(o.typ)
}

// Altered overwrites the given factors, keeping the root and voicing.
func (c Chord) Altered(parts Parts) Chord {
	return New(c.root, c.typ.Altered(parts), WithVoicing(c.voicing))
}
