// Package keyboard turns clicks on a layout into chords.
//
// A Selector starts with nothing selected. Clicking a root cell picks a
// chord on that root. While a chord is selected, clicking a reachable cell
// toggles the factor that cell represents, and clicking anywhere else
// clears the selection.
package keyboard

import (
	"github.com/rapidmidiex/chordpad/chord"
	"github.com/rapidmidiex/chordpad/layout"
	"github.com/rapidmidiex/chordpad/pitch"
)

// Selector is the state of a chord pad. It is a value: every method returns
// an updated copy.
type Selector struct {
	layout   *layout.Layout
	scale    chord.Scale
	root     layout.Cell
	chord    chord.Chord
	last     chord.Type
	hasLast  bool
	selected bool
}

// ChordForRoot chooses the chord to start from when root is clicked. It
// prefers last, then major, minor, diminished and augmented triads, taking
// the first whose non-root pitches all lie in scale. Without a scale, or if
// nothing fits, the first option wins.
func ChordForRoot(root pitch.Class, scale chord.Scale, last *chord.Type) chord.Chord {
	var options []chord.Chord
	if last != nil {
		options = append(options, chord.New(root, *last))
	}
	options = append(options,
		chord.NewMajor(root),
		chord.NewMinor(root),
		chord.NewDiminished(root),
		chord.NewAugmented(root),
	)
	if scale == nil {
		return options[0]
	}
	for _, c := range options {
		if fits(c, scale) {
			return c
		}
	}
	return options[0]
}

func fits(c chord.Chord, scale chord.Scale) bool {
	for _, pc := range c.Pitches()[1:] {
		if !scale.Contains(pc) {
			return false
		}
	}
	return true
}

func New(l *layout.Layout) Selector {
	return Selector{layout: l}
}

func (s Selector) Layout() *layout.Layout { return s.layout }
func (s Selector) Scale() chord.Scale     { return s.scale }
func (s Selector) Selected() bool         { return s.selected }

// Chord returns the selected chord, if any.
func (s Selector) Chord() (chord.Chord, bool) { return s.chord, s.selected }

// Root returns the root cell of the selected chord, if any.
func (s Selector) Root() (layout.Cell, bool) { return s.root, s.selected }

// Relationship reports what cell would add to the selected chord.
func (s Selector) Relationship(cell layout.Cell) (layout.Relation, bool) {
	if !s.selected {
		return layout.Relation{}, false
	}
	return s.layout.Relationship(s.root, cell)
}

// Click applies a click on cell. changed reports whether a new chord was
// chosen, as opposed to nothing happening or the selection being cleared.
func (s Selector) Click(cell layout.Cell) (next Selector, changed bool) {
	if !s.selected {
		if !cell.IsRoot {
			return s, false
		}
		return s.chooseRoot(cell.Class), true
	}

	if !s.layout.IsReachable(s.root, cell) {
		return s.Clear(), false
	}
	rel, ok := s.layout.Relationship(s.root, cell)
	if !ok {
		return s, false
	}

	var c chord.Chord
	if s.chord.Type().Quality(rel.Factor) == rel.Quality {
		c = s.chord.Altered(chord.Parts{rel.Factor: chord.None})
	} else {
		c = s.chord.TertianAltered(chord.Parts{rel.Factor: rel.Quality}, s.scale)
	}
	s.chord, s.last, s.hasLast = c, c.Type(), true
	return s, true
}

func (s Selector) chooseRoot(pc pitch.Class) Selector {
	var last *chord.Type
	if s.hasLast {
		last = &s.last
	}
	c := ChordForRoot(pc, s.scale, last)
	s.root = s.layout.LookupRoot(pc)
	s.chord, s.last, s.hasLast = c, c.Type(), true
	s.selected = true
	return s
}

// SetLayout swaps the layout, moving the selection to the new root cell.
func (s Selector) SetLayout(l *layout.Layout) Selector {
	s.layout = l
	if s.selected {
		s.root = l.LookupRoot(s.root.Class)
	}
	return s
}

// SetScale sets the key that biases chord choices. A nil scale removes it.
func (s Selector) SetScale(scale chord.Scale) Selector {
	s.scale = scale
	return s
}

// SetChord selects c directly.
func (s Selector) SetChord(c chord.Chord) Selector {
	if !s.selected || s.root.Class != c.Root() {
		s.root = s.layout.LookupRoot(c.Root())
	}
	s.chord, s.last, s.hasLast = c, c.Type(), true
	s.selected = true
	return s
}

// Clear drops the selection but remembers the last chord type.
func (s Selector) Clear() Selector {
	s.selected = false
	s.chord = chord.Chord{}
	s.root = layout.Cell{}
	return s
}
