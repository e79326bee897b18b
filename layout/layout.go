// Package layout places pitch classes on a two-dimensional keyboard grid and
// answers which cells can extend a chord rooted at another cell.
package layout

import (
	"errors"
	"fmt"

	"github.com/rapidmidiex/chordpad/chord"
	"github.com/rapidmidiex/chordpad/pitch"
)

type (
	Kind int

	// Cell is one key of the grid.
	Cell struct {
		// Col is the column in display space.
		Col int
		// Row is the row in display space. Halves are allowed since the grid
		// is hexagonal.
		Row float64
		// Index is the position within the column, independent of display.
		Index  int
		Class  pitch.Class
		IsRoot bool
	}

	// Relation is the chord factor a cell plays above a root cell.
	Relation struct {
		Factor    chord.Factor
		Quality   chord.Quality
		Semitones pitch.Interval
	}

	RelateFunc func(root, cell Cell) (Relation, bool)

	// Layout is an immutable grid with exactly one root cell per pitch class.
	Layout struct {
		kind     Kind
		rows     float64
		cols     int
		cells    []Cell
		separate bool
		roots    [12]Cell
		relate   RelateFunc
	}
)

const (
	Chromatic Kind = iota
	Fifths
)

var (
	ErrMissingRoot   = errors.New("layout: no root cell for pitch class")
	ErrDuplicateRoot = errors.New("layout: more than one root cell for pitch class")

	kindNames = []string{"chromatic", "fifths"}
)

// New validates the root cells and returns the layout.
func New(kind Kind, rows float64, cols int, cells []Cell, separateRoots bool, relate RelateFunc) (*Layout, error) {
	l := &Layout{
		kind:     kind,
		rows:     rows,
		cols:     cols,
		cells:    append([]Cell(nil), cells...),
		separate: separateRoots,
		relate:   relate,
	}

	var seen [12]bool
	for _, c := range cells {
		if !c.IsRoot {
			continue
		}
		pc := pitch.Transpose(c.Class, 0)
		if seen[pc] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRoot, pc)
		}
		seen[pc] = true
		l.roots[pc] = c
	}
	for pc, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingRoot, pitch.Class(pc))
		}
	}
	return l, nil
}

// Must panics if the layout cannot be built.
func Must(l *Layout, err error) *Layout {
	if err != nil {
		panic(err)
	}
	return l
}

// NewKind builds a layout of the given kind.
func NewKind(kind Kind, factors int, bottom pitch.Class) (*Layout, error) {
	switch kind {
	case Chromatic:
		return NewChromatic(factors, bottom)
	case Fifths:
		return NewFifths(factors, bottom)
	default:
		return nil, fmt.Errorf("layout: unknown kind %d", int(kind))
	}
}

func (l *Layout) Kind() Kind             { return l.kind }
func (l *Layout) Rows() float64          { return l.rows }
func (l *Layout) Cols() int              { return l.cols }
func (l *Layout) Cells() []Cell          { return append([]Cell(nil), l.cells...) }
func (l *Layout) HasSeparateRoots() bool { return l.separate }

// LookupRoot returns the root cell of pc.
func (l *Layout) LookupRoot(pc pitch.Class) Cell {
	return l.roots[pitch.Transpose(pc, 0)]
}

// Relationship reports which factor cell would fill in a chord on root.
func (l *Layout) Relationship(root, cell Cell) (Relation, bool) {
	return l.relate(root, cell)
}

func (l *Layout) IsReachable(root, cell Cell) bool {
	if root == cell {
		return true
	}
	_, ok := l.relate(root, cell)
	return ok
}

// CellAt finds the cell at a column and index.
func (l *Layout) CellAt(col, index int) (Cell, bool) {
	for _, c := range l.cells {
		if c.Col == col && c.Index == index {
			return c, true
		}
	}
	return Cell{}, false
}

func (k Kind) String() string {
	if k < Chromatic || k > Fifths {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return Chromatic, false
}
