package layout

import (
	"github.com/rapidmidiex/chordpad/chord"
	"github.com/rapidmidiex/chordpad/pitch"
)

// NewFifths puts the circle of fifths in the centre column. Each column to
// the left is a minor third above its neighbour and each column to the right
// a major third, with ceil(factors/2) columns on either side. factors is
// clamped to [0, 5].
func NewFifths(factors int, bottom pitch.Class) (*Layout, error) {
	if factors < 0 {
		factors = 0
	}
	if factors > len(chord.Factors) {
		factors = len(chord.Factors)
	}
	side := (factors + 1) / 2

	roots := make([]pitch.Class, len(pitch.CircleOfFifths))
	for i, pc := range pitch.CircleOfFifths {
		roots[i] = pitch.Transpose(pc, pitch.Interval(bottom))
	}

	columns := make([][]pitch.Class, 2*side+1)
	columns[side] = roots
	for i := side - 1; i >= 0; i-- {
		columns[i] = shifted(columns[i+1], 3)
	}
	for i := side + 1; i < len(columns); i++ {
		columns[i] = shifted(columns[i-1], 4)
	}

	var cells []Cell
	for col, pcs := range columns {
		for i, pc := range pcs {
			cells = append(cells, Cell{
				Col:    col,
				Row:    12 - (float64(i) + float64(abs(side-col))/2),
				Index:  i,
				Class:  pc,
				IsRoot: col == side,
			})
		}
	}

	return New(Fifths, 12, len(columns), cells, false, relateFifths)
}

func shifted(pcs []pitch.Class, by pitch.Interval) []pitch.Class {
	out := make([]pitch.Class, len(pcs))
	for i, pc := range pcs {
		out[i] = pitch.Transpose(pc, by)
	}
	return out
}

// Horizontal steps are thirds and vertical steps are fifths.
func relateFifths(root, cell Cell) (Relation, bool) {
	var semitones pitch.Interval
	if root.Col > cell.Col {
		semitones = pitch.Interval(3 * (root.Col - cell.Col))
	} else {
		semitones = pitch.Interval(4 * (cell.Col - root.Col))
	}
	semitones += pitch.Interval(7 * pitch.Mod(cell.Index-root.Index, 12))

	info, ok := chord.BySemitones(semitones)
	if !ok {
		return Relation{}, false
	}
	return Relation{Factor: info.Factor, Quality: info.Quality, Semitones: semitones}, true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
