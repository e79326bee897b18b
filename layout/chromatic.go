package layout

import (
	"github.com/rapidmidiex/chordpad/chord"
	"github.com/rapidmidiex/chordpad/pitch"
)

// Pitch classes at the [start, end] of each chromatic column that no root
// can reach as that column's factor.
var unreachable = [][2]int{
	{0, 0},
	{0, 0},
	{0, 0},
	{0, 1},
	{1, 2},
	{2, 3},
}

// thirdsOf moves every pitch up a major third and prepends the first one up a
// minor third, so the column grows by one.
func thirdsOf(pcs []pitch.Class) []pitch.Class {
	out := make([]pitch.Class, 0, len(pcs)+1)
	out = append(out, pitch.Transpose(pcs[0], 3))
	for _, pc := range pcs {
		out = append(out, pitch.Transpose(pc, 4))
	}
	return out
}

// NewChromatic lays the roots out chromatically in the first column, and
// each following column holds the factor one third higher than its
// neighbour. factors is clamped to [0, 5].
func NewChromatic(factors int, bottom pitch.Class) (*Layout, error) {
	if factors < 0 {
		factors = 0
	}
	if factors > len(chord.Factors) {
		factors = len(chord.Factors)
	}

	levels := make([][]pitch.Class, len(chord.Factors)+1)
	levels[0] = make([]pitch.Class, len(pitch.Classes))
	for i, pc := range pitch.Classes {
		levels[0][i] = pitch.Transpose(pc, pitch.Interval(bottom))
	}
	for i := 1; i < len(levels); i++ {
		levels[i] = thirdsOf(levels[i-1])
	}
	columns := levels[:factors+1]

	var height float64
	for i, col := range columns {
		h := float64(i%2)/2 + float64(len(col)-unreachable[i][0]-unreachable[i][1])
		if h > height {
			height = h
		}
	}

	var cells []Cell
	for col, pcs := range columns {
		lo, hi := unreachable[col][0], unreachable[col][1]
		offset := (height - float64(len(levels[col]))) / 2
		for i, pc := range pcs {
			if i < lo || i >= len(pcs)-hi {
				continue
			}
			cells = append(cells, Cell{
				Col:    col,
				Row:    float64(len(pcs)-1-i) + offset,
				Index:  i,
				Class:  pc,
				IsRoot: col == 0,
			})
		}
	}

	return New(Chromatic, height, len(columns), cells, true, relateChromatic)
}

// Cell i of column c sits 3c+i semitones above the bottom root.
func relateChromatic(root, cell Cell) (Relation, bool) {
	if !root.IsRoot || cell.Col == 0 {
		return Relation{}, false
	}
	f := chord.Factors[cell.Col-1]
	semitones := pitch.Interval(cell.Col*3 + cell.Index - root.Index)
	q, ok := chord.Identify(semitones, f)
	if !ok {
		return Relation{}, false
	}
	return Relation{Factor: f, Quality: q, Semitones: semitones}, true
}
