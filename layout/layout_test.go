package layout_test

import (
	"errors"
	"testing"

	"github.com/rapidmidiex/chordpad/chord"
	"github.com/rapidmidiex/chordpad/layout"
	"github.com/rapidmidiex/chordpad/pitch"
	"github.com/stretchr/testify/require"
)

func roots(l *layout.Layout) []layout.Cell {
	var out []layout.Cell
	for _, c := range l.Cells() {
		if c.IsRoot {
			out = append(out, c)
		}
	}
	return out
}

func TestRoots(t *testing.T) {
	for _, kind := range []layout.Kind{layout.Chromatic, layout.Fifths} {
		t.Run(kind.String()+" has one root per pitch class", func(t *testing.T) {
			l, err := layout.NewKind(kind, 4, 0)
			require.NoError(t, err)
			require.Len(t, roots(l), 12)

			for _, pc := range pitch.Classes {
				root := l.LookupRoot(pc)
				require.Equal(t, pc, root.Class)
				require.True(t, root.IsRoot)
				require.True(t, l.IsReachable(root, root))
			}
		})
	}
}

func TestChromatic(t *testing.T) {
	l := layout.Must(layout.NewChromatic(4, 0))
	require.Equal(t, layout.Chromatic, l.Kind())
	require.Equal(t, 5, l.Cols())
	require.Equal(t, 14.5, l.Rows())
	require.True(t, l.HasSeparateRoots())
	require.Len(t, l.Cells(), 12+13+14+14+13)

	t.Run("identifies a minor third", func(t *testing.T) {
		cell, ok := l.CellAt(1, 0)
		require.True(t, ok)
		require.Equal(t, pitch.Class(3), cell.Class)

		rel, ok := l.Relationship(l.LookupRoot(0), cell)
		require.True(t, ok)
		require.Equal(t, layout.Relation{Factor: chord.Third, Quality: chord.Minor, Semitones: 3}, rel)
	})

	t.Run("roots never relate to other roots", func(t *testing.T) {
		_, ok := l.Relationship(l.LookupRoot(0), l.LookupRoot(7))
		require.False(t, ok)
		require.False(t, l.IsReachable(l.LookupRoot(0), l.LookupRoot(7)))
	})

	t.Run("trims cells no root can reach", func(t *testing.T) {
		_, ok := l.CellAt(3, 14)
		require.False(t, ok)
		_, ok = l.CellAt(4, 0)
		require.False(t, ok)

		for _, cell := range l.Cells() {
			if cell.IsRoot {
				continue
			}
			reached := false
			for _, root := range roots(l) {
				if _, ok := l.Relationship(root, cell); ok {
					reached = true
				}
			}
			require.True(t, reached, "cell %+v", cell)
		}
	})

	t.Run("transposes the bottom root", func(t *testing.T) {
		l := layout.Must(layout.NewChromatic(2, 5))
		cell, ok := l.CellAt(0, 0)
		require.True(t, ok)
		require.Equal(t, pitch.Class(5), cell.Class)
		require.Equal(t, 3, l.Cols())
	})
}

func TestFactorsAreClamped(t *testing.T) {
	for _, kind := range []layout.Kind{layout.Chromatic, layout.Fifths} {
		t.Run(kind.String()+" never grows past five factors", func(t *testing.T) {
			most, err := layout.NewKind(kind, 5, 0)
			require.NoError(t, err)

			for _, factors := range []int{6, 41, 1001, 1 << 62} {
				l, err := layout.NewKind(kind, factors, 0)
				require.NoError(t, err)
				require.Equal(t, most.Cols(), l.Cols())
				require.Len(t, l.Cells(), len(most.Cells()))
			}
		})

		t.Run(kind.String()+" treats negative factors as none", func(t *testing.T) {
			l, err := layout.NewKind(kind, -3, 0)
			require.NoError(t, err)
			require.Equal(t, 1, l.Cols())
			require.Len(t, roots(l), 12)
		})
	}
}

func TestFifths(t *testing.T) {
	l := layout.Must(layout.NewFifths(4, 0))
	require.Equal(t, 5, l.Cols())
	require.Equal(t, 12.0, l.Rows())
	require.False(t, l.HasSeparateRoots())
	require.Len(t, l.Cells(), 60)

	c := l.LookupRoot(0)
	require.Equal(t, 2, c.Col)

	t.Run("moves right by major thirds", func(t *testing.T) {
		e, ok := l.CellAt(3, c.Index)
		require.True(t, ok)
		require.Equal(t, pitch.Class(4), e.Class)
		rel, ok := l.Relationship(c, e)
		require.True(t, ok)
		require.Equal(t, chord.Third, rel.Factor)
		require.Equal(t, chord.Major, rel.Quality)
	})

	t.Run("moves left by minor thirds", func(t *testing.T) {
		eb, ok := l.CellAt(1, c.Index)
		require.True(t, ok)
		require.Equal(t, pitch.Class(3), eb.Class)
		rel, ok := l.Relationship(c, eb)
		require.True(t, ok)
		require.Equal(t, chord.Minor, rel.Quality)
	})

	t.Run("moves up by fifths", func(t *testing.T) {
		g, ok := l.CellAt(2, c.Index+1)
		require.True(t, ok)
		require.Equal(t, pitch.Class(7), g.Class)
		rel, ok := l.Relationship(c, g)
		require.True(t, ok)
		require.Equal(t, layout.Relation{Factor: chord.Fifth, Quality: chord.Perfect, Semitones: 7}, rel)
	})

	t.Run("rejects offsets outside the taxonomy", func(t *testing.T) {
		far, ok := l.CellAt(2, c.Index+5)
		require.True(t, ok)
		require.False(t, l.IsReachable(c, far))
	})
}

func TestNew(t *testing.T) {
	cells := make([]layout.Cell, 0, 13)
	for i, pc := range pitch.Classes {
		cells = append(cells, layout.Cell{Index: i, Class: pc, IsRoot: true})
	}
	none := func(root, cell layout.Cell) (layout.Relation, bool) { return layout.Relation{}, false }

	t.Run("accepts one root per pitch class", func(t *testing.T) {
		_, err := layout.New(layout.Chromatic, 12, 1, cells, true, none)
		require.NoError(t, err)
	})

	t.Run("rejects a missing root", func(t *testing.T) {
		_, err := layout.New(layout.Chromatic, 12, 1, cells[1:], true, none)
		require.True(t, errors.Is(err, layout.ErrMissingRoot))
	})

	t.Run("rejects a duplicate root", func(t *testing.T) {
		dup := append(append([]layout.Cell(nil), cells...), layout.Cell{Col: 1, Class: 4, IsRoot: true})
		_, err := layout.New(layout.Chromatic, 12, 2, dup, true, none)
		require.ErrorIs(t, err, layout.ErrDuplicateRoot)
		require.Panics(t, func() { layout.Must(layout.New(layout.Chromatic, 12, 2, dup, true, none)) })
	})
}
