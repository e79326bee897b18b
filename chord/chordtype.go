package chord

import (
	"regexp"
	"strings"

	"github.com/rapidmidiex/chordpad/pitch"
)

type (
	// Parts is a partial assignment of qualities to factors. Factors that are
	// missing are treated as None.
	Parts map[Factor]Quality

	// Type is an immutable chord quality, independent of its root.
	Type struct {
		info      [NumFactors]Info
		intervals []pitch.Interval
		symbols   []string
	}

	triadName struct {
		name         string
		third, fifth Quality
	}
)

var namedTriads = []triadName{
	{"major", Major, Perfect},
	{"minor", Minor, Perfect},
}

var namedTypes = map[string]Parts{
	"major":      {Third: Major, Fifth: Perfect},
	"minor":      {Third: Minor, Fifth: Perfect},
	"diminished": {Third: Minor, Fifth: Diminished},
	"augmented":  {Third: Major, Fifth: Augmented},
}

// NewType builds a chord type. A quality that is not legal for its factor is
// replaced by None.
func NewType(parts Parts) Type {
	t := Type{intervals: []pitch.Interval{0}}
	for _, f := range Factors {
		info, ok := Lookup(f, parts[f])
		if !ok {
			info = noneInfo(f)
		}
		t.info[f] = info
		if info.Present() {
			t.symbols = append(t.symbols, info.Symbol)
			t.intervals = append(t.intervals, info.Semitones)
		}
	}
	return t
}

// Info returns the taxonomy entry chosen for f.
func (t Type) Info(f Factor) Info {
	if !f.Valid() {
		return Info{}
	}
	if t.intervals == nil {
		return noneInfo(f)
	}
	return t.info[f]
}

func (t Type) Quality(f Factor) Quality { return t.Info(f).Quality }

func (t Type) Has(f Factor) bool { return t.Info(f).Present() }

// Parts returns the full factor assignment, None included.
func (t Type) Parts() Parts {
	parts := make(Parts, NumFactors)
	for _, f := range Factors {
		parts[f] = t.Quality(f)
	}
	return parts
}

// Intervals lists the semitone offsets of the root and every present factor.
func (t Type) Intervals() []pitch.Interval {
	if t.intervals == nil {
		return []pitch.Interval{0}
	}
	return append([]pitch.Interval(nil), t.intervals...)
}

func (t Type) Symbols() []string { return append([]string(nil), t.symbols...) }

func (t Type) Symbol() string { return strings.Join(t.symbols, "") }

// Len is the number of factors present above the root.
func (t Type) Len() int { return len(t.symbols) }

func (t Type) Equal(o Type) bool {
	for _, f := range Factors {
		if t.Quality(f) != o.Quality(f) {
			return false
		}
	}
	return true
}

// Altered returns a copy of t with the given factors overwritten.
func (t Type) Altered(parts Parts) Type {
	merged := t.Parts()
	for f, q := range parts {
		merged[f] = q
	}
	return NewType(merged)
}

// Inversion rotates the lowest n intervals of the chord above the rest,
// dropping the others by an octave so the list stays ascending from the new
// bass note. n is taken modulo Len.
func (t Type) Inversion(n int) []pitch.Interval {
	intervals := t.Intervals()
	if t.Len() == 0 {
		return intervals
	}
	n = pitch.Mod(n, t.Len())
	if n == 0 {
		return intervals
	}
	out := make([]pitch.Interval, 0, len(intervals))
	for _, i := range intervals[n:] {
		out = append(out, i-12)
	}
	return append(out, intervals[:n]...)
}

// Triad names the chord if its third and fifth form a known triad.
func (t Type) Triad() (string, bool) {
	for _, triad := range namedTriads {
		if t.Quality(Third) == triad.third && t.Quality(Fifth) == triad.fifth {
			return triad.name, true
		}
	}
	return "", false
}

// NamedType returns one of the four canonical triads, "major", "minor",
// "diminished" or "augmented", extended by any extra parts.
func NamedType(name string, ext ...Parts) (Type, bool) {
	base, ok := namedTypes[name]
	if !ok {
		return Type{}, false
	}
	parts := Parts{}
	for f, q := range base {
		parts[f] = q
	}
	for _, e := range ext {
		for f, q := range e {
			parts[f] = q
		}
	}
	return NewType(parts), true
}

func mustNamed(name string, ext []Parts) Type {
	t, _ := NamedType(name, ext...)
	return t
}

func MajorType(ext ...Parts) Type      { return mustNamed("major", ext) }
func MinorType(ext ...Parts) Type      { return mustNamed("minor", ext) }
func DiminishedType(ext ...Parts) Type { return mustNamed("diminished", ext) }
func AugmentedType(ext ...Parts) Type  { return mustNamed("augmented", ext) }

// Numerals lists the chromatic scale degrees as roman numerals, relative to a tonic.
var Numerals = strings.Split("I bII II bIII III IV bV V bVI VI bVII VII", " ")

var romanPattern = regexp.MustCompile(`^([b#]?)([ivx]+|[IVX]+)([+0]?)$`)

// TypeFromRoman parses numerals such as "V", "ii", "bVII" or "vii0" into a
// chromatic degree above the tonic and a triad type.
func TypeFromRoman(roman string) (pitch.Interval, Type, bool) {
	m := romanPattern.FindStringSubmatch(roman)
	if m == nil {
		return 0, Type{}, false
	}
	accidental, body, modifier := m[1], m[2], m[3]
	numeral := strings.ToUpper(body)

	degree := -1
	for i, n := range Numerals {
		if n == accidental+numeral {
			degree = i
		}
	}
	if degree < 0 {
		return 0, Type{}, false
	}

	name := "major"
	if body != numeral {
		name = "minor"
	}
	switch modifier {
	case "0":
		name = "diminished"
	case "+":
		name = "augmented"
	}
	return pitch.Interval(degree), mustNamed(name, nil), true
}
