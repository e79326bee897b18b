// Package suggest holds a few well known chord progressions, written as roman
// numerals so they can be played in any key.
package suggest

import (
	"fmt"
	"regexp"

	"github.com/rapidmidiex/chordpad/chord"
	"github.com/rapidmidiex/chordpad/key"
	"github.com/rapidmidiex/chordpad/pitch"
)

type (
	// Step is one chord of a progression, relative to the tonic.
	Step struct {
		Degree pitch.Interval
		Type   chord.Type
	}

	Progression struct {
		Name  string
		Steps []Step
	}
)

var separators = regexp.MustCompile(`[- ]+`)

var byKeyType = map[key.Type][]Progression{
	key.Major: mustParse(
		"I IV V I",
		"I vi IV V",
		"I ii I V",
		"I IV vii0 iii vi ii V I",
		"I bVII bVI bVII",
	),
	key.Minor: nil,
}

// Parse reads numerals separated by spaces or dashes, e.g. "I-vi-IV-V".
func Parse(shorthand string) (Progression, error) {
	p := Progression{Name: shorthand}
	for _, roman := range separators.Split(shorthand, -1) {
		if roman == "" {
			continue
		}
		degree, t, ok := chord.TypeFromRoman(roman)
		if !ok {
			return Progression{}, fmt.Errorf("suggest: invalid numeral %q in %q", roman, shorthand)
		}
		p.Steps = append(p.Steps, Step{Degree: degree, Type: t})
	}
	return p, nil
}

func mustParse(shorthands ...string) []Progression {
	out := make([]Progression, len(shorthands))
	for i, s := range shorthands {
		p, err := Parse(s)
		if err != nil {
			panic(err)
		}
		out[i] = p
	}
	return out
}

// For lists the progressions suggested for keys of type t.
func For(t key.Type) []Progression {
	return append([]Progression(nil), byKeyType[t]...)
}

// Realize builds the chords of p in k.
func (p Progression) Realize(k key.Key) []chord.Chord {
	chords := make([]chord.Chord, len(p.Steps))
	for i, s := range p.Steps {
		chords[i] = chord.New(pitch.Transpose(k.Tonic(), s.Degree), s.Type)
	}
	return chords
}
