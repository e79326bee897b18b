// Package voicing turns chords into weighted notes ready to be played.
package voicing

import (
	"math"

	"github.com/rapidmidiex/chordpad/chord"
	"github.com/rapidmidiex/chordpad/pitch"
)

type (
	// Voice is a note and its share of the overall volume.
	Voice struct {
		Note   pitch.Note
		Weight float64
	}

	Voicing []Voice

	// spread is how a chord factor is distributed over the octaves around it.
	spread struct {
		octaves []pitch.Octave
		power   float64
	}
)

// DefaultOctaves is the spread used by ShepardTone callers that have no
// preference.
var DefaultOctaves = []pitch.Octave{pitch.C3, pitch.C4, pitch.C5}

var (
	rootSpread  = spread{[]pitch.Octave{-1, 0, 1}, 2}
	fifthSpread = spread{[]pitch.Octave{-1, 0, 1}, 1}
	upperSpread = spread{[]pitch.Octave{0}, 1}
)

func (v Voicing) Total() float64 {
	var sum float64
	for _, voice := range v {
		sum += voice.Weight
	}
	return sum
}

// Normalize scales the weights so they add up to volume. A silent voicing is
// returned unchanged.
func Normalize(v Voicing, volume float64) Voicing {
	return scale(v, v.Total(), volume)
}

// NormalizeGroups scales every group by the same factor so the weights of all
// groups together add up to volume.
func NormalizeGroups(groups []Voicing, volume float64) []Voicing {
	var sum float64
	for _, g := range groups {
		sum += g.Total()
	}
	out := make([]Voicing, len(groups))
	for i, g := range groups {
		out[i] = scale(g, sum, volume)
	}
	return out
}

func scale(v Voicing, total, volume float64) Voicing {
	out := make(Voicing, len(v))
	copy(out, v)
	if total == 0 {
		return out
	}
	k := volume / total
	for i := range out {
		out[i].Weight *= k
	}
	return out
}

// ShepardTone sounds pc in every given octave. The inner octaves are full
// strength, while the outer two fade against each other depending on how
// far pc sits above center, so a rising sequence of tones blends smoothly
// from the top octave into the bottom one.
func ShepardTone(pc pitch.Class, octaves []pitch.Octave, center pitch.Class, volume float64) Voicing {
	switch len(octaves) {
	case 0:
		return nil
	case 1:
		return Voicing{{Note: pitch.Note{Class: pc, Octave: octaves[0]}, Weight: volume}}
	}

	vlow := float64(pitch.StepsAbove(center, pc)) / 12
	vhigh := 1 - vlow

	v := make(Voicing, 0, len(octaves))
	v = append(v, Voice{pitch.Note{Class: pc, Octave: octaves[0]}, math.Sqrt(vlow)})
	for _, o := range octaves[1 : len(octaves)-1] {
		v = append(v, Voice{pitch.Note{Class: pc, Octave: o}, math.Sqrt2})
	}
	v = append(v, Voice{pitch.Note{Class: pc, Octave: octaves[len(octaves)-1]}, math.Sqrt(vhigh)})
	return Normalize(v, volume)
}

func spreadOf(t chord.Type, f chord.Factor) spread {
	switch f {
	case chord.Third:
		if t.Has(chord.Ninth) || t.Has(chord.Eleventh) {
			return spread{[]pitch.Octave{0}, 1.5}
		}
		return spread{[]pitch.Octave{0, 1}, 1.5}
	case chord.Fifth:
		return fifthSpread
	default:
		return upperSpread
	}
}

// Shepard voices each sounding factor of c, root first, as its own Shepard
// tone group around the chord's octave. The root is the loudest and widest.
// Upper factors sit in a single octave.
func Shepard(c chord.Chord) []Voicing {
	root := c.RootNote()
	groups := []Voicing{tone(root, 0, rootSpread)}
	for _, f := range chord.Factors {
		info := c.Type().Info(f)
		if !info.Present() {
			continue
		}
		groups = append(groups, tone(root, info.Semitones, spreadOf(c.Type(), f)))
	}
	return groups
}

func tone(root pitch.Note, semitones pitch.Interval, s spread) Voicing {
	note := root.Transpose(semitones)
	octaves := make([]pitch.Octave, len(s.octaves))
	for i, o := range s.octaves {
		octaves[i] = note.Octave + o
	}
	return ShepardTone(note.Class, octaves, pitch.Transpose(0, semitones), s.power)
}

// Simple voices every note of the chord at equal weight, starting at the root
// in the given octave.
func Simple(c chord.Chord, octave pitch.Octave) Voicing {
	root := pitch.Note{Class: c.Root(), Octave: octave}
	intervals := c.Type().Intervals()
	v := make(Voicing, len(intervals))
	for i, interval := range intervals {
		v[i] = Voice{Note: root.Transpose(interval), Weight: 1}
	}
	return v
}

// Flatten concatenates the groups into one voicing.
func Flatten(groups []Voicing) Voicing {
	var out Voicing
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
