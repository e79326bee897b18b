// Package chord models chord factors, chord types and chords built on a root.
package chord

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rapidmidiex/chordpad/pitch"
)

type (
	// Factor is a chord slot above the root, ordered low to high.
	Factor int

	// Quality is the size of the interval occupying a factor.
	Quality int

	// Info describes one legal quality for a factor.
	Info struct {
		Factor    Factor
		Quality   Quality
		Semitones pitch.Interval
		Symbol    string
	}
)

const (
	Third Factor = iota
	Fifth
	Seventh
	Ninth
	Eleventh
	NumFactors
)

const (
	None Quality = iota
	Minor
	Major
	Diminished
	Perfect
	Augmented
)

var (
	Factors = []Factor{Third, Fifth, Seventh, Ninth, Eleventh}

	// Qualities is also the tie-break order used when a factor has to be
	// filled and no choice fits the key.
	Qualities = []Quality{Minor, Major, Diminished, Perfect, Augmented}

	factorNames  = []string{"third", "fifth", "seventh", "ninth", "eleventh"}
	qualityNames = []string{"none", "minor", "major", "diminished", "perfect", "augmented"}
)

// Semitone offsets are measured from the root and not reduced mod 12.
var taxonomy = [NumFactors][]Info{
	Third: {
		{Quality: None, Symbol: "sus"},
		{Quality: Minor, Semitones: 3, Symbol: "m"},
		{Quality: Major, Semitones: 4, Symbol: ""},
	},
	Fifth: {
		{Quality: None, Symbol: "no5"},
		{Quality: Diminished, Semitones: 6, Symbol: "♭5"},
		{Quality: Perfect, Semitones: 7, Symbol: ""},
		{Quality: Augmented, Semitones: 8, Symbol: "♯5"},
	},
	Seventh: {
		{Quality: None, Symbol: ""},
		{Quality: Diminished, Semitones: 9, Symbol: "𝄫7"},
		{Quality: Minor, Semitones: 10, Symbol: "♭7"},
		{Quality: Major, Semitones: 11, Symbol: "7"},
	},
	Ninth: {
		{Quality: None, Symbol: ""},
		{Quality: Minor, Semitones: 13, Symbol: "♭9"},
		{Quality: Major, Semitones: 14, Symbol: "9"},
	},
	Eleventh: {
		{Quality: None, Symbol: ""},
		{Quality: Perfect, Semitones: 17, Symbol: "11"},
	},
}

var bySemitones = map[pitch.Interval]Info{}

func init() {
	for f := range taxonomy {
		for i := range taxonomy[f] {
			taxonomy[f][i].Factor = Factor(f)
			if info := taxonomy[f][i]; info.Present() {
				bySemitones[info.Semitones] = info
			}
		}
	}
}

// Present reports whether the interval sounds in the chord.
func (i Info) Present() bool { return i.Quality != None }

// Lookup returns the taxonomy entry for q at factor f. Qualities that are not
// legal for the factor are reported as missing.
func Lookup(f Factor, q Quality) (Info, bool) {
	if !f.Valid() {
		return Info{}, false
	}
	for _, info := range taxonomy[f] {
		if info.Quality == q {
			return info, true
		}
	}
	return Info{}, false
}

func noneInfo(f Factor) Info { return taxonomy[f][0] }

// BySemitones finds the factor and quality defined at exactly s semitones.
func BySemitones(s pitch.Interval) (Info, bool) {
	info, ok := bySemitones[s]
	return info, ok
}

// Identify classifies an interval above the root as a quality of f.
func Identify(semitones pitch.Interval, f Factor) (Quality, bool) {
	info, ok := bySemitones[semitones]
	if !ok || info.Factor != f {
		return None, false
	}
	return info.Quality, true
}

// TertianIntervals lists every semitone offset defined by the taxonomy, ascending.
func TertianIntervals() []pitch.Interval {
	out := make([]pitch.Interval, 0, len(bySemitones))
	for s := range bySemitones {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsLegalFactor reports whether other can sound as factor f of a chord on root,
// in either octave.
func IsLegalFactor(root, other pitch.Class, f Factor) bool {
	interval := pitch.StepsAbove(root, other)
	if info, ok := bySemitones[interval]; ok && info.Factor == f {
		return true
	}
	info, ok := bySemitones[interval+12]
	return ok && info.Factor == f
}

func (f Factor) Valid() bool { return f >= Third && f < NumFactors }

func (f Factor) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Factor(%d)", int(f))
	}
	return factorNames[f]
}

func ParseFactor(s string) (Factor, bool) {
	for i, name := range factorNames {
		if strings.EqualFold(name, s) {
			return Factor(i), true
		}
	}
	return 0, false
}

func (q Quality) String() string {
	if q < None || int(q) >= len(qualityNames) {
		return fmt.Sprintf("Quality(%d)", int(q))
	}
	return qualityNames[q]
}

func ParseQuality(s string) (Quality, bool) {
	for i, name := range qualityNames {
		if strings.EqualFold(name, s) {
			return Quality(i), true
		}
	}
	return None, false
}
