package chord

import "github.com/rapidmidiex/chordpad/pitch"

// reachability tracks which semitone offsets can still join a chord whose
// factors have been partly chosen. Two factors may only sit a tertian
// interval (or nothing) apart.
type reachability struct {
	valid     map[pitch.Interval]bool
	reachable map[pitch.Interval]bool
}

func newReachability() *reachability {
	r := &reachability{
		valid:     map[pitch.Interval]bool{},
		reachable: map[pitch.Interval]bool{},
	}
	for _, s := range TertianIntervals() {
		r.valid[s] = true
		r.reachable[s] = true
	}
	return r
}

func (r *reachability) narrow(chosen pitch.Interval) {
	for s := range r.reachable {
		d := chosen - s
		if d != 0 && !r.valid[d] && !r.valid[-d] {
			delete(r.reachable, s)
		}
	}
}

// TertianAltered applies the required factor edits and rebuilds the rest of
// the chord around them, changing as little as possible:
//
//   - factors up to the original top factor keep their quality while it is
//     still consistent with the edits, and are replaced otherwise;
//   - empty factors below the highest edited factor are filled so the stack
//     stays contiguous;
//   - factors above both are left out.
//
// Replacement qualities prefer pitches contained in scale (which may be nil),
// falling back to the first consistent quality in Qualities order.
func (c Chord) TertianAltered(required Parts, scale Scale) Chord {
	r := newReachability()
	chosen := Parts{}
	choose := func(f Factor, q Quality) {
		chosen[f] = q
		if info, ok := Lookup(f, q); ok && info.Present() {
			r.narrow(info.Semitones)
		}
	}

	for _, f := range Factors {
		if q, ok := required[f]; ok {
			choose(f, q)
		}
	}

	highestFactor, highestNew := -1, -1
	for _, f := range Factors {
		if c.typ.Has(f) {
			highestFactor = int(f)
		}
		if q, ok := required[f]; ok && q != None {
			highestNew = int(f)
		}
	}

	for _, f := range Factors {
		if _, ok := chosen[f]; ok {
			continue
		}

		switch {
		case int(f) <= highestFactor:
			current := c.typ.Info(f)
			if !current.Present() {
				continue
			}
			if r.reachable[current.Semitones] {
				choose(f, current.Quality)
			} else {
				choose(f, c.candidate(f, r, scale))
			}
		case int(f) < highestNew:
			choose(f, c.candidate(f, r, scale))
		}
	}

	return New(c.root, NewType(chosen), WithVoicing(c.voicing))
}

// candidate picks a quality for f that is still reachable, preferring one
// whose pitch lies in scale. None is returned if nothing fits.
func (c Chord) candidate(f Factor, r *reachability, scale Scale) Quality {
	first := None
	for _, q := range Qualities {
		info, ok := Lookup(f, q)
		if !ok || !r.reachable[info.Semitones] {
			continue
		}
		if first == None {
			first = q
		}
		if scale != nil && scale.Contains(pitch.Transpose(c.root, info.Semitones)) {
			return q
		}
	}
	return first
}
