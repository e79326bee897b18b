package player

import (
	"io"
	"math"

	"github.com/rapidmidiex/chordpad/chord"
	"github.com/rapidmidiex/chordpad/voicing"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Velocity maps a voice weight in [0, 1] to a MIDI velocity. Loudness grows
// with the square of velocity, so the weight is square rooted first.
func Velocity(weight float64) uint8 {
	if weight <= 0 {
		return 0
	}
	v := math.Round(127 * math.Sqrt(weight))
	if v > 127 {
		v = 127
	}
	return uint8(v)
}

// Messages converts voicing groups to note on messages. Silent voices and
// notes outside the MIDI range are skipped, and a note voiced twice keeps
// its loudest velocity.
func Messages(groups []voicing.Voicing, channel uint8) []midi.Message {
	var (
		order []uint8
		vel   = map[uint8]uint8{}
	)
	for _, v := range voicing.Flatten(groups) {
		if !v.Note.InRange() {
			continue
		}
		velocity := Velocity(v.Weight)
		if velocity == 0 {
			continue
		}
		key := uint8(v.Note.MIDI())
		prev, seen := vel[key]
		if !seen {
			order = append(order, key)
		}
		if velocity > prev {
			vel[key] = velocity
		}
	}

	msgs := make([]midi.Message, len(order))
	for i, key := range order {
		msgs[i] = midi.NoteOn(channel, key, vel[key])
	}
	return msgs
}

// WriteSMF writes the chords as a single track Standard MIDI File, one bar
// of 4/4 each, Shepard voiced at the given volume.
func WriteSMF(w io.Writer, chords []chord.Chord, volume float64, bpm float64) error {
	ticks := smf.MetricTicks(480)
	bar := 4 * ticks.Ticks4th()

	var tr smf.Track
	tr.Add(0, smf.MetaMeter(4, 4))
	tr.Add(0, smf.MetaTempo(bpm))

	var rest uint32
	for _, c := range chords {
		msgs := Messages(voicing.NormalizeGroups(voicing.Shepard(c), volume), 0)
		if len(msgs) == 0 {
			rest += bar
			continue
		}
		for i, msg := range msgs {
			delta := uint32(0)
			if i == 0 {
				delta, rest = rest, 0
			}
			tr.Add(delta, msg)
		}
		for i, msg := range msgs {
			var ch, key, vel uint8
			msg.GetNoteOn(&ch, &key, &vel)
			delta := uint32(0)
			if i == 0 {
				delta = bar
			}
			tr.Add(delta, midi.NoteOff(ch, key))
		}
	}
	tr.Close(rest)

	s := smf.New()
	s.TimeFormat = ticks
	if err := s.Add(tr); err != nil {
		return err
	}
	_, err := s.WriteTo(w)
	return err
}
