// Package player sounds chord voicings through a SoundFont synthesizer.
package player

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rapidmidiex/chordpad/voicing"
	"github.com/sinshu/go-meltysynth/meltysynth"
	"gitlab.com/gomidi/midi/v2"
)

const SampleRate = 44100

// Player owns a synthesizer. It is safe for concurrent use: the speaker
// reads rendered audio while the UI sends new notes.
type Player struct {
	mu       sync.Mutex
	synth    *meltysynth.Synthesizer
	channel  uint8
	sounding map[uint8]struct{}
}

// New loads a SoundFont (.sf2) and builds a synthesizer for it.
func New(soundFont io.Reader) (*Player, error) {
	sf, err := meltysynth.NewSoundFont(soundFont)
	if err != nil {
		return nil, fmt.Errorf("load soundfont: %w", err)
	}

	settings := meltysynth.NewSynthesizerSettings(SampleRate)
	synth, err := meltysynth.NewSynthesizer(sf, settings)
	if err != nil {
		return nil, fmt.Errorf("create synthesizer: %w", err)
	}

	return &Player{
		synth:    synth,
		sounding: make(map[uint8]struct{}),
	}, nil
}

// Open is New for a SoundFont on disk.
func Open(path string) (*Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return New(f)
}

// Send forwards note on and note off messages to the synthesizer. Other
// messages are ignored.
func (p *Player) Send(msgs ...midi.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, msg := range msgs {
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			p.synth.NoteOn(int32(ch), int32(key), int32(vel))
			p.sounding[key] = struct{}{}
		case msg.GetNoteEnd(&ch, &key):
			p.synth.NoteOff(int32(ch), int32(key))
			delete(p.sounding, key)
		}
	}
}

// Release stops every note the player started.
func (p *Player) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for key := range p.sounding {
		p.synth.NoteOff(int32(p.channel), int32(key))
		delete(p.sounding, key)
	}
}

// Render synthesizes the current notes into the streamer's buffers.
func (p *Player) Render(s *Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.synth.Render(s.left, s.right)
	s.pos = 0
}

// Voice replaces whatever is sounding with the voicing groups and renders a
// clip of the given length.
func (p *Player) Voice(groups []voicing.Voicing, clip time.Duration) *Streamer {
	p.Release()
	p.Send(Messages(groups, p.channel)...)

	s := NewStreamer(clip)
	p.Render(s)
	return s
}
