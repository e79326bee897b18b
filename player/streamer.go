package player

import (
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// Streamer holds rendered stereo audio and plays it back through beep.
type Streamer struct {
	pos   int
	left  []float32
	right []float32
}

var _ beep.StreamSeeker = (*Streamer)(nil)

func NewStreamer(clip time.Duration) *Streamer {
	bufLen := beep.SampleRate(SampleRate).N(clip)
	return &Streamer{
		left:  make([]float32, bufLen),
		right: make([]float32, bufLen),
	}
}

// Stream implements beep.Streamer. It reports false once drained.
func (s *Streamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.left) {
		return 0, false
	}
	left := make([]float32, len(samples))
	right := make([]float32, len(samples))

	n, _ = s.Read(left, right)
	for i := 0; i < n; i++ {
		samples[i][0] = float64(left[i])
		samples[i][1] = float64(right[i])
	}
	return n, true
}

// Len returns the total number of samples.
func (s *Streamer) Len() int {
	// left and right have the same length
	return len(s.left)
}

func (s *Streamer) Position() int {
	return s.pos
}

func (s *Streamer) Seek(p int) error {
	if p < 0 || p > len(s.left) {
		return fmt.Errorf("seek out of range: %d", p)
	}
	s.pos = p
	return nil
}

func (s *Streamer) Err() error {
	return nil
}

// Read copies samples from the current position into out, stopping early at
// the end of the buffers.
func (s *Streamer) Read(outLeft, outRight []float32) (int, error) {
	n := copy(outLeft, s.left[s.pos:])
	copy(outRight, s.right[s.pos:s.pos+n])
	s.pos += n
	if n < len(outLeft) {
		return n, fmt.Errorf("read past end: %d", s.pos)
	}
	return n, nil
}

var (
	speakerOnce sync.Once
	speakerErr  error
)

// Speak plays the streamers one after another on the default audio device.
// The device is opened on first use, with a 20ms buffer.
func Speak(streamers ...beep.Streamer) error {
	speakerOnce.Do(func() {
		sr := beep.SampleRate(SampleRate)
		speakerErr = speaker.Init(sr, sr.N(20*time.Millisecond))
	})
	if speakerErr != nil {
		return fmt.Errorf("init speaker: %w", speakerErr)
	}
	speaker.Clear()
	speaker.Play(beep.Seq(streamers...))
	return nil
}

// SpeakAndWait is Speak, returning once playback has finished.
func SpeakAndWait(streamers ...beep.Streamer) error {
	done := make(chan struct{})
	if err := Speak(append(streamers, beep.Callback(func() { close(done) }))...); err != nil {
		return err
	}
	<-done
	return nil
}
