// Package rtt contains tools for calculating stats on message roundtrip times.
package rtt

import (
	"math"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type (
	CalcMsg struct {
		Latest time.Duration
		Avg    time.Duration
		Min    time.Duration
		Max    time.Duration
	}

	// Tracker matches echoed messages to the time they were sent.
	Tracker struct {
		mu    sync.Mutex
		sent  map[uuid.UUID]time.Time
		pings []time.Duration
		now   func() time.Time
	}
)

// Keep only the most recent pings.
const window = 50

func NewTracker() *Tracker {
	return &Tracker{
		sent: make(map[uuid.UUID]time.Time),
		now:  time.Now,
	}
}

// Sent records that message id left at the current time. Only the most
// recent unechoed messages are remembered.
func (t *Tracker) Sent(id uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sent[id] = t.now()

	if len(t.sent) > window {
		var oldest uuid.UUID
		var oldestAt time.Time
		for other, at := range t.sent {
			if oldestAt.IsZero() || at.Before(oldestAt) {
				oldest, oldestAt = other, at
			}
		}
		delete(t.sent, oldest)
	}
}

// Forget drops message id, for messages that never left.
func (t *Tracker) Forget(id uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sent, id)
}

// Pending is the number of sent messages still waiting for their echo.
func (t *Tracker) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sent)
}

// Received returns the roundtrip time of message id. It reports false for
// messages this tracker never saw leave.
func (t *Tracker) Received(id uuid.UUID) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sentAt, ok := t.sent[id]
	if !ok {
		return 0, false
	}
	delete(t.sent, id)

	ping := t.now().Sub(sentAt)
	t.pings = append(t.pings, ping)
	if len(t.pings) > window {
		t.pings = t.pings[len(t.pings)-window:]
	}
	return ping, true
}

// Pings returns a copy of the recent roundtrip times, oldest first.
func (t *Tracker) Pings() []time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]time.Duration(nil), t.pings...)
}

// CalcStats summarizes the latest ping against the previous ones.
func CalcStats(ping time.Duration, prev []time.Duration) tea.Cmd {
	roundedAvg := math.Round(float64(Avg(prev)/time.Millisecond)) * float64(time.Millisecond)
	return func() tea.Msg {
		return CalcMsg{
			Latest: ping,
			Avg:    time.Duration(roundedAvg),
			Max:    Max(prev),
			Min:    Min(prev),
		}
	}
}

func Min(times []time.Duration) time.Duration {
	if len(times) == 0 {
		return 0
	}
	min := times[0]
	for _, t := range times[1:] {
		if t < min {
			min = t
		}
	}
	return min
}

func Max(times []time.Duration) time.Duration {
	if len(times) == 0 {
		return 0
	}
	max := times[0]
	for _, t := range times[1:] {
		if t > max {
			max = t
		}
	}
	return max
}

func Avg(times []time.Duration) time.Duration {
	if len(times) == 0 {
		return 0
	}
	sum := time.Duration(0)
	for _, t := range times {
		sum = sum + t
	}
	return sum / time.Duration(len(times))
}
