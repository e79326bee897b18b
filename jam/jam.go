// Package jam shares chords with other players over a websocket jam session.
package jam

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rapidmidiex/chordpad/chord"
	"github.com/rapidmidiex/chordpad/chordcode"
	"github.com/rapidmidiex/chordpad/pitch"
	"github.com/rapidmidiex/chordpad/rtt"
	"github.com/rapidmidiex/chordpad/wsmsg"
)

var ErrNotChord = errors.New("jam: not a chord code")

type (
	// Session is a connection to one jam. Next must be called from a single
	// goroutine; the Send methods may be called from any.
	Session struct {
		conn *websocket.Conn
		ping *rtt.Tracker

		mu       sync.Mutex
		userID   uuid.UUID
		userName string
	}

	// Event is one message received from the jam. Only the field matching
	// Type is set.
	Event struct {
		ID       uuid.UUID
		Type     wsmsg.MsgType
		UserID   uuid.UUID
		FromSelf bool
		// Roundtrip time of our own messages echoed back, zero otherwise.
		RTT time.Duration

		Chord   chord.Chord
		Text    wsmsg.TextMsg
		MIDI    wsmsg.MIDIMsg
		Connect wsmsg.ConnectMsg
	}
)

// Dial joins the jam at url, e.g. "ws://localhost:8888/ws/jam/1234".
func Dial(ctx context.Context, url string) (*Session, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &Session{
		conn: conn,
		ping: rtt.NewTracker(),
	}, nil
}

// UserID is the identity the server assigned on connect, or uuid.Nil before
// the connect message arrives.
func (s *Session) UserID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

func (s *Session) UserName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userName
}

// Pings returns the recent roundtrip times of our own messages.
func (s *Session) Pings() []time.Duration {
	return s.ping.Pings()
}

func (s *Session) send(typ wsmsg.MsgType, payload any) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	envelope, err := wsmsg.NewEnvelope(typ, s.userID, payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal: %w", err)
	}
	// The echo can arrive before WriteJSON returns.
	s.ping.Sent(envelope.ID)
	if err := s.conn.WriteJSON(envelope); err != nil {
		s.ping.Forget(envelope.ID)
		return uuid.Nil, fmt.Errorf("writeJSON: %w", err)
	}
	return envelope.ID, nil
}

// SendChord shares c. Chords the letter code cannot express fail with
// ErrNotChord.
func (s *Session) SendChord(c chord.Chord) (uuid.UUID, error) {
	code, ok := chordcode.Encode(c)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrNotChord, c)
	}
	return s.send(wsmsg.CHORD, wsmsg.ChordMsg{Code: code, Name: c.Name(pitch.Flat)})
}

func (s *Session) SendText(body string) (uuid.UUID, error) {
	return s.send(wsmsg.TEXT, wsmsg.TextMsg{DisplayName: s.UserName(), Body: body})
}

func (s *Session) SendMIDI(msg wsmsg.MIDIMsg) (uuid.UUID, error) {
	return s.send(wsmsg.MIDI, msg)
}

// Next blocks until the next message arrives and decodes it.
func (s *Session) Next() (Event, error) {
	var message wsmsg.Envelope
	if err := s.conn.ReadJSON(&message); err != nil {
		if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
			return Event{}, fmt.Errorf("readJSON: unexpected close: %w", err)
		}
		return Event{}, fmt.Errorf("readJSON: %w", err)
	}

	ev := Event{
		ID:       message.ID,
		Type:     message.Typ,
		UserID:   message.UserID,
		FromSelf: message.UserID != uuid.Nil && message.UserID == s.UserID(),
	}
	if ping, ok := s.ping.Received(message.ID); ok {
		ev.RTT = ping
		ev.FromSelf = true
	}

	switch message.Typ {
	case wsmsg.CHORD:
		var chordMsg wsmsg.ChordMsg
		if err := message.Unwrap(&chordMsg); err != nil {
			return ev, fmt.Errorf("unmarshal ChordMsg: %w", err)
		}
		c, rest, ok := chordcode.Read(chordMsg.Code)
		if !ok || rest != "" {
			return ev, fmt.Errorf("%w: %q", ErrNotChord, chordMsg.Code)
		}
		ev.Chord = c

	case wsmsg.TEXT:
		if err := message.Unwrap(&ev.Text); err != nil {
			return ev, fmt.Errorf("unmarshal TextMsg: %w", err)
		}

	case wsmsg.MIDI:
		if err := message.Unwrap(&ev.MIDI); err != nil {
			return ev, fmt.Errorf("unmarshal MIDIMsg: %w", err)
		}

	case wsmsg.CONNECT:
		if err := message.Unwrap(&ev.Connect); err != nil {
			return ev, fmt.Errorf("unmarshal ConnectMsg: %w", err)
		}
		s.mu.Lock()
		s.userID, s.userName = ev.Connect.UserID, ev.Connect.UserName
		s.mu.Unlock()
	}
	return ev, nil
}

// Close says goodbye to the server and closes the connection.
func (s *Session) Close() error {
	s.mu.Lock()
	err := s.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second*10),
	)
	s.mu.Unlock()

	if cerr := s.conn.Close(); err == nil {
		err = cerr
	}
	return err
}
