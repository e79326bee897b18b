// Package wsmsg contains the message types exchanged by players in a jam.
package wsmsg

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type (
	MsgType   int
	NoteState int

	Envelope struct {
		// Message identifier
		ID uuid.UUID `json:"id"`
		// TextMsg | MIDIMsg | ConnectMsg | ChordMsg
		Typ MsgType `json:"type"`
		// Sending client identifier
		UserID uuid.UUID `json:"userId"`
		// Actual message data.
		Payload json.RawMessage `json:"payload"`
	}

	TextMsg struct {
		DisplayName string `json:"displayName"`
		Body        string `json:"body"`
	}

	MIDIMsg struct {
		State NoteState `json:"state"`
		// MIDI Note # with C4 = 60. Available values: (0-127)
		Number int `json:"number"`
		// MIDI Velocity (0-127)
		Velocity int `json:"velocity"`
	}

	ConnectMsg struct {
		UserID   uuid.UUID `json:"userId"`
		UserName string    `json:"userName"`
	}

	// ChordMsg shares a chord in its compact letter code, e.g. "Dmq".
	ChordMsg struct {
		Code string `json:"code"`
		// Display name, for clients that cannot decode Code.
		Name string `json:"name,omitempty"`
	}
)

const (
	TEXT MsgType = iota
	MIDI
	CONNECT
	CHORD
)

const (
	NOTE_OFF NoteState = iota
	NOTE_ON
)

var typeNames = map[MsgType]string{
	TEXT:    "text",
	MIDI:    "midi",
	CONNECT: "connect",
	CHORD:   "chord",
}

// NewEnvelope wraps payload in an envelope with a fresh ID.
func NewEnvelope(typ MsgType, userID uuid.UUID, payload any) (Envelope, error) {
	e := Envelope{
		ID:     uuid.New(),
		Typ:    typ,
		UserID: userID,
	}
	if err := e.SetPayload(payload); err != nil {
		return Envelope{}, err
	}
	return e, nil
}

func (e *Envelope) SetPayload(payload any) error {
	p, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	e.Payload = p
	return nil
}

func (e *Envelope) Unwrap(msg any) error {
	return json.Unmarshal(e.Payload, msg)
}

func (t MsgType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("MsgType(%d)", int(t))
}

func (t *MsgType) UnmarshalJSON(data []byte) error {
	var rawType string
	err := json.Unmarshal(data, &rawType)
	if err != nil {
		return err
	}

	for typ, name := range typeNames {
		if name == rawType {
			*t = typ
			return nil
		}
	}
	return fmt.Errorf("unknown type: %s", rawType)
}

func (t MsgType) MarshalJSON() ([]byte, error) {
	name, ok := typeNames[t]
	if !ok {
		return nil, fmt.Errorf("unknown MsgType value: %d", t)
	}
	return json.Marshal(name)
}
