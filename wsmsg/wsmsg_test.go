package wsmsg_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/rapidmidiex/chordpad/wsmsg"
	"github.com/stretchr/testify/require"
)

func TestMsgTypeMarshaling(t *testing.T) {
	t.Run("unmarshals type from JSON", func(t *testing.T) {
		message := []byte(`{
    "id": "7b0f33ba-8a50-446d-aaa4-4de4aa96fc6c",
    "type": "chord",
    "payload": {
        "code": "Dmq",
        "name": "Dm♭79"
    },
    "userId": "2e6a2bb4-19ad-4a69-8f8f-2b5b0f6b4b4a"
}`)

		var got wsmsg.Envelope
		err := json.Unmarshal(message, &got)
		require.NoError(t, err)
		require.Equal(t, wsmsg.CHORD, got.Typ)

		var chordMsg wsmsg.ChordMsg
		require.NoError(t, got.Unwrap(&chordMsg))
		require.Equal(t, "Dmq", chordMsg.Code)
	})

	t.Run("marshals type to JSON", func(t *testing.T) {
		message := wsmsg.Envelope{
			Typ: wsmsg.MIDI,
		}

		got, err := json.Marshal(message)
		require.NoError(t, err)
		want := `"type":"midi"`
		require.Containsf(t, string(got), want, "JSON does not contain [ %s ]\n%s", want, string(got))
	})

	t.Run("rejects unknown types", func(t *testing.T) {
		var got wsmsg.Envelope
		err := json.Unmarshal([]byte(`{"type": "video"}`), &got)
		require.Error(t, err)

		_, err = json.Marshal(wsmsg.Envelope{Typ: wsmsg.MsgType(42)})
		require.Error(t, err)
	})
}

func TestNewEnvelope(t *testing.T) {
	user := uuid.New()
	e, err := wsmsg.NewEnvelope(wsmsg.TEXT, user, wsmsg.TextMsg{DisplayName: "ana", Body: "hi"})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, e.ID)
	require.Equal(t, user, e.UserID)
	require.JSONEq(t, `{"displayName": "ana", "body": "hi"}`, string(e.Payload))
}
