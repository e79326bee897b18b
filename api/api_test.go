package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rapidmidiex/chordpad/api"
	"github.com/rapidmidiex/chordpad/pitch"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestChords(t *testing.T) {
	s := api.NewServer(nil, pitch.Flat)

	t.Run("decodes a chord code", func(t *testing.T) {
		rec := get(t, s, "/chords/CAm?volume=0.5")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		chords := decodeBody[[]api.Chord](t, rec)
		require.Len(t, chords, 2)
		require.Equal(t, "Am", chords[1].Name)
		require.Equal(t, []string{"A", "C", "E"}, chords[1].Pitches)
		require.Equal(t, []string{"C4", "E4", "G4"}, chords[0].Notes)

		var total float64
		for _, group := range chords[0].Voicing {
			for _, v := range group {
				total += v.Weight
			}
		}
		require.InDelta(t, 0.5, total, 1e-9)
	})

	t.Run("rejects a bad code", func(t *testing.T) {
		rec := get(t, s, "/chords/C!")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, decodeBody[map[string]string](t, rec)["error"], "cannot read chord code")
	})

	t.Run("writes a MIDI file", func(t *testing.T) {
		rec := get(t, s, "/chords/CFG/midi?bpm=120")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "audio/midi", rec.Header().Get("Content-Type"))

		file, err := smf.ReadFrom(rec.Body)
		require.NoError(t, err)
		require.NotEmpty(t, file.Tracks)
	})
}

func TestKeys(t *testing.T) {
	s := api.NewServer(nil, pitch.Flat)

	t.Run("lists the chords of a key", func(t *testing.T) {
		rec := get(t, s, "/keys/"+url.PathEscape("C major"))
		require.Equal(t, http.StatusOK, rec.Code)

		k := decodeBody[api.Key](t, rec)
		require.Equal(t, "C major", k.Name)
		require.Len(t, k.Notes, 7)
		require.Equal(t, api.Numeral{Numeral: "ii", Chord: "Dm"}, k.Numerals[1])
	})

	t.Run("names chords from a code", func(t *testing.T) {
		rec := get(t, s, "/keys/Am?code=EmF")
		k := decodeBody[api.Key](t, rec)
		require.Len(t, k.Numerals, 2)
		require.Equal(t, "v", k.Numerals[0].Numeral)
	})

	t.Run("suggests progressions", func(t *testing.T) {
		rec := get(t, s, "/keys/G/progressions")
		require.Equal(t, http.StatusOK, rec.Code)
		ps := decodeBody[[]api.Progression](t, rec)
		require.Len(t, ps, 5)
		require.Equal(t, []string{"G", "Em", "C", "D"}, ps[1].Chords)
	})

	t.Run("reports unknown keys", func(t *testing.T) {
		rec := get(t, s, "/keys/H/progressions")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestLayouts(t *testing.T) {
	s := api.NewServer(nil, pitch.Sharp)

	rec := get(t, s, "/layouts/fifths")
	require.Equal(t, http.StatusOK, rec.Code)
	l := decodeBody[api.Layout](t, rec)
	require.Equal(t, "fifths", l.Kind)
	require.Len(t, l.Cells, 60)

	rec = get(t, s, "/layouts/hexagons")
	require.Equal(t, http.StatusNotFound, rec.Code)

	t.Run("accepts one to five factors", func(t *testing.T) {
		rec := get(t, s, "/layouts/chromatic?factors=1")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 2, decodeBody[api.Layout](t, rec).Cols)

		rec = get(t, s, "/layouts/fifths?factors=5")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 7, decodeBody[api.Layout](t, rec).Cols)
	})

	t.Run("rejects other factor counts", func(t *testing.T) {
		for _, factors := range []string{"0", "6", "-1", "1e7", "1000000000000000000", "four"} {
			rec := get(t, s, "/layouts/fifths?factors="+factors)
			require.Equal(t, http.StatusBadRequest, rec.Code, factors)
		}
	})
}

func TestHandler(t *testing.T) {
	h := api.NewServer(nil, pitch.Flat).Handler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/chords/C", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
