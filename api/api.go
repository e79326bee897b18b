// Package api answers chord questions over HTTP with JSON, for browser
// clients of a jam.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rapidmidiex/chordpad/chord"
	"github.com/rapidmidiex/chordpad/chordcode"
	"github.com/rapidmidiex/chordpad/key"
	"github.com/rapidmidiex/chordpad/layout"
	"github.com/rapidmidiex/chordpad/pitch"
	"github.com/rapidmidiex/chordpad/player"
	"github.com/rapidmidiex/chordpad/suggest"
	"github.com/rapidmidiex/chordpad/voicing"
	"github.com/rs/cors"
)

type (
	Voice struct {
		Note   string  `json:"note"`
		MIDI   int     `json:"midi"`
		Weight float64 `json:"weight"`
	}

	Chord struct {
		Name    string    `json:"name"`
		Code    string    `json:"code,omitempty"`
		Pitches []string  `json:"pitches"`
		Notes   []string  `json:"notes"`
		Voicing [][]Voice `json:"voicing"`
	}

	Numeral struct {
		Numeral string `json:"numeral"`
		Chord   string `json:"chord"`
	}

	Key struct {
		Name     string    `json:"name"`
		Notes    []string  `json:"notes"`
		Numerals []Numeral `json:"numerals"`
	}

	Progression struct {
		Name   string   `json:"name"`
		Chords []string `json:"chords"`
		Code   string   `json:"code,omitempty"`
	}

	Cell struct {
		Col    int     `json:"col"`
		Row    float64 `json:"row"`
		Note   string  `json:"note"`
		IsRoot bool    `json:"isRoot"`
	}

	Layout struct {
		Kind  string  `json:"kind"`
		Rows  float64 `json:"rows"`
		Cols  int     `json:"cols"`
		Cells []Cell  `json:"cells"`
	}

	errorBody struct {
		Error string `json:"error"`
	}

	Server struct {
		router  *mux.Router
		library suggest.Library
		acc     pitch.Accidental
		log     *log.Logger
	}
)

var errBadCode = errors.New("cannot read chord code")

// NewServer routes the chord API. A nil library serves the built in
// progressions.
func NewServer(lib suggest.Library, acc pitch.Accidental) *Server {
	if lib == nil {
		lib = suggest.DefaultLibrary()
	}
	s := &Server{
		router:  mux.NewRouter().StrictSlash(true),
		library: lib,
		acc:     acc,
		log:     log.Default(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/chords/{code}", s.handleChords).Methods(http.MethodGet)
	s.router.HandleFunc("/chords/{code}/midi", s.handleMIDI).Methods(http.MethodGet)
	s.router.HandleFunc("/keys/{key}", s.handleKey).Methods(http.MethodGet)
	s.router.HandleFunc("/keys/{key}/progressions", s.handleProgressions).Methods(http.MethodGet)
	s.router.HandleFunc("/layouts/{kind}", s.handleLayout).Methods(http.MethodGet)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler wraps the server with CORS headers for browser clients.
func (s *Server) Handler() http.Handler {
	return cors.Default().Handler(s)
}

func (s *Server) handleChords(w http.ResponseWriter, r *http.Request) {
	chords, err := decode(mux.Vars(r)["code"])
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}
	volume, err := floatParam(r, "volume", 1)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	out := make([]Chord, len(chords))
	for i, c := range chords {
		out[i] = s.chord(c, volume)
	}
	s.respond(w, out)
}

func (s *Server) handleMIDI(w http.ResponseWriter, r *http.Request) {
	chords, err := decode(mux.Vars(r)["code"])
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}
	bpm, err := floatParam(r, "bpm", 90)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	var buf bytes.Buffer
	if err := player.WriteSMF(&buf, chords, 1, bpm); err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Printf("api: write midi: %v", err)
	}
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	k, ok := key.Parse(mux.Vars(r)["key"])
	if !ok {
		s.respondError(w, http.StatusNotFound, fmt.Errorf("unknown key %q", mux.Vars(r)["key"]))
		return
	}

	out := Key{Name: k.Name()}
	for _, pc := range k.Notes() {
		out.Notes = append(out.Notes, k.NoteName(pc))
	}

	// Without a code, the chords on each degree of the key.
	var chords []chord.Chord
	if code := r.URL.Query().Get("code"); code != "" {
		var err error
		if chords, err = decode(code); err != nil {
			s.respondError(w, http.StatusBadRequest, err)
			return
		}
	} else {
		for degree := 1; degree <= len(k.Notes()); degree++ {
			chords = append(chords, k.NaturalChord(degree))
		}
	}
	for _, c := range chords {
		out.Numerals = append(out.Numerals, Numeral{
			Numeral: k.ChordNumeral(c),
			Chord:   pitch.Pretty(c.Name(k.Accidentals())),
		})
	}
	s.respond(w, out)
}

func (s *Server) handleProgressions(w http.ResponseWriter, r *http.Request) {
	k, ok := key.Parse(mux.Vars(r)["key"])
	if !ok {
		s.respondError(w, http.StatusNotFound, fmt.Errorf("unknown key %q", mux.Vars(r)["key"]))
		return
	}

	out := make([]Progression, 0)
	for _, p := range s.library.For(k.Type()) {
		chords := p.Realize(k)
		names := make([]string, len(chords))
		for i, c := range chords {
			names[i] = pitch.Pretty(c.Name(k.Accidentals()))
		}
		code, _ := chordcode.EncodeAll(chords)
		out = append(out, Progression{Name: p.Name, Chords: names, Code: code})
	}
	s.respond(w, out)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	kind, ok := layout.ParseKind(mux.Vars(r)["kind"])
	if !ok {
		s.respondError(w, http.StatusNotFound, fmt.Errorf("unknown layout %q", mux.Vars(r)["kind"]))
		return
	}
	factors, err := intParam(r, "factors", 4)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}
	if factors < 1 || factors > len(chord.Factors) {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("factors: %d is not between 1 and %d", factors, len(chord.Factors)))
		return
	}
	l, err := layout.NewKind(kind, factors, 0)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}

	out := Layout{Kind: kind.String(), Rows: l.Rows(), Cols: l.Cols()}
	for _, c := range l.Cells() {
		out.Cells = append(out.Cells, Cell{
			Col:    c.Col,
			Row:    c.Row,
			Note:   pitch.Name(c.Class, s.acc),
			IsRoot: c.IsRoot,
		})
	}
	s.respond(w, out)
}

func (s *Server) chord(c chord.Chord, volume float64) Chord {
	out := Chord{Name: pitch.Pretty(c.Name(s.acc))}
	out.Code, _ = chordcode.Encode(c)
	for _, pc := range c.Pitches() {
		out.Pitches = append(out.Pitches, pitch.Name(pc, s.acc))
	}
	for _, n := range c.Notes() {
		out.Notes = append(out.Notes, n.String())
	}
	for _, group := range voicing.NormalizeGroups(voicing.Shepard(c), volume) {
		voices := make([]Voice, len(group))
		for i, v := range group {
			voices[i] = Voice{Note: v.Note.String(), MIDI: v.Note.MIDI(), Weight: v.Weight}
		}
		out.Voicing = append(out.Voicing, voices)
	}
	return out
}

func (s *Server) respond(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Printf("api: encode response: %v", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorBody{Error: err.Error()}); err != nil {
		s.log.Printf("api: encode error: %v", err)
	}
}

func decode(code string) ([]chord.Chord, error) {
	chords, rest := chordcode.ReadAll(code)
	if rest != "" {
		return nil, fmt.Errorf("%w: %q", errBadCode, rest)
	}
	return chords, nil
}

func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

func floatParam(r *http.Request, name string, def float64) (float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}
