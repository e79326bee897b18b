package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rapidmidiex/chordpad/layout"
	"github.com/rapidmidiex/chordpad/pitch"
)

// Config holds the settings read from the environment. Command line flags
// override them.
type Config struct {
	// Path to a .sf2 SoundFont. Without one the pad stays silent.
	SoundFont string
	// Websocket URL of a jam session to join, e.g. ws://localhost:8888/ws/jam/1234
	JamURL string

	Layout      layout.Kind
	Factors     int
	Accidentals pitch.Accidental
	Volume      float64

	// YAML file of extra progressions to suggest.
	Progressions string

	// File to write logs to. Empty disables logging.
	LogFile string
}

func Load() (*Config, error) {
	kind, ok := layout.ParseKind(getEnv("CHORDPAD_LAYOUT", "chromatic"))
	if !ok {
		return nil, fmt.Errorf("CHORDPAD_LAYOUT: unknown layout %q", os.Getenv("CHORDPAD_LAYOUT"))
	}

	factors, err := strconv.Atoi(getEnv("CHORDPAD_FACTORS", "4"))
	if err != nil {
		return nil, fmt.Errorf("CHORDPAD_FACTORS: %w", err)
	}
	if factors < 1 || factors > 5 {
		return nil, fmt.Errorf("CHORDPAD_FACTORS: %d is not between 1 and 5", factors)
	}

	volume, err := strconv.ParseFloat(getEnv("CHORDPAD_VOLUME", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("CHORDPAD_VOLUME: %w", err)
	}

	return &Config{
		SoundFont:    getEnv("CHORDPAD_SOUNDFONT", ""),
		JamURL:       getEnv("CHORDPAD_JAM_URL", ""),
		Layout:       kind,
		Factors:      factors,
		Accidentals:  pitch.ParseAccidental(getEnv("CHORDPAD_ACCIDENTALS", "flat")),
		Volume:       volume,
		Progressions: getEnv("CHORDPAD_PROGRESSIONS", ""),
		LogFile:      getEnv("CHORDPAD_LOG", ""),
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
