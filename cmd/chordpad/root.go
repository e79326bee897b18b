package main

import (
	"fmt"

	"github.com/rapidmidiex/chordpad"
	"github.com/rapidmidiex/chordpad/config"
	"github.com/rapidmidiex/chordpad/layout"
	"github.com/rapidmidiex/chordpad/pitch"
	"github.com/spf13/cobra"
)

var flags struct {
	soundFont    string
	jamURL       string
	layout       string
	factors      int
	accidentals  string
	volume       float64
	progressions string
	logFile      string
}

var rootCmd = &cobra.Command{
	Use:   "chordpad",
	Short: "A chord pad for the terminal",
	Long: `chordpad builds chords one key at a time on a grid of notes, plays them
through a SoundFont and shares them with a jam session.

Settings come from CHORDPAD_* environment variables (or a .env file) and
can be overridden with flags.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return chordpad.Run(cfg)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.soundFont, "soundfont", "", "path to a .sf2 SoundFont")
	pf.StringVar(&flags.layout, "layout", "", "pad layout: chromatic or fifths")
	pf.IntVar(&flags.factors, "factors", 0, "chord factors shown on the pad, 1 to 5")
	pf.StringVar(&flags.accidentals, "accidentals", "", "spell notes with flat or sharp")
	pf.Float64Var(&flags.volume, "volume", 0, "playback volume")
	pf.StringVar(&flags.progressions, "progressions", "", "YAML file of extra progressions to suggest")

	rootCmd.Flags().StringVar(&flags.jamURL, "jam", "", "websocket URL of a jam to join")
	rootCmd.Flags().StringVar(&flags.logFile, "log", "", "file to write logs to")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// loadConfig reads the environment, then applies any flags that were set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if changed("soundfont") {
		cfg.SoundFont = flags.soundFont
	}
	if changed("jam") {
		cfg.JamURL = flags.jamURL
	}
	if changed("log") {
		cfg.LogFile = flags.logFile
	}
	if changed("layout") {
		kind, ok := layout.ParseKind(flags.layout)
		if !ok {
			return nil, fmt.Errorf("--layout: unknown layout %q", flags.layout)
		}
		cfg.Layout = kind
	}
	if changed("factors") {
		if flags.factors < 1 || flags.factors > 5 {
			return nil, fmt.Errorf("--factors: %d is not between 1 and 5", flags.factors)
		}
		cfg.Factors = flags.factors
	}
	if changed("accidentals") {
		cfg.Accidentals = pitch.ParseAccidental(flags.accidentals)
	}
	if changed("volume") {
		cfg.Volume = flags.volume
	}
	if changed("progressions") {
		cfg.Progressions = flags.progressions
	}
	return cfg, nil
}
