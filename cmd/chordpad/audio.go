package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rapidmidiex/chordpad/player"
	"github.com/rapidmidiex/chordpad/voicing"
	"github.com/spf13/cobra"
)

var (
	bpm   float64
	seconds float64
)

func init() {
	exportCmd.Flags().Float64Var(&bpm, "bpm", 90, "tempo of the exported file")
	playCmd.Flags().Float64Var(&seconds, "seconds", 1.5, "how long each chord sounds")

	rootCmd.AddCommand(exportCmd, playCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <code> <file.mid>",
	Short: "Writes the chords of a code to a standard MIDI file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		chords, err := decode(args[0])
		if err != nil {
			return err
		}

		f, err := os.Create(args[1])
		if err != nil {
			return err
		}
		if err := player.WriteSMF(f, chords, cfg.Volume, bpm); err != nil {
			f.Close()
			return fmt.Errorf("export %s: %w", args[1], err)
		}
		return f.Close()
	},
}

var playCmd = &cobra.Command{
	Use:   "play <code>",
	Short: "Plays the chords of a code through a SoundFont",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.SoundFont == "" {
			return errors.New("play needs a SoundFont: set --soundfont or CHORDPAD_SOUNDFONT")
		}
		chords, err := decode(args[0])
		if err != nil {
			return err
		}

		p, err := player.Open(cfg.SoundFont)
		if err != nil {
			return err
		}
		clip := time.Duration(seconds * float64(time.Second))
		for _, c := range chords {
			fmt.Fprintln(cmd.OutOrStdout(), c.Name(cfg.Accidentals))
			s := p.Voice(voicing.NormalizeGroups(voicing.Shepard(c), cfg.Volume), clip)
			if err := player.SpeakAndWait(s); err != nil {
				return err
			}
		}
		p.Release()
		return nil
	},
}
