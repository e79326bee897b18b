package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/rapidmidiex/chordpad/chord"
	"github.com/rapidmidiex/chordpad/chordcode"
	"github.com/rapidmidiex/chordpad/key"
	"github.com/rapidmidiex/chordpad/layout"
	"github.com/rapidmidiex/chordpad/pitch"
	"github.com/rapidmidiex/chordpad/suggest"
	"github.com/rapidmidiex/chordpad/voicing"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(decodeCmd, voiceCmd, numeralsCmd, suggestCmd, layoutCmd)
}

var decodeCmd = &cobra.Command{
	Use:   "decode <code>",
	Short: "Prints the chords in a chord code",
	Long:  `Prints the name, pitch classes and notes of each chord in a code such as "CAmFG".`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		chords, err := decode(args[0])
		if err != nil {
			return err
		}
		for _, c := range chords {
			code, _ := chordcode.Encode(c)
			fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-6s %-20s %s\n",
				pitch.Pretty(c.Name(cfg.Accidentals)),
				code,
				names(c.Pitches(), cfg.Accidentals),
				notes(c.Notes()),
			)
		}
		return nil
	},
}

var voiceCmd = &cobra.Command{
	Use:   "voice <code>",
	Short: "Prints the Shepard voicing of each chord in a code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		chords, err := decode(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, c := range chords {
			fmt.Fprintln(out, pitch.Pretty(c.Name(cfg.Accidentals)))
			for _, group := range voicing.NormalizeGroups(voicing.Shepard(c), cfg.Volume) {
				parts := make([]string, len(group))
				for i, v := range group {
					parts[i] = fmt.Sprintf("%s:%.3f", v.Note, v.Weight)
				}
				fmt.Fprintf(out, "  %s\n", strings.Join(parts, " "))
			}
		}
		return nil
	},
}

var numeralsCmd = &cobra.Command{
	Use:   "numerals <key> [code]",
	Short: "Prints roman numerals in a key",
	Long: `Without a code, prints the chord on every degree of the key. With one,
prints the numeral of each chord in the code, e.g. numerals "A minor" EmAmF`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		k, ok := key.Parse(args[0])
		if !ok {
			return fmt.Errorf("unknown key %q", args[0])
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, k.Name())

		if len(args) == 1 {
			for degree := 1; degree <= len(k.Notes()); degree++ {
				c := k.NaturalChord(degree)
				fmt.Fprintf(out, "%-6s %s\n", k.ChordNumeral(c), pitch.Pretty(c.Name(k.Accidentals())))
			}
			return nil
		}

		chords, err := decode(args[1])
		if err != nil {
			return err
		}
		for _, c := range chords {
			fmt.Fprintf(out, "%-6s %s\n", k.ChordNumeral(c), pitch.Pretty(c.Name(k.Accidentals())))
		}
		return nil
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest <key>",
	Short: "Prints well known progressions in a key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		lib, err := suggest.LoadLibrary(cfg.Progressions)
		if err != nil {
			return err
		}
		k, ok := key.Parse(args[0])
		if !ok {
			return fmt.Errorf("unknown key %q", args[0])
		}
		out := cmd.OutOrStdout()
		progressions := lib.For(k.Type())
		if len(progressions) == 0 {
			fmt.Fprintf(out, "no progressions for %s keys\n", k.Type())
			return nil
		}
		for _, p := range progressions {
			chords := p.Realize(k)
			code, _ := chordcode.EncodeAll(chords)
			fmt.Fprintf(out, "%-24s %-24s %s\n", p.Name, chordNames(chords, k.Accidentals()), code)
		}
		return nil
	},
}

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Prints the pad layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		l, err := layout.NewKind(cfg.Layout, cfg.Factors, 0)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), renderLayout(l, cfg.Accidentals))
		return nil
	},
}

// renderLayout draws the layout as plain text, one line per half row.
func renderLayout(l *layout.Layout, acc pitch.Accidental) string {
	const width = 4
	height := int(math.Ceil(l.Rows()*2)) + 1
	lines := make([][]string, height)
	for i := range lines {
		lines[i] = make([]string, l.Cols())
		for j := range lines[i] {
			lines[i][j] = strings.Repeat(" ", width)
		}
	}
	for _, c := range l.Cells() {
		row := int(math.Round(c.Row * 2))
		if row < 0 || row >= height {
			continue
		}
		name := pitch.Name(c.Class, acc)
		if c.IsRoot && !l.HasSeparateRoots() {
			name += "*"
		}
		lines[row][c.Col] = fmt.Sprintf("%-*s", width, name)
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(strings.TrimRight(strings.Join(line, " "), " "))
		b.WriteString("\n")
	}
	return b.String()
}

func decode(code string) ([]chord.Chord, error) {
	chords, rest := chordcode.ReadAll(strings.TrimSpace(code))
	if rest != "" {
		return nil, fmt.Errorf("chord code: cannot read %q", rest)
	}
	return chords, nil
}

func names(pcs []pitch.Class, acc pitch.Accidental) string {
	out := make([]string, len(pcs))
	for i, pc := range pcs {
		out[i] = pitch.Name(pc, acc)
	}
	return strings.Join(out, " ")
}

func notes(ns []pitch.Note) string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.String()
	}
	return strings.Join(out, " ")
}

func chordNames(chords []chord.Chord, acc pitch.Accidental) string {
	out := make([]string, len(chords))
	for i, c := range chords {
		out[i] = pitch.Pretty(c.Name(acc))
	}
	return strings.Join(out, " ")
}
