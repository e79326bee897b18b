package main

import (
	"log"
	"net/http"
	"time"

	"github.com/rapidmidiex/chordpad/api"
	"github.com/rapidmidiex/chordpad/suggest"
	"github.com/spf13/cobra"
)

var addr string

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the chord API over HTTP",
	Long: `Serves chord names, voicings, numerals, progressions and layouts as JSON,
for browser clients of a jam.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		lib, err := suggest.LoadLibrary(cfg.Progressions)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              addr,
			Handler:           api.NewServer(lib, cfg.Accidentals).Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Printf("serving chord API on %s", addr)
		return srv.ListenAndServe()
	},
}
