package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"folio/internal/serve"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the development server",
	Long:  "Serves the site from the content directory, reading posts and the CV on every request. With watching enabled, open pages reload when a post, the CV or the theme changes.",
	RunE:  runServe,
}

var (
	serveAddr    string
	serveNoWatch bool
)

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (overrides serve.addr)")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "Disable file watching and live reload")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Serve.Addr = serveAddr
	}
	if serveNoWatch {
		cfg.Serve.Watch = false
	}

	s, err := serve.New(cfg, log)
	if err != nil {
		return fmt.Errorf("serve init: %w", err)
	}
	defer s.Close()

	return s.ListenAndServe(cmd.Context())
}
