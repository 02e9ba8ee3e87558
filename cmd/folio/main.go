// Package main is the folio command: build the site, serve it while editing,
// check the content.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"folio/internal/domain/config"
)

var rootCmd = &cobra.Command{
	Use:           "folio",
	Short:         "Bilingual blog and CV site generator",
	Long:          "folio renders a French/English blog and a CV from markdown posts and a YAML record, as a static site or through a development server.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configPath string
	logLevel   string
	logFormat  string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to site config (YAML or TOML, default $FOLIO_CONFIG or ./site.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text or json)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	lvl, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	log.SetLevel(lvl)

	switch strings.ToLower(logFormat) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("invalid --log-format %q", logFormat)
	}
	return log, nil
}

// loadConfig resolves the config path from the flag, then FOLIO_CONFIG, then
// ./site.yaml. A missing file means the defaults.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("FOLIO_CONFIG")
	}
	if path == "" {
		path = "site.yaml"
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// setup is shared by every subcommand.
func setup() (config.Config, *logrus.Logger, error) {
	log, err := newLogger()
	if err != nil {
		return config.Config{}, nil, err
	}
	cfg, err := loadConfig()
	if err != nil {
		return cfg, nil, err
	}
	return cfg, log, nil
}
