package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"folio/internal/build"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the static site",
	Long:  "Renders every page in both languages into the public directory. Pages whose output did not change since the last build are left untouched.",
	RunE:  runBuild,
}

var (
	buildOut     string
	buildWorkers int
)

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "Output directory (overrides build.public_dir)")
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "Parallel renders (overrides build.workers)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if buildOut != "" {
		cfg.Build.PublicDir = buildOut
	}
	if buildWorkers > 0 {
		cfg.Build.Workers = buildWorkers
	}

	res, err := build.New(cfg, log).Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d articles, %d pages (%d written, %d unchanged, %d removed, %d skipped)\n",
		res.Articles, res.Pages, res.Written, res.Unchanged, res.Removed, len(res.Warnings))
	return nil
}
