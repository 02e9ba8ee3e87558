package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"folio/internal/domain/config"
	"folio/internal/ingest"
	"folio/internal/render"
	"folio/internal/resume"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate posts, the CV record and the theme",
	Long:  "Reads every post and the CV the way a build would and lists each file that would be dropped. Exits non-zero when anything is wrong.",
	RunE:  runCheck,
}

var errCheckFailed = errors.New("check failed")

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if n := check(cmd.OutOrStdout(), cfg, ingest.NewRepository(cfg.Content, log)); n > 0 {
		return fmt.Errorf("%w: %d problem(s)", errCheckFailed, n)
	}
	return nil
}

// check writes one line per problem to w and returns how many it found.
func check(w io.Writer, cfg config.Config, repo *ingest.Repository) int {
	problems := 0

	arts, warns := repo.Audit()
	for _, wn := range warns {
		fmt.Fprintf(w, "post  %s: %s\n", wn.Path, wn.Msg)
		problems++
	}

	if _, err := resume.Load(cfg.Content.CVFile); err != nil {
		fmt.Fprintf(w, "cv    %v\n", err)
		problems++
	}

	themeDir := filepath.Join(cfg.Build.ThemeDir, cfg.Site.Theme, "templates")
	if err := render.CheckThemeTemplates(themeDir); err != nil {
		fmt.Fprintf(w, "theme %s: %v\n", themeDir, err)
		problems++
	}

	fmt.Fprintf(w, "%d articles, %d tags, %d problem(s)\n", len(arts), len(ingest.TagsOf(arts)), problems)
	return problems
}
