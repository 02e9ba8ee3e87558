package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"folio/internal/domain/content"
	"folio/internal/resume"
)

var cvCmd = &cobra.Command{
	Use:   "cv",
	Short: "Print the CV projected onto one language as JSON",
	RunE:  runCV,
}

var cvLang string

func init() {
	cvCmd.Flags().StringVarP(&cvLang, "lang", "l", "", "Language (fr or en, default site.default_language)")
	rootCmd.AddCommand(cvCmd)
}

func runCV(cmd *cobra.Command, _ []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}
	l := cfg.Site.DefaultLanguage
	if cvLang != "" {
		var ok bool
		if l, ok = content.ParseLang(cvLang); !ok {
			return fmt.Errorf("unsupported language %q", cvLang)
		}
	}

	rec, err := resume.Load(cfg.Content.CVFile)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resume.Project(rec, l))
}
