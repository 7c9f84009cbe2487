package commands

import (
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/printer"
	"github.com/Zachkp/portfolio/internal/pseo"
)

var (
	auditJSON         bool
	auditFailOnIssues bool
	auditShow         int
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Generate every landing page and audit the set",
	Long: `Generate every landing page and run the content checks and the
de-duplication pass: thin content, missing headings, title and description
lengths, near-duplicate titles and descriptions, and keyword cannibalization.

Examples:
  # Human-readable report
  portfolio audit

  # Machine-readable report for CI
  portfolio audit --json --fail-on-issues`,
	Args: cobra.NoArgs,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().BoolVar(&auditJSON, "json", false, "Print the report as JSON")
	auditCmd.Flags().BoolVar(&auditFailOnIssues, "fail-on-issues", false, "Exit non-zero when any page is flagged")
	auditCmd.Flags().IntVar(&auditShow, "show", 20, "Flagged pages to list (0 for all)")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	pages, err := gen.GenerateAll(cmd.Context(), cfg.SEO.Workers)
	if err != nil {
		return printer.Error("Page generation failed", err.Error(), nil)
	}
	rep := pseo.Audit(pages, gen.Options())

	if auditJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return err
		}
	} else {
		printReport(rep)
	}

	if auditFailOnIssues && rep.Flagged > 0 {
		return printer.Error("Audit found flagged pages",
			"Flagged pages are served with noindex and left out of the sitemap.",
			[]string{"Adjust the catalog copy or priorities", "Lower seo.min_words if the threshold is too strict"})
	}
	return nil
}

func printReport(rep pseo.Report) {
	printer.Header("Landing page audit\n\n")
	printer.Info("  Pages:      %d\n", rep.Total)
	printer.Info("  Indexable:  %d\n", rep.Indexable)
	printer.Info("  Flagged:    %d\n", rep.Flagged)
	printer.Info("  Warnings:   %d\n\n", rep.Warnings)

	if len(rep.ByCode) > 0 {
		printer.Header("Issues by code\n")
		for _, code := range rep.Codes() {
			printer.Info("  %-26s %d\n", code, rep.ByCode[code])
		}
		printer.Info("\n")
	}

	shown := rep.FlaggedPages
	if auditShow > 0 && len(shown) > auditShow {
		shown = shown[:auditShow]
	}
	for _, fp := range shown {
		printer.Step("%s\n", fp.Path)
		for _, is := range fp.Issues {
			printer.Info("    [%s] %s: %s\n", is.Severity, is.Code, is.Message)
		}
	}
	if len(shown) < len(rep.FlaggedPages) {
		printer.Info("  ... and %d more (use --show 0 to list all)\n", len(rep.FlaggedPages)-len(shown))
	}

	if rep.Flagged == 0 {
		printer.Success("No pages flagged\n")
	} else {
		printer.Warning("%d of %d pages flagged\n", rep.Flagged, rep.Total)
	}
}
