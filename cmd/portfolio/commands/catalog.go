package commands

import (
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/printer"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the landing-page catalogs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check slugs, priorities and cross-references in the catalog",
	Long: `Check the catalog (embedded, or the file given with --catalog) for empty or
duplicate slugs, out-of-range priorities and references to unknown skills or
use-cases.`,
	Args: cobra.NoArgs,
	RunE: runCatalogValidate,
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	v := cat.Validate()
	for _, w := range v.Warnings {
		printer.Warning("%s\n", w)
	}
	if !v.OK() {
		for _, e := range v.Errors {
			printer.Info("  ✗ %s\n", e)
		}
		return printer.Error("Catalog has errors",
			"Landing pages cannot be generated until these are fixed.", nil)
	}
	printer.Success("Catalog OK: %d skills, %d locations, %d industries, %d roles, %d use-cases\n",
		len(cat.Skills), len(cat.Locations), len(cat.Industries), len(cat.Roles), len(cat.UseCases))
	return nil
}
