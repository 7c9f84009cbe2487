package commands

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/catalog"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/printer"
	"github.com/Zachkp/portfolio/internal/pseo"
)

// loadConfig reads .env, the config file and the environment, then
// validates. Warnings are logged; errors abort.
func loadConfig() (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, printer.Error("Failed to load .env", err.Error(), nil)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, printer.Error("Failed to load configuration", err.Error(),
			[]string{"Check the file passed to --config", "Check numeric environment variables such as PRIVACY_RETENTION_DAYS"})
	}
	cfg, v := config.NormalizeAndValidate(cfg)
	for _, w := range v.Warnings {
		logger.Warn("config", zap.String("warning", w))
	}
	if !v.OK() {
		return cfg, printer.Error("Invalid configuration", "- "+strings.Join(v.Errors, "\n- "), nil)
	}
	return cfg, nil
}

func loadCatalog() (*catalog.Catalog, error) {
	if catalogPath == "" {
		cat, err := catalog.Default()
		if err != nil {
			return nil, printer.Error("Embedded catalog is broken", err.Error(), nil)
		}
		return cat, nil
	}
	f, err := os.Open(catalogPath)
	if err != nil {
		return nil, printer.Error("Failed to open catalog", err.Error(), nil)
	}
	defer f.Close()
	cat, err := catalog.Load(f)
	if err != nil {
		return nil, printer.Error("Failed to read catalog", err.Error(),
			[]string{fmt.Sprintf("Run 'portfolio catalog validate --catalog %s' after fixing the YAML", catalogPath)})
	}
	return cat, nil
}

// newGenerator loads the catalog and refuses to build pages from one that
// does not validate.
func newGenerator(cfg config.Config) (*pseo.Generator, error) {
	cat, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	if v := cat.Validate(); !v.OK() {
		return nil, printer.Error("Catalog has errors", "- "+strings.Join(v.Errors, "\n- "),
			[]string{"Run 'portfolio catalog validate' for the full report"})
	}
	site := pseo.Site{
		BaseURL: cfg.Site.URL,
		Brand:   cfg.Site.Brand,
		Author:  cfg.Site.Author,
		Email:   cfg.Site.Email,
	}
	return pseo.New(cat, site, pseo.Options{
		MinWords:             cfg.SEO.MinWords,
		TitleThreshold:       cfg.SEO.TitleThreshold,
		DescriptionThreshold: cfg.SEO.DescriptionThreshold,
	}), nil
}
