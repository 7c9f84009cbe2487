package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/printer"
	"github.com/Zachkp/portfolio/internal/pseo"
)

var (
	sitemapOut     string
	sitemapMaxURLs int
)

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Write the landing-page sitemap to disk",
	Long: `Write sitemap.xml for every indexable landing page. When the pages do not
fit in one file, sitemap.xml becomes a sitemap index and the pages are
written to sitemap-1.xml, sitemap-2.xml and so on, served under /sitemaps/.`,
	Args: cobra.NoArgs,
	RunE: runSitemap,
}

func init() {
	sitemapCmd.Flags().StringVarP(&sitemapOut, "out", "o", "public", "Output directory")
	sitemapCmd.Flags().IntVar(&sitemapMaxURLs, "max-urls", pseo.MaxSitemapURLs, "URLs per sitemap file")
	rootCmd.AddCommand(sitemapCmd)
}

func runSitemap(cmd *cobra.Command, args []string) error {
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

	if err := os.MkdirAll(sitemapOut, 0o755); err != nil {
		return printer.Error("Failed to create output directory", err.Error(), nil)
	}

	now := time.Now()
	chunks := pseo.Chunk(pseo.SitemapEntries(pages, now), sitemapMaxURLs)
	if len(chunks) == 1 {
		if err := writeFile(filepath.Join(sitemapOut, "sitemap.xml"), func(f *os.File) error {
			return pseo.WriteSitemap(f, chunks[0])
		}); err != nil {
			return err
		}
		printer.Success("Wrote sitemap.xml with %d URLs (%d pages flagged and left out)\n", len(chunks[0]), rep.Flagged)
		return nil
	}

	locs := make([]string, len(chunks))
	for i, chunk := range chunks {
		name := fmt.Sprintf("sitemap-%d.xml", i+1)
		locs[i] = gen.Site().BaseURL + "/sitemaps/" + name
		if err := writeFile(filepath.Join(sitemapOut, name), func(f *os.File) error {
			return pseo.WriteSitemap(f, chunk)
		}); err != nil {
			return err
		}
	}
	if err := writeFile(filepath.Join(sitemapOut, "sitemap.xml"), func(f *os.File) error {
		return pseo.WriteSitemapIndex(f, locs, now)
	}); err != nil {
		return err
	}
	printer.Success("Wrote sitemap index with %d files (%d pages flagged and left out)\n", len(chunks), rep.Flagged)
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return printer.Error("Failed to create "+path, err.Error(), nil)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return printer.Error("Failed to write "+path, err.Error(), nil)
	}
	if err := f.Close(); err != nil {
		return printer.Error("Failed to write "+path, err.Error(), nil)
	}
	return nil
}
