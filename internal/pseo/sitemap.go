package pseo

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"
)

// MaxSitemapURLs is the per-file limit of the sitemaps protocol.
const MaxSitemapURLs = 50000

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type SitemapEntry struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority,omitempty"`
}

type urlset struct {
	XMLName xml.Name       `xml:"urlset"`
	XMLNS   string         `xml:"xmlns,attr"`
	URLs    []SitemapEntry `xml:"url"`
}

type sitemapRef struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	XMLNS    string       `xml:"xmlns,attr"`
	Sitemaps []sitemapRef `xml:"sitemap"`
}

func kindPriority(k Kind) float64 {
	switch k {
	case KindSkill, KindUseCase:
		return 0.8
	case KindSkillLocation, KindSkillIndustry:
		return 0.6
	case KindRoleLocation:
		return 0.5
	}
	return 0.4
}

// SitemapEntries lists indexable pages only; flagged pages carry noindex and
// must not be advertised.
func SitemapEntries(pages []*Page, lastMod time.Time) []SitemapEntry {
	mod := ""
	if !lastMod.IsZero() {
		mod = lastMod.UTC().Format("2006-01-02")
	}
	out := make([]SitemapEntry, 0, len(pages))
	for _, p := range pages {
		if !p.Indexable {
			continue
		}
		out = append(out, SitemapEntry{
			Loc:        p.CanonicalURL,
			LastMod:    mod,
			ChangeFreq: "monthly",
			Priority:   kindPriority(p.Params.Kind),
		})
	}
	return out
}

// Chunk splits entries into groups of at most n (MaxSitemapURLs when n is
// out of range).
func Chunk(entries []SitemapEntry, n int) [][]SitemapEntry {
	if n <= 0 || n > MaxSitemapURLs {
		n = MaxSitemapURLs
	}
	var out [][]SitemapEntry
	for len(entries) > n {
		out = append(out, entries[:n:n])
		entries = entries[n:]
	}
	if len(entries) > 0 || len(out) == 0 {
		out = append(out, entries)
	}
	return out
}

func WriteSitemap(w io.Writer, entries []SitemapEntry) error {
	if len(entries) > MaxSitemapURLs {
		return fmt.Errorf("sitemap has %d urls, limit is %d", len(entries), MaxSitemapURLs)
	}
	return writeXML(w, urlset{XMLNS: sitemapNS, URLs: entries})
}

func WriteSitemapIndex(w io.Writer, locs []string, lastMod time.Time) error {
	idx := sitemapIndex{XMLNS: sitemapNS}
	mod := ""
	if !lastMod.IsZero() {
		mod = lastMod.UTC().Format("2006-01-02")
	}
	for _, l := range locs {
		idx.Sitemaps = append(idx.Sitemaps, sitemapRef{Loc: l, LastMod: mod})
	}
	return writeXML(w, idx)
}

func writeXML(w io.Writer, v any) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode sitemap: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Robots returns robots.txt allowing everything but the admin area and
// pointing crawlers at the sitemap.
func Robots(baseURL string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /admin/\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("\nSitemap: " + baseURL + "/sitemap.xml\n")
	return b.String()
}
