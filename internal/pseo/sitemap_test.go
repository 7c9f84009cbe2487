package pseo

import (
	"bytes"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapEntries_SkipsFlaggedPages(t *testing.T) {
	pages := []*Page{
		{Params: Params{Kind: KindSkill, Skill: "go"}, CanonicalURL: "https://example.dev/hire/go", Indexable: true},
		{Params: Params{Kind: KindSkillLocation, Skill: "go", Location: "london"}, CanonicalURL: "https://example.dev/hire/go/in/london", Indexable: false},
		{Params: Params{Kind: KindRoleLocation, Role: "backend-engineer", Location: "london"}, CanonicalURL: "https://example.dev/roles/backend-engineer/in/london", Indexable: true},
	}
	mod := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)

	entries := SitemapEntries(pages, mod)
	require.Len(t, entries, 2)
	assert.Equal(t, "https://example.dev/hire/go", entries[0].Loc)
	assert.Equal(t, "2026-03-01", entries[0].LastMod)
	assert.Equal(t, 0.8, entries[0].Priority)
	assert.Equal(t, 0.5, entries[1].Priority)
}

func TestWriteSitemap(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSitemap(&buf, []SitemapEntry{{Loc: "https://example.dev/hire/go", LastMod: "2026-03-01", ChangeFreq: "monthly", Priority: 0.8}})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, out, "<loc>https://example.dev/hire/go</loc>")
	assert.Contains(t, out, "<priority>0.8</priority>")
}

func TestWriteSitemap_TooLarge(t *testing.T) {
	err := WriteSitemap(&bytes.Buffer{}, make([]SitemapEntry, MaxSitemapURLs+1))
	assert.Error(t, err)
}

func TestWriteSitemapIndex(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSitemapIndex(&buf, []string{"https://example.dev/sitemap-1.xml", "https://example.dev/sitemap-2.xml"}, time.Time{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<sitemapindex")
	assert.Equal(t, 2, strings.Count(buf.String(), "<sitemap>"))
	assert.NotContains(t, buf.String(), "<lastmod>")
}

func TestChunk(t *testing.T) {
	entries := make([]SitemapEntry, 5)
	chunks := Chunk(entries, 2)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 2)
	assert.Len(t, chunks[2], 1)

	assert.Len(t, Chunk(nil, 2), 1)
	assert.Len(t, Chunk(entries, 0), 1)
}

func TestRobots(t *testing.T) {
	r := Robots("https://example.dev/")
	assert.Contains(t, r, "Disallow: /admin/")
	assert.Contains(t, r, "Sitemap: https://example.dev/sitemap.xml")
}

func TestStructuredData(t *testing.T) {
	g := newTestGenerator(t)

	graphTypes := func(p Params) []string {
		page, err := g.Generate(p)
		require.NoError(t, err)
		raw, err := g.StructuredData(page)
		require.NoError(t, err)

		var doc struct {
			Context string           `json:"@context"`
			Graph   []map[string]any `json:"@graph"`
		}
		require.NoError(t, json.Unmarshal(raw, &doc))
		assert.Equal(t, "https://schema.org", doc.Context)

		var types []string
		for _, node := range doc.Graph {
			types = append(types, node["@type"].(string))
		}
		return types
	}

	assert.Equal(t,
		[]string{"Person", "ProfessionalService", "FAQPage", "BreadcrumbList"},
		graphTypes(Params{Kind: KindSkillLocation, Skill: "go", Location: "london"}))
	assert.Equal(t,
		[]string{"Person", "Service", "FAQPage", "BreadcrumbList"},
		graphTypes(Params{Kind: KindSkillLocation, Skill: "go", Location: "remote"}))
	assert.Equal(t,
		[]string{"Person", "Service", "FAQPage", "BreadcrumbList"},
		graphTypes(Params{Kind: KindUseCase, UseCase: "dashboards"}))
}
