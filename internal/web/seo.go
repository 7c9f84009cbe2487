package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/pseo"
)

const xmlContentType = "application/xml; charset=utf-8"

// sitemapEntries lists the hand-written pages, the blog and every indexable
// landing page.
func (s *Server) sitemapEntries(c *gin.Context) []pseo.SitemapEntry {
	base := s.gen.Site().BaseURL
	mod := s.started.UTC().Format("2006-01-02")

	out := []pseo.SitemapEntry{
		{Loc: base + "/", LastMod: mod, ChangeFreq: "weekly", Priority: 1.0},
		{Loc: base + "/projects", LastMod: mod, ChangeFreq: "monthly", Priority: 0.9},
		{Loc: base + "/blog", LastMod: mod, ChangeFreq: "weekly", Priority: 0.9},
		{Loc: base + "/hire", LastMod: mod, ChangeFreq: "monthly", Priority: 0.7},
		{Loc: base + "/roles", LastMod: mod, ChangeFreq: "monthly", Priority: 0.7},
		{Loc: base + "/solutions", LastMod: mod, ChangeFreq: "monthly", Priority: 0.7},
	}
	for _, p := range s.blog.List(c.Request.Context()) {
		e := pseo.SitemapEntry{Loc: base + "/blog/" + p.Slug, ChangeFreq: "yearly", Priority: 0.7}
		switch {
		case !p.UpdatedAt.IsZero():
			e.LastMod = p.UpdatedAt.UTC().Format("2006-01-02")
		case !p.PublishedAt.IsZero():
			e.LastMod = p.PublishedAt.UTC().Format("2006-01-02")
		}
		out = append(out, e)
	}
	return append(out, pseo.SitemapEntries(s.landing.Pages, s.started)...)
}

// sitemap serves a single urlset, or a sitemap index once the site outgrows
// one file.
func (s *Server) sitemap(c *gin.Context) {
	chunks := pseo.Chunk(s.sitemapEntries(c), pseo.MaxSitemapURLs)

	var buf bytes.Buffer
	var err error
	if len(chunks) == 1 {
		err = pseo.WriteSitemap(&buf, chunks[0])
	} else {
		locs := make([]string, len(chunks))
		for i := range chunks {
			locs[i] = fmt.Sprintf("%s/sitemaps/sitemap-%d.xml", s.gen.Site().BaseURL, i+1)
		}
		err = pseo.WriteSitemapIndex(&buf, locs, s.started)
	}
	if err != nil {
		s.log.Error("sitemap failed", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, xmlContentType, buf.Bytes())
}

func (s *Server) sitemapChunk(c *gin.Context) {
	name := c.Param("file")
	num, ok := strings.CutPrefix(strings.TrimSuffix(name, ".xml"), "sitemap-")
	n, err := strconv.Atoi(num)
	if !ok || err != nil || !strings.HasSuffix(name, ".xml") {
		s.notFound(c)
		return
	}

	chunks := pseo.Chunk(s.sitemapEntries(c), pseo.MaxSitemapURLs)
	if n < 1 || n > len(chunks) {
		s.notFound(c)
		return
	}
	var buf bytes.Buffer
	if err := pseo.WriteSitemap(&buf, chunks[n-1]); err != nil {
		s.log.Error("sitemap failed", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, xmlContentType, buf.Bytes())
}

func (s *Server) robots(c *gin.Context) {
	c.String(http.StatusOK, pseo.Robots(s.gen.Site().BaseURL))
}
