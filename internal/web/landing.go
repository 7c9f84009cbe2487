package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/pseo"
)

// LandingIndex is the audited page set, built once at startup.
type LandingIndex struct {
	Pages  []*pseo.Page
	Report pseo.Report
	byPath map[string]*pseo.Page
}

// BuildLandingIndex generates and audits every landing page.
func BuildLandingIndex(ctx context.Context, gen *pseo.Generator, workers int) (*LandingIndex, error) {
	pages, err := gen.GenerateAll(ctx, workers)
	if err != nil {
		return nil, fmt.Errorf("failed to generate landing pages: %w", err)
	}
	ix := &LandingIndex{
		Pages:  pages,
		Report: pseo.Audit(pages, gen.Options()),
		byPath: make(map[string]*pseo.Page, len(pages)),
	}
	for _, p := range pages {
		ix.byPath[p.Path] = p
	}
	return ix, nil
}

func (ix *LandingIndex) Lookup(path string) (*pseo.Page, bool) {
	p, ok := ix.byPath[path]
	return p, ok
}

func (ix *LandingIndex) OfKind(k pseo.Kind) []*pseo.Page {
	var out []*pseo.Page
	for _, p := range ix.Pages {
		if p.Params.Kind == k && p.Indexable {
			out = append(out, p)
		}
	}
	return out
}

// page serves from the index and falls back to generating on demand.
// Non-canonical spellings of an indexed path resolve to the audited page;
// only paths missing from the index are generated, without the duplicate
// audit.
func (s *Server) page(path string) (*pseo.Page, error) {
	if p, ok := s.landing.Lookup(path); ok {
		return p, nil
	}
	params, err := pseo.ParsePath(path)
	if err != nil {
		return nil, err
	}
	if p, ok := s.landing.Lookup(params.Path()); ok {
		return p, nil
	}
	return s.gen.Generate(params)
}

func (s *Server) landingPage(prefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rest := c.Param("path")
		if rest == "" {
			rest = "/" + c.Param("usecase")
		}
		path := prefix + rest

		p, err := s.page(path)
		switch {
		case errors.Is(err, pseo.ErrUnknownSlug), errors.Is(err, pseo.ErrInvalidCombination):
			s.notFound(c)
			return
		case err != nil:
			s.log.Error("landing page failed", zap.String("path", path), zap.Error(err))
			_ = c.Error(err)
			s.render(c, http.StatusInternalServerError, "error.html", gin.H{
				"title":   "Something went wrong",
				"message": "Sorry, this page could not be built.",
			})
			return
		}

		if p.Path != path {
			target := p.Path
			if q := c.Request.URL.RawQuery; q != "" {
				target += "?" + q
			}
			c.Redirect(http.StatusMovedPermanently, target)
			return
		}

		ld, err := s.gen.StructuredData(p)
		if err != nil {
			s.log.Warn("structured data failed", zap.String("path", path), zap.Error(err))
		}
		if !p.Indexable {
			c.Header("X-Robots-Tag", "noindex, follow")
		}
		s.render(c, http.StatusOK, "landing.html", gin.H{
			"title":       p.Title,
			"description": p.MetaDescription,
			"canonical":   p.CanonicalURL,
			"noindex":     !p.Indexable,
			"jsonld":      template.JS(ld),
			"page":        p,
		})
	}
}

func (s *Server) landingIndex(kind pseo.Kind, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.render(c, http.StatusOK, "landing-index.html", gin.H{
			"title":       title,
			"description": fmt.Sprintf("%s: %s", title, s.cfg.Site.Brand),
			"canonical":   s.gen.Site().BaseURL + c.Request.URL.Path,
			"heading":     title,
			"pages":       s.landing.OfKind(kind),
		})
	}
}
