package pseo

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/portfolio/internal/catalog"
)

// Site is the identity stamped into every page.
type Site struct {
	BaseURL string
	Brand   string
	Author  string
	Email   string
}

type Options struct {
	MinWords             int
	TitleThreshold       float64
	DescriptionThreshold float64
	// IgnoreWords are boilerplate words (brand, author) left out of the
	// similarity comparison.
	IgnoreWords []string
}

func (o Options) withDefaults() Options {
	if o.MinWords <= 0 {
		o.MinWords = 300
	}
	if o.TitleThreshold <= 0 {
		o.TitleThreshold = 0.85
	}
	if o.DescriptionThreshold <= 0 {
		o.DescriptionThreshold = 0.9
	}
	return o
}

// Generator expands catalog entries into landing pages. It holds no mutable
// state after New, so one Generator may be shared across goroutines.
type Generator struct {
	cat  *catalog.Catalog
	site Site
	opts Options
}

func New(cat *catalog.Catalog, site Site, opts Options) *Generator {
	site.BaseURL = strings.TrimRight(site.BaseURL, "/")
	opts = opts.withDefaults()
	if len(opts.IgnoreWords) == 0 {
		opts.IgnoreWords = []string{site.Brand, site.Author}
	}
	return &Generator{cat: cat, site: site, opts: opts}
}

func (g *Generator) Options() Options { return g.opts }

func (g *Generator) Site() Site { return g.site }

func (g *Generator) Catalog() *catalog.Catalog { return g.cat }

// subject is a Params with its catalog rows resolved.
type subject struct {
	params   Params
	path     string
	skill    catalog.Skill
	location catalog.Location
	industry catalog.Industry
	role     catalog.Role
	useCase  catalog.UseCase
}

func (g *Generator) resolve(p Params) (subject, error) {
	if err := p.Validate(); err != nil {
		return subject{}, err
	}
	s := subject{params: p, path: p.Path()}
	var ok bool
	if p.Skill != "" {
		if s.skill, ok = g.cat.Skill(p.Skill); !ok {
			return subject{}, fmt.Errorf("%w: skill %q", ErrUnknownSlug, p.Skill)
		}
	}
	if p.Location != "" {
		if s.location, ok = g.cat.Location(p.Location); !ok {
			return subject{}, fmt.Errorf("%w: location %q", ErrUnknownSlug, p.Location)
		}
	}
	if p.Industry != "" {
		if s.industry, ok = g.cat.Industry(p.Industry); !ok {
			return subject{}, fmt.Errorf("%w: industry %q", ErrUnknownSlug, p.Industry)
		}
		if p.Skill != "" && !s.industry.Accepts(p.Skill) {
			return subject{}, fmt.Errorf("%w: %s is not a focus skill for %s", ErrInvalidCombination, p.Skill, p.Industry)
		}
	}
	if p.Role != "" {
		if s.role, ok = g.cat.Role(p.Role); !ok {
			return subject{}, fmt.Errorf("%w: role %q", ErrUnknownSlug, p.Role)
		}
	}
	if p.UseCase != "" {
		if s.useCase, ok = g.cat.UseCase(p.UseCase); !ok {
			return subject{}, fmt.Errorf("%w: use case %q", ErrUnknownSlug, p.UseCase)
		}
	}
	if p.Kind == KindSkillLocationIndustry && !g.tripleAllowed(s.skill, s.location, s.industry) {
		return subject{}, fmt.Errorf("%w: %s is outside the priority set", ErrInvalidCombination, s.path)
	}
	return s, nil
}

// tripleAllowed keeps the three-way join to priority-1 entries; the full
// cross product would dwarf the rest of the site with near-identical pages.
func (g *Generator) tripleAllowed(s catalog.Skill, l catalog.Location, i catalog.Industry) bool {
	return s.Priority == 1 && l.Priority == 1 && i.Priority == 1 && i.Accepts(s.Slug)
}

// Generate builds one page. The result depends only on the catalog, the site
// and p, so repeated calls return identical pages. Content checks run here;
// cross-page duplicate checks need Audit.
func (g *Generator) Generate(p Params) (*Page, error) {
	s, err := g.resolve(p)
	if err != nil {
		return nil, err
	}

	var page *Page
	switch p.Kind {
	case KindSkill:
		page = g.skillPage(s)
	case KindSkillLocation:
		page = g.skillLocationPage(s)
	case KindSkillIndustry:
		page = g.skillIndustryPage(s)
	case KindSkillLocationIndustry:
		page = g.triplePage(s)
	case KindRoleLocation:
		page = g.roleLocationPage(s)
	case KindUseCase:
		page = g.useCasePage(s)
	}

	page.Params = p
	page.Path = s.path
	page.CanonicalURL = g.site.BaseURL + s.path
	page.WordCount = countWords(page)
	page.Issues = CheckContent(page, g.opts)
	page.Indexable = !hasError(page.Issues)
	return page, nil
}

// Enumerate lists every valid combination in a stable order: by kind, then
// by catalog authoring order.
func (g *Generator) Enumerate() []Params {
	var out []Params
	c := g.cat
	for _, s := range c.Skills {
		out = append(out, Params{Kind: KindSkill, Skill: s.Slug})
	}
	for _, s := range c.Skills {
		for _, l := range c.Locations {
			out = append(out, Params{Kind: KindSkillLocation, Skill: s.Slug, Location: l.Slug})
		}
	}
	for _, s := range c.Skills {
		for _, i := range c.Industries {
			if i.Accepts(s.Slug) {
				out = append(out, Params{Kind: KindSkillIndustry, Skill: s.Slug, Industry: i.Slug})
			}
		}
	}
	for _, s := range c.Skills {
		for _, l := range c.Locations {
			for _, i := range c.Industries {
				if g.tripleAllowed(s, l, i) {
					out = append(out, Params{Kind: KindSkillLocationIndustry, Skill: s.Slug, Location: l.Slug, Industry: i.Slug})
				}
			}
		}
	}
	for _, r := range c.Roles {
		for _, l := range c.Locations {
			out = append(out, Params{Kind: KindRoleLocation, Role: r.Slug, Location: l.Slug})
		}
	}
	for _, u := range c.UseCases {
		out = append(out, Params{Kind: KindUseCase, UseCase: u.Slug})
	}
	return out
}

// GenerateAll builds every enumerated page with at most limit concurrent
// workers (GOMAXPROCS when limit <= 0). Pages come back in Enumerate order
// and have only content checks applied; run Audit for duplicates.
func (g *Generator) GenerateAll(ctx context.Context, limit int) ([]*Page, error) {
	params := g.Enumerate()
	pages := make([]*Page, len(params))
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for i, p := range params {
		i, p := i, p
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			page, err := g.Generate(p)
			if err != nil {
				return fmt.Errorf("generate %s: %w", p.Path(), err)
			}
			pages[i] = page
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}
