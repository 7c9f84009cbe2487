// Package web is the HTTP surface: the portfolio pages, the programmatic
// landing pages, the blog, the view-counter API and the admin area.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/blog"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/geo"
	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/internal/metrics"
	"github.com/Zachkp/portfolio/internal/profile"
	"github.com/Zachkp/portfolio/internal/pseo"
	"github.com/Zachkp/portfolio/internal/store"
	"github.com/Zachkp/portfolio/internal/views"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var errNoVisitorStore = errors.New("visitor store not configured")

// VisitStore is the slice of the database the server needs.
type VisitStore interface {
	RecordVisit(ctx context.Context, v store.Visit) error
	Stats(ctx context.Context) (*store.Stats, error)
	RecentVisitors(ctx context.Context, n int) ([]store.Visit, error)
	CleanupOlderThan(ctx context.Context, age time.Duration) (int64, error)
	VisitPoints(ctx context.Context, since time.Time) ([]geo.Point, error)
}

type Deps struct {
	Config    config.Config
	Logger    *zap.Logger
	Generator *pseo.Generator
	Profile   *profile.Profile
	Blog      *blog.Service
	// Visitors may be nil, which disables tracking and the admin stats.
	Visitors VisitStore
	Views    views.Counter
	Mailer   Mailer
	Metrics  *metrics.Metrics
	Now      func() time.Time
}

type Server struct {
	cfg      config.Config
	log      *zap.Logger
	gen      *pseo.Generator
	profile  *profile.Profile
	blog     *blog.Service
	visitors VisitStore
	views    views.Counter
	mailer   Mailer
	metrics  *metrics.Metrics
	now      func() time.Time
	started  time.Time

	landing *LandingIndex
	hasher  hasher
	token   string
	contact *keyLimiter
	engine  *gin.Engine
}

// New builds the landing-page index, then the router. It fails fast if any
// page cannot be generated.
func New(ctx context.Context, d Deps) (*Server, error) {
	if d.Generator == nil || d.Profile == nil || d.Blog == nil {
		return nil, errors.New("web: generator, profile and blog are required")
	}
	s := &Server{
		cfg:      d.Config,
		log:      d.Logger,
		gen:      d.Generator,
		profile:  d.Profile,
		blog:     d.Blog,
		visitors: d.Visitors,
		views:    d.Views,
		mailer:   d.Mailer,
		metrics:  d.Metrics,
		now:      d.Now,
		contact:  newKeyLimiter(20*time.Second, 3),
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.views == nil {
		s.views = views.NopCounter{}
	}
	if s.mailer == nil {
		s.mailer = NewSMTPMailer(d.Config)
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.started = s.now()

	var err error
	if s.hasher.salt, err = randomHex(32); err != nil {
		return nil, fmt.Errorf("failed to generate hashing salt: %w", err)
	}
	if s.token, err = randomHex(32); err != nil {
		return nil, fmt.Errorf("failed to generate admin token: %w", err)
	}

	start := time.Now()
	s.landing, err = BuildLandingIndex(ctx, s.gen, d.Config.SEO.Workers)
	if err != nil {
		return nil, err
	}
	s.metrics.ObservePages(s.landing.Pages)
	s.log.Info("landing pages generated",
		zap.Int("total", s.landing.Report.Total),
		zap.Int("indexable", s.landing.Report.Indexable),
		zap.Int("flagged", s.landing.Report.Flagged),
		zap.Duration("took", time.Since(start)),
	)

	s.engine, err = s.routes()
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) Landing() *LandingIndex { return s.landing }

func parseTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006")
		},
		"datetime": func(t time.Time) string { return t.UTC().Format("2006-01-02 15:04") },
		"join":     strings.Join,
	}
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

func (s *Server) routes() (*gin.Engine, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(
		requestID(),
		logging.GinLogger(s.log),
		recovery(s.log),
		s.metrics.Middleware(),
		s.trackVisitors(),
	)

	assets, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to load static assets: %w", err)
	}
	r.StaticFS("/static", http.FS(assets))

	r.GET("/", s.home)
	r.GET("/work-content", s.workContent)
	r.GET("/education-content", s.educationContent)
	r.GET("/contact-form", s.contactForm)
	r.POST("/contact", s.submitContact)
	r.GET("/privacy", s.privacy)
	r.GET("/projects", s.projects)

	r.GET("/blog", s.blogIndex)
	r.GET("/blog/:slug", s.blogPost)

	r.GET("/hire", s.landingIndex(pseo.KindSkill, "Hire by skill"))
	r.GET("/hire/*path", s.landingPage("/hire"))
	r.GET("/roles", s.landingIndex(pseo.KindRoleLocation, "Roles by location"))
	r.GET("/roles/*path", s.landingPage("/roles"))
	r.GET("/solutions", s.landingIndex(pseo.KindUseCase, "Solutions"))
	r.GET("/solutions/:usecase", s.landingPage("/solutions"))

	r.GET("/sitemap.xml", s.sitemap)
	r.GET("/sitemaps/:file", s.sitemapChunk)
	r.GET("/robots.txt", s.robots)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	r.GET("/healthz", s.healthz)

	api := r.Group("/api")
	api.GET("/views/:slug", s.getViews)
	api.POST("/views/:slug", s.recordView)

	s.adminRoutes(r)

	r.NoRoute(s.notFound)
	return r, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully. A privacy
// cleanup runs at start and once a day after.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.cleanupLoop(ctx, 24*time.Hour)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", srv.Addr), zap.String("admin", "/admin/login"))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) cleanupLoop(ctx context.Context, every time.Duration) {
	if s.visitors == nil {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		if _, err := s.cleanupVisitors(ctx); err != nil && ctx.Err() == nil {
			s.log.Warn("privacy cleanup failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

func (s *Server) retention() time.Duration {
	days := s.cfg.Privacy.RetentionDays
	if days <= 0 {
		days = 365
	}
	return time.Duration(days) * 24 * time.Hour
}

func (s *Server) cleanupVisitors(ctx context.Context) (int64, error) {
	n, err := s.visitors.CleanupOlderThan(ctx, s.retention())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info("privacy cleanup", zap.Int64("removed", n), zap.Int("retention_days", s.cfg.Privacy.RetentionDays))
	}
	return n, nil
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "pages": len(s.landing.Pages)})
}

func (s *Server) notFound(c *gin.Context) {
	if wantsJSON(c) {
		writeError(c, http.StatusNotFound, "not_found", "not found")
		return
	}
	s.render(c, http.StatusNotFound, "error.html", gin.H{
		"title":   "Page not found",
		"message": "The page you were looking for does not exist.",
	})
}

// render adds the site-wide fields every layout uses.
func (s *Server) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["site"] = s.cfg.Site
	data["author"] = s.profile.Name
	data["year"] = s.now().Year()
	c.HTML(status, name, data)
}
