package web

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/geo"
	"github.com/Zachkp/portfolio/internal/pseo"
	"github.com/Zachkp/portfolio/internal/store"
	"github.com/Zachkp/portfolio/internal/views"
)

const (
	adminCookie    = "admin_token"
	adminCookieTTL = 24 * 3600

	defaultRadiusKm = 50.0
	defaultMapDays  = 30
)

// AdminStats is the dashboard payload: visitor stats from SQLite plus the
// most viewed slugs from Redis.
type AdminStats struct {
	*store.Stats
	TopViews    []views.SlugCount `json:"top_views"`
	LandingPage pseo.Report       `json:"landing_pages"`
}

func (s *Server) adminRoutes(r *gin.Engine) {
	login := newKeyLimiter(12*time.Second, 5)

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})
	r.POST("/admin/login", func(c *gin.Context) {
		who := s.visitorHash(c)
		if !login.Allow(who) {
			s.log.Warn("admin login rate limited", zap.String("visitor", who))
			c.HTML(http.StatusTooManyRequests, "admin-login.html", gin.H{
				"title": "Admin Login",
				"error": "Too many attempts, try again shortly",
			})
			return
		}
		if !s.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
			s.log.Warn("failed admin login", zap.String("visitor", who))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"title": "Admin Login",
				"error": "Invalid credentials",
			})
			return
		}
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(adminCookie, s.token, adminCookieTTL, "/admin", "", s.secureCookies(), true)
		s.log.Info("admin login", zap.String("visitor", who))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})
	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", s.secureCookies(), true)
		s.log.Info("admin logout", zap.String("visitor", s.visitorHash(c)))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	g := r.Group("/admin")
	g.Use(s.adminAuth())

	g.GET("/dashboard", s.adminDashboard)
	g.GET("/visitors", s.adminVisitors)
	g.GET("/seo", s.adminSEO)
	g.GET("/api/stats", s.adminStatsJSON)
	g.GET("/api/map", s.adminMap)
	g.GET("/api/seo-audit", s.adminAudit)
	g.POST("/privacy/cleanup", s.adminCleanup)
	g.GET("/export/stats", s.adminExport)
}

func (s *Server) secureCookies() bool {
	return strings.HasPrefix(s.cfg.Site.URL, "https://")
}

func (s *Server) checkCredentials(user, pass string) bool {
	u := subtle.ConstantTimeCompare([]byte(user), []byte(s.cfg.Admin.Username))
	p := subtle.ConstantTimeCompare([]byte(pass), []byte(s.cfg.Admin.Password))
	return s.cfg.Admin.Password != "" && u&p == 1
}

func (s *Server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.token)) != 1 {
			if wantsJSON(c) {
				writeError(c, http.StatusUnauthorized, "unauthorized", "admin login required")
				return
			}
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) adminStats(c *gin.Context) (*AdminStats, error) {
	if s.visitors == nil {
		return nil, errNoVisitorStore
	}
	ctx := c.Request.Context()
	st, err := s.visitors.Stats(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.views.Top(ctx, 10)
	if err != nil {
		s.log.Warn("top views unavailable", zap.Error(err))
	}
	return &AdminStats{Stats: st, TopViews: top, LandingPage: s.landing.Report}, nil
}

func (s *Server) adminError(c *gin.Context, msg string, err error) {
	s.log.Error(msg, zap.Error(err))
	if wantsJSON(c) {
		writeError(c, http.StatusInternalServerError, "internal_error", msg)
		return
	}
	c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": msg})
}

func (s *Server) adminDashboard(c *gin.Context) {
	stats, err := s.adminStats(c)
	if err != nil {
		s.adminError(c, "Failed to load statistics", err)
		return
	}
	c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{"stats": stats})
}

func (s *Server) adminStatsJSON(c *gin.Context) {
	stats, err := s.adminStats(c)
	if err != nil {
		s.adminError(c, "Failed to load statistics", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) adminVisitors(c *gin.Context) {
	if s.visitors == nil {
		s.adminError(c, "Failed to load visitors", errNoVisitorStore)
		return
	}
	visitors, err := s.visitors.RecentVisitors(c.Request.Context(), 200)
	if err != nil {
		s.adminError(c, "Failed to load visitors", err)
		return
	}
	c.HTML(http.StatusOK, "admin-visitors.html", gin.H{"visitors": visitors})
}

type mapResponse struct {
	RadiusKm float64       `json:"radius_km"`
	Since    time.Time     `json:"since"`
	Clusters []geo.Cluster `json:"clusters"`
}

// adminMap clusters recent visit coordinates. radius_km must be in
// (0, 20000]; days in [1, retention].
func (s *Server) adminMap(c *gin.Context) {
	radius := defaultRadiusKm
	if v := c.Query("radius_km"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil || !(r > 0 && r <= 20000) {
			writeError(c, http.StatusBadRequest, "invalid_radius", "radius_km must be a number in (0, 20000]")
			return
		}
		radius = r
	}
	days := defaultMapDays
	if v := c.Query("days"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d < 1 || d > s.cfg.Privacy.RetentionDays {
			writeError(c, http.StatusBadRequest, "invalid_days", "days must be between 1 and the retention period")
			return
		}
		days = d
	}
	if s.visitors == nil {
		s.adminError(c, "Failed to load visit locations", errNoVisitorStore)
		return
	}

	since := s.now().Add(-time.Duration(days) * 24 * time.Hour)
	points, err := s.visitors.VisitPoints(c.Request.Context(), since)
	if err != nil {
		s.adminError(c, "Failed to load visit locations", err)
		return
	}
	clusters := geo.ClusterPoints(points, radius)
	if clusters == nil {
		clusters = []geo.Cluster{}
	}
	c.JSON(http.StatusOK, mapResponse{RadiusKm: radius, Since: since.UTC(), Clusters: clusters})
}

func (s *Server) adminAudit(c *gin.Context) {
	c.JSON(http.StatusOK, s.landing.Report)
}

func (s *Server) adminSEO(c *gin.Context) {
	c.HTML(http.StatusOK, "admin-seo.html", gin.H{
		"report": s.landing.Report,
		"codes":  s.landing.Report.Codes(),
	})
}

func (s *Server) adminCleanup(c *gin.Context) {
	if s.visitors == nil {
		s.adminError(c, "Privacy cleanup failed", errNoVisitorStore)
		return
	}
	n, err := s.cleanupVisitors(c.Request.Context())
	if err != nil {
		s.adminError(c, "Privacy cleanup failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Privacy cleanup complete",
		"deleted":        n,
		"retention_days": s.cfg.Privacy.RetentionDays,
	})
}

func (s *Server) adminExport(c *gin.Context) {
	stats, err := s.adminStats(c)
	if err != nil {
		s.adminError(c, "Failed to export statistics", err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
	s.log.Info("admin stats exported", zap.String("visitor", s.visitorHash(c)))
	c.JSON(http.StatusOK, stats)
}
