package web

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/blog"
	"github.com/Zachkp/portfolio/internal/pseo"
)

const homePosts = 3

func (s *Server) home(c *gin.Context) {
	posts := s.blog.List(c.Request.Context())
	if len(posts) > homePosts {
		posts = posts[:homePosts]
	}
	featured := s.landing.OfKind(pseo.KindSkill)
	if len(featured) > 6 {
		featured = featured[:6]
	}
	s.render(c, http.StatusOK, "index.html", gin.H{
		"title":       s.profile.Name,
		"description": s.profile.Headline,
		"canonical":   s.gen.Site().BaseURL + "/",
		"profile":     s.profile,
		"projects":    s.profile.Projects(),
		"posts":       posts,
		"featured":    featured,
	})
}

// workContent and educationContent are HTMX fragments swapped into the home
// page.
func (s *Server) workContent(c *gin.Context) {
	c.HTML(http.StatusOK, "work-content.html", gin.H{"entries": s.profile.Work})
}

func (s *Server) educationContent(c *gin.Context) {
	c.HTML(http.StatusOK, "education-content.html", gin.H{"entries": s.profile.Education})
}

func (s *Server) privacy(c *gin.Context) {
	s.render(c, http.StatusOK, "privacy.html", gin.H{
		"title":         "Privacy Policy",
		"retentionDays": s.cfg.Privacy.RetentionDays,
	})
}

func (s *Server) projects(c *gin.Context) {
	s.render(c, http.StatusOK, "projects.html", gin.H{
		"title":       "Projects",
		"description": "Projects by " + s.profile.Name,
		"canonical":   s.gen.Site().BaseURL + "/projects",
		"projects":    s.profile.Projects(),
	})
}

func (s *Server) blogIndex(c *gin.Context) {
	s.render(c, http.StatusOK, "blog-list.html", gin.H{
		"title":       "Blog",
		"description": "Writing by " + s.profile.Name,
		"canonical":   s.gen.Site().BaseURL + "/blog",
		"posts":       s.blog.List(c.Request.Context()),
	})
}

func (s *Server) blogPost(c *gin.Context) {
	slug := c.Param("slug")
	if !validSlug(slug) {
		s.notFound(c)
		return
	}
	ctx := c.Request.Context()
	p, err := s.blog.Get(ctx, slug)
	if errors.Is(err, blog.ErrNotFound) {
		s.notFound(c)
		return
	}
	if err != nil {
		s.log.Error("blog post failed", zap.String("slug", slug), zap.Error(err))
		s.render(c, http.StatusInternalServerError, "error.html", gin.H{
			"title":   "Something went wrong",
			"message": "Sorry, this post could not be loaded.",
		})
		return
	}

	n, err := s.views.Count(ctx, slug)
	if err != nil {
		s.log.Warn("view count unavailable", zap.String("slug", slug), zap.Error(err))
	}
	s.render(c, http.StatusOK, "blog-post.html", gin.H{
		"title":       p.Title,
		"description": p.Summary,
		"canonical":   s.gen.Site().BaseURL + "/blog/" + p.Slug,
		"post":        p,
		// sanitized by blog.Prepare
		"body":  template.HTML(p.HTML),
		"views": n,
	})
}
