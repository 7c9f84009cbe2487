package web

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/blog"
)

var slugRE = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func validSlug(s string) bool {
	return len(s) <= 100 && slugRE.MatchString(s)
}

type viewsResponse struct {
	Slug  string `json:"slug"`
	Views int64  `json:"views"`
}

func (s *Server) getViews(c *gin.Context) {
	slug := c.Param("slug")
	if !validSlug(slug) {
		writeError(c, http.StatusBadRequest, "invalid_slug", "slug must be lowercase letters, digits and hyphens")
		return
	}
	n, err := s.views.Count(c.Request.Context(), slug)
	if err != nil {
		s.log.Warn("view count failed", zap.String("slug", slug), zap.Error(err))
		writeError(c, http.StatusServiceUnavailable, "views_unavailable", "view counts are unavailable")
		return
	}
	c.JSON(http.StatusOK, viewsResponse{Slug: slug, Views: n})
}

// recordView counts one view per visitor per day; repeats return the
// current total unchanged. Only published posts are counted.
func (s *Server) recordView(c *gin.Context) {
	slug := c.Param("slug")
	if !validSlug(slug) {
		writeError(c, http.StatusBadRequest, "invalid_slug", "slug must be lowercase letters, digits and hyphens")
		return
	}
	if _, err := s.blog.Get(c.Request.Context(), slug); err != nil {
		if !errors.Is(err, blog.ErrNotFound) {
			s.log.Warn("post lookup failed", zap.String("slug", slug), zap.Error(err))
		}
		writeError(c, http.StatusNotFound, "unknown_slug", "no post with that slug")
		return
	}
	n, err := s.views.Record(c.Request.Context(), slug, s.visitorHash(c))
	if err != nil {
		s.log.Warn("view record failed", zap.String("slug", slug), zap.Error(err))
		writeError(c, http.StatusServiceUnavailable, "views_unavailable", "view counts are unavailable")
		return
	}
	c.JSON(http.StatusOK, viewsResponse{Slug: slug, Views: n})
}
