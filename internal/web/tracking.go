package web

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Zachkp/portfolio/internal/geo"
	"github.com/Zachkp/portfolio/internal/store"
)

// untracked paths are never recorded: assets, the admin area, machine
// endpoints and the privacy notice itself.
var untracked = []string{
	"/static/", "/admin/", "/favicon", "/privacy",
	"/api/", "/metrics", "/healthz", "/robots.txt", "/sitemap",
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// hasher salts and hashes client IPs so raw addresses are never stored. The
// salt lives only in memory, so hashes cannot be linked across restarts.
type hasher struct {
	salt string
}

func (h hasher) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + h.salt))
	return hex.EncodeToString(sum[:])[:16]
}

func (s *Server) visitorHash(c *gin.Context) string {
	return s.hasher.hashIP(c.ClientIP())
}

// trackVisitors records successful page views once the handler is done.
// Do Not Track is honoured.
func (s *Server) trackVisitors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if s.visitors == nil || c.GetHeader("DNT") == "1" {
			return
		}
		if m := c.Request.Method; m != http.MethodGet && m != http.MethodHead {
			return
		}
		if c.Writer.Status() >= http.StatusMultipleChoices {
			return
		}
		path := c.Request.URL.Path
		for _, p := range untracked {
			if strings.HasPrefix(path, p) {
				return
			}
		}

		v := store.Visit{
			HashedIP:  s.visitorHash(c),
			UserAgent: truncate(c.GetHeader("User-Agent"), 256),
			Path:      path,
		}
		if pt, country, ok := geo.FromHeaders(c.Request.Header); ok {
			v.HasCoords, v.Lat, v.Lng, v.Country = true, pt.Lat, pt.Lng, country
		} else {
			v.Country = country
		}

		// detached from the request so a closed connection does not drop it
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.visitors.RecordVisit(ctx, v); err != nil {
			s.log.Warn("failed to record visitor", zap.Error(err))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// keyLimiter rate-limits per key (hashed IP).
type keyLimiter struct {
	mu sync.Mutex
	m  map[string]*rate.Limiter
	r  rate.Limit
	b  int
}

func newKeyLimiter(every time.Duration, burst int) *keyLimiter {
	return &keyLimiter{m: map[string]*rate.Limiter{}, r: rate.Every(every), b: burst}
}

func (kl *keyLimiter) Allow(key string) bool {
	kl.mu.Lock()
	lim, ok := kl.m[key]
	if !ok {
		// keep the map bounded; a reset only forgives a few clients early
		if len(kl.m) > 10000 {
			kl.m = map[string]*rate.Limiter{}
		}
		lim = rate.NewLimiter(kl.r, kl.b)
		kl.m[key] = lim
	}
	kl.mu.Unlock()
	return lim.Allow()
}
