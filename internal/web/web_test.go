package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/blog"
	"github.com/Zachkp/portfolio/internal/catalog"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/profile"
	"github.com/Zachkp/portfolio/internal/pseo"
	"github.com/Zachkp/portfolio/internal/store"
	"github.com/Zachkp/portfolio/internal/views"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []ContactMessage
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type testEnv struct {
	srv    *Server
	db     *store.DB
	mailer *fakeMailer
	mr     *miniredis.Miniredis
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Server.Mode = "test"
	cfg.Site.URL = "https://example.com"
	cfg.Admin.Username = "admin"
	cfg.Admin.Password = "secret"

	cat, err := catalog.Default()
	require.NoError(t, err)
	gen := pseo.New(cat, pseo.Site{
		BaseURL: cfg.Site.URL,
		Brand:   cfg.Site.Brand,
		Author:  cfg.Site.Author,
		Email:   cfg.Site.Email,
	}, pseo.Options{
		MinWords:             cfg.SEO.MinWords,
		TitleThreshold:       cfg.SEO.TitleThreshold,
		DescriptionThreshold: cfg.SEO.DescriptionThreshold,
	})

	prof, err := profile.Default()
	require.NoError(t, err)

	db, err := store.Open(filepath.Join(t.TempDir(), "portfolio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(context.Background()))

	post, err := blog.Prepare(blog.Post{
		Slug:        "hello-world",
		Title:       "Hello World",
		Summary:     "The first post.",
		Markdown:    "# Hi\n\nSome **bold** text.",
		PublishedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NoError(t, db.UpsertPosts(context.Background(), []blog.Post{post}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	mailer := &fakeMailer{}
	srv, err := New(context.Background(), Deps{
		Config:    cfg,
		Generator: gen,
		Profile:   prof,
		Blog:      blog.NewService(nil, db, nil),
		Visitors:  db,
		Views:     views.NewRedisCounter(rdb),
		Mailer:    mailer,
	})
	require.NoError(t, err)

	return &testEnv{srv: srv, db: db, mailer: mailer, mr: mr}
}

type reqOpt func(*http.Request)

func withHeader(k, v string) reqOpt {
	return func(r *http.Request) { r.Header.Set(k, v) }
}

func withIP(ip string) reqOpt {
	return func(r *http.Request) { r.RemoteAddr = ip + ":1234" }
}

func withCookie(c *http.Cookie) reqOpt {
	return func(r *http.Request) { r.AddCookie(c) }
}

func (e *testEnv) do(method, target string, body io.Reader, opts ...reqOpt) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, o := range opts {
		o(req)
	}
	rec := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) get(target string, opts ...reqOpt) *httptest.ResponseRecorder {
	return e.do(http.MethodGet, target, nil, opts...)
}

func (e *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()
	form := url.Values{"username": {"admin"}, "password": {"secret"}}
	rec := e.do(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/admin/dashboard", rec.Header().Get("Location"))
	for _, c := range rec.Result().Cookies() {
		if c.Name == adminCookie {
			return c
		}
	}
	t.Fatal("no admin cookie set")
	return nil
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestHome(t *testing.T) {
	e := newTestEnv(t)
	rec := e.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Zach Kordas-Potter")
	assert.Contains(t, body, "Terminal Mail")
	assert.Contains(t, body, `hx-get="/work-content"`)
	assert.Contains(t, body, "/blog/hello-world")
	assert.Contains(t, body, `<link rel="canonical" href="https://example.com/">`)
}

func TestStaticAssets(t *testing.T) {
	e := newTestEnv(t)
	rec := e.get("/static/styles.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
	assert.Contains(t, rec.Body.String(), "--accent")

	assert.Equal(t, http.StatusNotFound, e.get("/static/missing.css").Code)
}

func TestFragments(t *testing.T) {
	e := newTestEnv(t)

	rec := e.get("/work-content")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Target")
	assert.NotContains(t, rec.Body.String(), "<html")

	rec = e.get("/education-content")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Western Governors University")

	rec = e.get("/contact-form")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="fullName"`)
}

func TestContact(t *testing.T) {
	e := newTestEnv(t)
	valid := url.Values{"fullName": {"Ada Lovelace"}, "email": {"ada@example.com"}, "message": {"Hello there"}}

	t.Run("sends", func(t *testing.T) {
		rec := e.do(http.MethodPost, "/contact", strings.NewReader(valid.Encode()), withIP("198.51.100.1"))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Thank you for your message")
		require.Equal(t, 1, e.mailer.count())
		assert.Equal(t, ContactMessage{Name: "Ada Lovelace", Email: "ada@example.com", Message: "Hello there"}, e.mailer.sent[0])
	})

	t.Run("invalid email", func(t *testing.T) {
		form := url.Values{"fullName": {"Ada"}, "email": {"not-an-email"}, "message": {"Hi"}}
		rec := e.do(http.MethodPost, "/contact", strings.NewReader(form.Encode()), withIP("198.51.100.2"))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "valid email address")
		assert.Equal(t, 1, e.mailer.count())
	})

	t.Run("blank message", func(t *testing.T) {
		form := url.Values{"fullName": {"Ada"}, "email": {"ada@example.com"}, "message": {"   "}}
		rec := e.do(http.MethodPost, "/contact", strings.NewReader(form.Encode()), withIP("198.51.100.3"))
		assert.Contains(t, rec.Body.String(), "alert-error")
		assert.Equal(t, 1, e.mailer.count())
	})

	t.Run("rate limited", func(t *testing.T) {
		var last *httptest.ResponseRecorder
		for i := 0; i < 4; i++ {
			last = e.do(http.MethodPost, "/contact", strings.NewReader(valid.Encode()), withIP("198.51.100.4"))
		}
		assert.Equal(t, http.StatusTooManyRequests, last.Code)
		assert.Equal(t, 4, e.mailer.count())
	})

	t.Run("mailer failure", func(t *testing.T) {
		e.mailer.mu.Lock()
		e.mailer.err = errors.New("smtp down")
		e.mailer.mu.Unlock()

		rec := e.do(http.MethodPost, "/contact", strings.NewReader(valid.Encode()), withIP("198.51.100.5"))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "error sending your message")
	})
}

func TestComposeMessage_StripsHeaderInjection(t *testing.T) {
	msg := string(composeMessage("me@example.com", "to@example.com", ContactMessage{
		Name:    "Eve\r\nBcc: victim@example.com",
		Email:   "eve@example.com",
		Message: "hi",
	}))
	assert.Contains(t, msg, "Subject: Portfolio Contact: Eve  Bcc: victim@example.com\r\n")
	assert.NotContains(t, msg, "\r\nBcc:")
	assert.Contains(t, msg, "Reply-To: eve@example.com\r\n")
}

func TestSMTPMailer_NotConfigured(t *testing.T) {
	m := NewSMTPMailer(config.Default())
	err := m.Send(context.Background(), ContactMessage{Name: "a", Email: "a@example.com", Message: "b"})
	assert.ErrorIs(t, err, ErrSMTPNotConfigured)
}

func firstPage(pages []*pseo.Page, indexable bool) *pseo.Page {
	for _, p := range pages {
		if p.Indexable == indexable {
			return p
		}
	}
	return nil
}

func TestLandingPage(t *testing.T) {
	e := newTestEnv(t)
	pages := e.srv.Landing().Pages

	good := firstPage(pages, true)
	require.NotNil(t, good)
	rec := e.get(good.Path)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<script type="application/ld+json">`)
	assert.Contains(t, body, `"@context":"https://schema.org"`)
	assert.Contains(t, body, `<link rel="canonical" href="`+good.CanonicalURL+`">`)
	assert.NotContains(t, body, "noindex")
	assert.Empty(t, rec.Header().Get("X-Robots-Tag"))

	if bad := firstPage(pages, false); bad != nil {
		rec := e.get(bad.Path)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `<meta name="robots" content="noindex, follow">`)
		assert.Equal(t, "noindex, follow", rec.Header().Get("X-Robots-Tag"))
	}

	for _, kind := range []pseo.Kind{pseo.KindRoleLocation, pseo.KindUseCase, pseo.KindSkillLocationIndustry} {
		var p *pseo.Page
		for _, pg := range pages {
			if pg.Params.Kind == kind {
				p = pg
				break
			}
		}
		require.NotNil(t, p, kind)
		assert.Equal(t, http.StatusOK, e.get(p.Path).Code, p.Path)
	}
}

func TestLandingPage_NotFound(t *testing.T) {
	e := newTestEnv(t)
	for _, path := range []string{
		"/hire/cobol",
		"/hire/",
		"/hire/go/in",
		"/hire/go/near/london",
		"/hire/go/in/atlantis",
		"/roles/backend-engineer",
		"/roles/wizard/in/london",
		"/solutions/time-travel",
	} {
		rec := e.get(path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "Page not found", path)
	}
}

func TestLandingPage_FallsBackToGenerate(t *testing.T) {
	e := newTestEnv(t)
	delete(e.srv.landing.byPath, "/hire/go")

	rec := e.get("/hire/go")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>")
}

func TestLandingPage_NonCanonicalPathRedirects(t *testing.T) {
	e := newTestEnv(t)
	pages := e.srv.Landing().Pages

	flagged := firstPage(pages, false)
	if flagged == nil {
		flagged = firstPage(pages, true)
		require.NotNil(t, flagged)
		flagged.Indexable = false
	}

	p, err := e.srv.page(flagged.Path + "/")
	require.NoError(t, err)
	assert.Same(t, flagged, p, "trailing slash resolves to the audited page")

	rec := e.get(flagged.Path + "/?utm_source=x")
	require.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, flagged.Path+"?utm_source=x", rec.Header().Get("Location"))

	rec = e.get(flagged.Path)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<meta name="robots" content="noindex, follow">`)
	assert.Equal(t, "noindex, follow", rec.Header().Get("X-Robots-Tag"))
}

func TestLandingIndexPages(t *testing.T) {
	e := newTestEnv(t)
	rec := e.get("/hire")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/hire/go"`)

	rec = e.get("/solutions")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/solutions/api-development"`)
}

func TestSitemapAndRobots(t *testing.T) {
	e := newTestEnv(t)
	rec := e.get("/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/xml; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "<urlset")
	assert.Contains(t, body, "<loc>https://example.com/</loc>")
	assert.Contains(t, body, "<loc>https://example.com/blog/hello-world</loc>")

	pages := e.srv.Landing().Pages
	assert.Contains(t, body, "<loc>"+firstPage(pages, true).CanonicalURL+"</loc>")
	if bad := firstPage(pages, false); bad != nil {
		assert.NotContains(t, body, "<loc>"+bad.CanonicalURL+"</loc>")
	}

	assert.Equal(t, http.StatusOK, e.get("/sitemaps/sitemap-1.xml").Code)
	assert.Equal(t, http.StatusNotFound, e.get("/sitemaps/sitemap-2.xml").Code)
	assert.Equal(t, http.StatusNotFound, e.get("/sitemaps/other.xml").Code)

	rec = e.get("/robots.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Disallow: /admin/")
	assert.Contains(t, rec.Body.String(), "Sitemap: https://example.com/sitemap.xml")
}

func TestHealthzAndMetrics(t *testing.T) {
	e := newTestEnv(t)

	rec := e.get("/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	var health struct {
		Status string `json:"status"`
		Pages  int    `json:"pages"`
	}
	decode(t, rec, &health)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, len(e.srv.Landing().Pages), health.Pages)

	rec = e.get("/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `portfolio_http_requests_total{method="GET",route="/healthz",status="200"} 1`)
	assert.Contains(t, body, `portfolio_pseo_pages_generated_total{kind="skill"} 14`)
}

func TestRequestID(t *testing.T) {
	e := newTestEnv(t)
	rec := e.get("/healthz", withHeader(headerRequestID, "abc-123"))
	assert.Equal(t, "abc-123", rec.Header().Get(headerRequestID))

	rec = e.get("/healthz")
	assert.Len(t, rec.Header().Get(headerRequestID), 36)
}

func TestRecovery(t *testing.T) {
	e := newTestEnv(t)
	e.srv.engine.GET("/api/boom", func(*gin.Context) { panic("boom") })
	e.srv.engine.GET("/boom", func(*gin.Context) { panic("boom") })

	rec := e.get("/api/boom", withHeader(headerRequestID, "req-9"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var apiErr APIError
	decode(t, rec, &apiErr)
	assert.Equal(t, "internal_error", apiErr.Error.Code)
	assert.Equal(t, "req-9", apiErr.Error.RequestID)

	rec = e.get("/boom")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong")
}

func TestViewsAPI(t *testing.T) {
	e := newTestEnv(t)

	for i := 0; i < 2; i++ {
		rec := e.do(http.MethodPost, "/api/views/hello-world", nil, withIP("203.0.113.7"))
		require.Equal(t, http.StatusOK, rec.Code)
		var got viewsResponse
		decode(t, rec, &got)
		assert.Equal(t, viewsResponse{Slug: "hello-world", Views: 1}, got)
	}

	rec := e.do(http.MethodPost, "/api/views/hello-world", nil, withIP("203.0.113.8"))
	var got viewsResponse
	decode(t, rec, &got)
	assert.Equal(t, int64(2), got.Views)

	rec = e.get("/api/views/hello-world")
	decode(t, rec, &got)
	assert.Equal(t, int64(2), got.Views)

	rec = e.get("/api/views/Not_A_Slug")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var apiErr APIError
	decode(t, rec, &apiErr)
	assert.Equal(t, "invalid_slug", apiErr.Error.Code)

	rec = e.do(http.MethodPost, "/api/views/no-such-post", nil, withIP("203.0.113.7"))
	require.Equal(t, http.StatusNotFound, rec.Code)
	decode(t, rec, &apiErr)
	assert.Equal(t, "unknown_slug", apiErr.Error.Code)
	assert.False(t, e.mr.Exists("pageviews:no-such-post"))
	score, _ := e.mr.ZScore("pageviews:ranking", "no-such-post")
	assert.Zero(t, score)

	e.mr.Close()
	rec = e.get("/api/views/hello-world")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestBlog(t *testing.T) {
	e := newTestEnv(t)

	rec := e.get("/blog")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/blog/hello-world"`)

	rec = e.get("/blog/hello-world")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<strong>bold</strong>")
	assert.Contains(t, body, "Mar 1, 2026")
	assert.Contains(t, body, "0 views")

	assert.Equal(t, http.StatusNotFound, e.get("/blog/missing-post").Code)
	assert.Equal(t, http.StatusNotFound, e.get("/blog/Bad_Slug").Code)
}

func TestTracking(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	e.get("/projects",
		withIP("192.0.2.10"),
		withHeader("User-Agent", "test-agent"),
		withHeader("CF-IPLatitude", "44.98"),
		withHeader("CF-IPLongitude", "-93.27"),
		withHeader("CF-IPCountry", "US"),
	)
	e.get("/projects", withHeader("DNT", "1"))
	e.get("/privacy")
	e.get("/admin/login")
	e.get("/healthz")
	e.get("/no-such-page")
	e.get("/hire/go/")
	e.do(http.MethodPost, "/api/views/hello-world", nil)

	visits, err := e.db.RecentVisitors(ctx, 10)
	require.NoError(t, err)
	require.Len(t, visits, 1)
	v := visits[0]
	assert.Equal(t, "/projects", v.Path)
	assert.Equal(t, "test-agent", v.UserAgent)
	assert.Equal(t, "US", v.Country)
	assert.Len(t, v.HashedIP, 16)
	assert.NotContains(t, v.HashedIP, "192.0.2.10")

	points, err := e.db.VisitPoints(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.InDelta(t, 44.98, points[0].Lat, 1e-9)
}

func TestHasher(t *testing.T) {
	a := hasher{salt: "one"}
	b := hasher{salt: "two"}
	assert.Equal(t, a.hashIP("192.0.2.1"), a.hashIP("192.0.2.1"))
	assert.NotEqual(t, a.hashIP("192.0.2.1"), a.hashIP("192.0.2.2"))
	assert.NotEqual(t, a.hashIP("192.0.2.1"), b.hashIP("192.0.2.1"))
	assert.Len(t, a.hashIP("192.0.2.1"), 16)
}

func TestAdminAuth(t *testing.T) {
	e := newTestEnv(t)

	rec := e.get("/admin/dashboard")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))

	rec = e.get("/admin/api/stats")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.get("/admin/dashboard", withCookie(&http.Cookie{Name: adminCookie, Value: "forged"}))
	assert.Equal(t, http.StatusFound, rec.Code)

	form := url.Values{"username": {"admin"}, "password": {"wrong"}}
	rec = e.do(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()), withIP("192.0.2.50"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")

	cookie := e.login(t)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/admin", cookie.Path)
	assert.True(t, cookie.Secure)

	rec = e.get("/admin/dashboard", withCookie(cookie))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dashboard")

	rec = e.get("/admin/logout", withCookie(cookie))
	assert.Equal(t, http.StatusFound, rec.Code)
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == adminCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestAdminLogin_RateLimited(t *testing.T) {
	e := newTestEnv(t)
	form := url.Values{"username": {"admin"}, "password": {"wrong"}}
	var last *httptest.ResponseRecorder
	for i := 0; i < 6; i++ {
		last = e.do(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()), withIP("192.0.2.60"))
	}
	assert.Equal(t, http.StatusTooManyRequests, last.Code)
}

func TestAdminAPI(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for _, v := range []store.Visit{
		{HashedIP: "aaaa", Path: "/", Timestamp: now.Add(-time.Hour), HasCoords: true, Lat: 44.98, Lng: -93.27, Country: "US"},
		{HashedIP: "bbbb", Path: "/blog", Timestamp: now.Add(-2 * time.Hour), HasCoords: true, Lat: 44.95, Lng: -93.10, Country: "US"},
		{HashedIP: "cccc", Path: "/", Timestamp: now.Add(-3 * time.Hour), HasCoords: true, Lat: 51.51, Lng: -0.13, Country: "GB"},
		{HashedIP: "dddd", Path: "/", Timestamp: now.AddDate(0, 0, -400)},
	} {
		require.NoError(t, e.db.RecordVisit(ctx, v))
	}
	cookie := e.login(t)

	t.Run("stats", func(t *testing.T) {
		rec := e.get("/admin/api/stats", withCookie(cookie))
		require.Equal(t, http.StatusOK, rec.Code)
		var got struct {
			TotalVisitors  int64       `json:"total_visitors"`
			UniqueVisitors int64       `json:"unique_visitors"`
			LandingPages   pseo.Report `json:"landing_pages"`
		}
		decode(t, rec, &got)
		assert.Equal(t, int64(4), got.TotalVisitors)
		assert.Equal(t, int64(4), got.UniqueVisitors)
		assert.Equal(t, len(e.srv.Landing().Pages), got.LandingPages.Total)
	})

	t.Run("map", func(t *testing.T) {
		rec := e.get("/admin/api/map?radius_km=50", withCookie(cookie))
		require.Equal(t, http.StatusOK, rec.Code)
		var got mapResponse
		decode(t, rec, &got)
		assert.Equal(t, 50.0, got.RadiusKm)
		require.Len(t, got.Clusters, 2)
		assert.Equal(t, 2.0, got.Clusters[0].Weight)
		assert.Equal(t, 2, got.Clusters[0].Points)

		for _, q := range []string{"radius_km=0", "radius_km=-5", "radius_km=abc", "days=0", "days=9999"} {
			rec := e.get("/admin/api/map?"+q, withCookie(cookie))
			assert.Equal(t, http.StatusBadRequest, rec.Code, q)
		}
	})

	t.Run("seo audit", func(t *testing.T) {
		rec := e.get("/admin/api/seo-audit", withCookie(cookie))
		require.Equal(t, http.StatusOK, rec.Code)
		var rep pseo.Report
		decode(t, rec, &rep)
		assert.Equal(t, e.srv.Landing().Report.Total, rep.Total)
		assert.Equal(t, e.srv.Landing().Report.Indexable, rep.Indexable)

		rec = e.get("/admin/seo", withCookie(cookie))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Landing page audit")
	})

	t.Run("visitors", func(t *testing.T) {
		rec := e.get("/admin/visitors", withCookie(cookie))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "cccc")
	})

	t.Run("export", func(t *testing.T) {
		rec := e.get("/admin/export/stats", withCookie(cookie))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "attachment; filename=admin-stats.json", rec.Header().Get("Content-Disposition"))
	})

	t.Run("cleanup", func(t *testing.T) {
		rec := e.do(http.MethodPost, "/admin/privacy/cleanup", nil, withCookie(cookie))
		require.Equal(t, http.StatusOK, rec.Code)
		var got struct {
			Deleted int64 `json:"deleted"`
		}
		decode(t, rec, &got)
		assert.Equal(t, int64(1), got.Deleted)

		st, err := e.db.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), st.TotalVisitors)
	})
}

func TestNew_RequiresCoreDeps(t *testing.T) {
	_, err := New(context.Background(), Deps{})
	assert.Error(t, err)
}
