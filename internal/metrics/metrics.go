// Package metrics defines the Prometheus collectors exposed at /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Zachkp/portfolio/internal/pseo"
)

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	pagesGen      *prometheus.CounterVec
	pagesFlagged  *prometheus.CounterVec
	contactEmails *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portfolio_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		pagesGen: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_pseo_pages_generated_total",
			Help: "Landing pages generated, by kind.",
		}, []string{"kind"}),
		pagesFlagged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_pseo_pages_flagged_total",
			Help: "Audit issues on generated landing pages, by code.",
		}, []string{"code"}),
		contactEmails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_contact_messages_total",
			Help: "Contact form submissions by outcome.",
		}, []string{"outcome"}),
	}
	m.Registry.MustRegister(
		m.requests, m.duration, m.pagesGen, m.pagesFlagged, m.contactEmails,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Middleware records request counts and latency. Routes are labelled by
// their gin pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// ObservePages counts generated pages by kind and audit issues by code.
func (m *Metrics) ObservePages(pages []*pseo.Page) {
	for _, p := range pages {
		m.pagesGen.WithLabelValues(string(p.Params.Kind)).Inc()
		for _, is := range p.Issues {
			m.pagesFlagged.WithLabelValues(is.Code).Inc()
		}
	}
}

func (m *Metrics) ContactMessage(outcome string) {
	m.contactEmails.WithLabelValues(outcome).Inc()
}
