// Package metrics exposes the service counters in Prometheus format.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BruksfildServices01/ratemycafe/internal/gateway"
)

const namespace = "ratemycafe"

// Metrics methods are safe on a nil receiver, which records nothing.
type Metrics struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	reviews       *prometheus.CounterVec
	uploads       *prometheus.CounterVec
	gatewayErrors *prometheus.CounterVec
	authEvents    *prometheus.CounterVec
	reconciled    prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests processed.",
		}, []string{"method", "route", "status"}),

		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		reviews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_total",
			Help:      "Review mutations by action.",
		}, []string{"action"}),

		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_uploads_total",
			Help:      "Image uploads by target and result.",
		}, []string{"target", "result"}),

		gatewayErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_errors_total",
			Help:      "Database and storage errors by kind.",
		}, []string{"kind"}),

		authEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_events_total",
			Help:      "Sign-in and sign-out events.",
		}, []string{"event", "method"}),

		reconciled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gallery_reconciled_total",
			Help:      "Galleries whose URL list was repaired.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.latency,
		m.reviews,
		m.uploads,
		m.gatewayErrors,
		m.authEvents,
		m.reconciled,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records every request under its route pattern, and the
// gateway failures handlers attached to the context with c.Error.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.latency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())

		for _, e := range c.Errors {
			var ge *gateway.Error
			if errors.As(e.Err, &ge) {
				m.GatewayError(string(ge.Kind))
			}
		}
	}
}

func (m *Metrics) Review(action string) {
	if m == nil {
		return
	}
	m.reviews.WithLabelValues(action).Inc()
}

func (m *Metrics) Upload(target string, ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.uploads.WithLabelValues(target, result).Inc()
}

func (m *Metrics) GatewayError(kind string) {
	if m == nil {
		return
	}
	m.gatewayErrors.WithLabelValues(kind).Inc()
}

func (m *Metrics) AuthEvent(event, method string) {
	if m == nil {
		return
	}
	m.authEvents.WithLabelValues(event, method).Inc()
}

func (m *Metrics) GalleryReconciled() {
	if m == nil {
		return
	}
	m.reconciled.Inc()
}
