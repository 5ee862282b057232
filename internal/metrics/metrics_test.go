package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/ratemycafe/internal/gateway"
)

func TestCounters(t *testing.T) {
	m := New()

	m.Review("created")
	m.Review("created")
	m.Upload("gallery", false)
	m.AuthEvent("signed_in", "google")
	m.GalleryReconciled()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.reviews.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.uploads.WithLabelValues("gallery", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.authEvents.WithLabelValues("signed_in", "google")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reconciled))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Review("created")
		m.Upload("logo", true)
		m.GatewayError("permission")
		m.AuthEvent("signed_out", "")
		m.GalleryReconciled()
	})
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/cafes/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cafes/abc", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/cafes/:id", "204")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "ratemycafe_http_requests_total"))
}

func TestMiddlewareCountsGatewayErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(gateway.Wrap("list cafes", gateway.ErrForbidden))
		_ = c.Error(errors.New("plain"))
		c.Status(http.StatusForbidden)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.gatewayErrors.WithLabelValues("permission")))
}

func TestNilHandler(t *testing.T) {
	var m *Metrics
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
