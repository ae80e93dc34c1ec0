package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetricsApp(t *testing.T) (*fiber.App, *PrometheusMiddleware, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(m.Handler())
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

	app.Get("/metrics", ok)
	app.Get("/healthz", ok)
	app.Post("/groq/generate", ok)
	app.Delete("/cover-letters", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Lettre de motivation non trouvée")
	})
	app.Get("/upload", ok)
	app.Get("/swagger/*", ok)
	auth := app.Group("/auth")
	auth.Post("/login", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusUnauthorized) })
	return app, m, reg
}

func TestPrometheusMiddleware_RouteLabels(t *testing.T) {
	app, m, _ := newMetricsApp(t)

	tests := []struct {
		method, target     string
		wantPath, wantCode string
	}{
		{http.MethodPost, "/groq/generate", "/groq/generate", "200"},
		{http.MethodDelete, "/cover-letters?id=123", "/cover-letters", "404"},
		{http.MethodGet, "/upload?userId=u1", "/upload", "200"},
		{http.MethodPost, "/auth/login", "/auth/login", "401"},
		{http.MethodGet, "/swagger/index.html", "/swagger/*", "200"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			_, err := app.Test(httptest.NewRequest(tt.method, tt.target, nil))
			require.NoError(t, err)

			assert.Equal(t, float64(1), testutil.ToFloat64(m.requestCount.WithLabelValues(tt.method, tt.wantPath, tt.wantCode)))
		})
	}

	// Query strings and wildcard values never become label values.
	assert.Equal(t, len(tests), testutil.CollectAndCount(m.requestCount))
}

func TestPrometheusMiddleware_SkipsInfrastructurePaths(t *testing.T) {
	app, m, _ := newMetricsApp(t)

	for _, p := range []string{"/metrics", "/healthz"} {
		_, err := app.Test(httptest.NewRequest(http.MethodGet, p, nil))
		require.NoError(t, err)
	}

	assert.Zero(t, testutil.CollectAndCount(m.requestCount))
	assert.Zero(t, testutil.CollectAndCount(m.requestDuration))
}

func TestPrometheusMiddleware_LatencyBuckets(t *testing.T) {
	app, _, reg := newMetricsApp(t)

	_, err := app.Test(httptest.NewRequest(http.MethodPost, "/groq/generate", nil))
	require.NoError(t, err)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	var bounds []float64
	for _, mf := range mfs {
		if mf.GetName() != "http_request_duration_seconds" {
			continue
		}
		require.Len(t, mf.GetMetric(), 1)
		h := mf.GetMetric()[0].GetHistogram()
		assert.Equal(t, uint64(1), h.GetSampleCount())
		for _, b := range h.GetBucket() {
			bounds = append(bounds, b.GetUpperBound())
		}
	}
	assert.Equal(t, latencyBuckets, bounds)
	assert.Equal(t, float64(60), bounds[len(bounds)-1])
}

func TestNewPrometheusMiddleware_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	_, err = NewPrometheusMiddleware(reg)
	assert.Error(t, err)
}
