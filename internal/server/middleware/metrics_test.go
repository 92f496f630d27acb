package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func makeRequest(e *echo.Echo, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestMetricsMiddleware(t *testing.T) {
	conf := DefaultMetricsConfig
	conf.Registry = prometheus.NewRegistry()

	e := echo.New()
	e.Use(MetricsWithConfig(conf))

	e.GET("/api/products", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/api/brands", func(c echo.Context) error {
		return c.String(http.StatusInternalServerError, "fail")
	})
	e.GET("/api/categories", func(c echo.Context) error {
		return fmt.Errorf("store down")
	})

	for i := 0; i < 10; i++ {
		makeRequest(e, http.MethodGet, "/api/products")
		makeRequest(e, http.MethodGet, "/api/brands")
	}
	for i := 0; i < 4; i++ {
		makeRequest(e, http.MethodGet, "/api/categories")
	}
	for i := 0; i < 3; i++ {
		makeRequest(e, http.MethodGet, "/api/products/unknown")
	}
	makeRequest(e, http.MethodPost, "/nothing-here")

	body := makeRequest(e, http.MethodGet, "/metrics").Body.String()

	for _, want := range []string{
		`request_duration_seconds_count{code="200",method="GET",path="/api/products"} 10`,
		`request_duration_seconds_count{code="500",method="GET",path="/api/brands"} 10`,
		`request_duration_seconds_count{code="500",method="GET",path="/api/categories"} 4`,
		`request_duration_seconds_count{code="404",method="GET",path="/not-found"} 3`,
		`request_duration_seconds_count{code="404",method="POST",path="/not-found"} 1`,
	} {
		assert.True(t, strings.Contains(body, want), "missing %s", want)
	}
}

func TestMetricsMiddleware_ReRegister(t *testing.T) {
	conf := DefaultMetricsConfig
	conf.Registry = prometheus.NewRegistry()

	assert.NotPanics(t, func() {
		MetricsWithConfig(conf)
		MetricsWithConfig(conf)
	})
}

func TestNormalizeHTTPStatus(t *testing.T) {
	assert.Equal(t, "1xx", normalizeHTTPStatus(101))
	assert.Equal(t, "2xx", normalizeHTTPStatus(200))
	assert.Equal(t, "3xx", normalizeHTTPStatus(304))
	assert.Equal(t, "4xx", normalizeHTTPStatus(499))
	assert.Equal(t, "5xx", normalizeHTTPStatus(503))
}
