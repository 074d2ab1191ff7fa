package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"content-service/internal/observability/metrics"
)

func TestMetricsMiddleware_NormalizesPath(t *testing.T) {
	h := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/content/:id", "404")
	before := testutil.ToFloat64(counter)

	for _, p := range []string{"/content/1", "/content/2", "/content/abc"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	assert.Equal(t, before+3, testutil.ToFloat64(counter))
}

func TestMetricsMiddleware_ActiveConnectionsReturnToZero(t *testing.T) {
	var during float64
	h := MetricsMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		during = testutil.ToFloat64(metrics.ActiveConnections)
	}))

	before := testutil.ToFloat64(metrics.ActiveConnections)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/content", nil))

	assert.Equal(t, before+1, during)
	assert.Equal(t, before, testutil.ToFloat64(metrics.ActiveConnections))
}

func TestMetricsHandler(t *testing.T) {
	metrics.RecordContentOperation("get", metrics.ResultSuccess)

	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "content_operations_total"))
}
