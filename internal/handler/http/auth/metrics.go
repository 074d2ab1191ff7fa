package auth

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels for auth_requests_total.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	// authRequestsTotal counts credential checks and token requests by result.
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total authentication requests by result",
		},
		[]string{"result"},
	)

	authDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auth_duration_seconds",
			Help:    "Authentication duration",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5},
		},
	)
)

// RecordAuthRequest records an authentication request.
func RecordAuthRequest(result string) {
	authRequestsTotal.WithLabelValues(result).Inc()
}

// RecordAuthDuration records authentication duration.
func RecordAuthDuration(d time.Duration) {
	authDuration.Observe(d.Seconds())
}
