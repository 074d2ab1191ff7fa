// Package http provides the cross-cutting HTTP layer of the content service:
// middleware, health and metrics endpoints. Resource handlers live in subpackages.
package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"content-service/internal/handler/http/respond"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // RFC 3339
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"` // "healthy", "degraded" or "unhealthy"
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// Checker probes one dependency.
type Checker interface {
	Name() string
	Check(ctx context.Context) CheckStatus
}

// HealthHandler reports the status of every configured dependency.
// With no checkers (in-memory storage) it is always healthy.
type HealthHandler struct {
	Checkers []Checker
	Version  string
	Timeout  time.Duration
}

// ServeHTTP returns 200 when no check is unhealthy, 503 otherwise.
// A degraded check is reported but does not fail the endpoint.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	checks := make(map[string]CheckStatus, len(h.Checkers))
	healthy := true
	for _, c := range h.Checkers {
		st := c.Check(ctx)
		checks[c.Name()] = st
		if st.Status == "unhealthy" {
			healthy = false
		}
	}

	status, code := "healthy", http.StatusOK
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

// LiveHandler answers liveness probes; it never touches dependencies.
type LiveHandler struct{}

func (LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// SQLChecker pings a database pool and reports its statistics.
type SQLChecker struct {
	DB *sql.DB
}

func (SQLChecker) Name() string { return "database" }

func (c SQLChecker) Check(ctx context.Context) CheckStatus {
	if err := c.DB.PingContext(ctx); err != nil {
		return CheckStatus{Status: "unhealthy", Message: respond.SanitizeError(err)}
	}

	stats := c.DB.Stats()
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}
	if stats.MaxOpenConnections == 0 {
		return CheckStatus{Status: "healthy", Details: details}
	}

	utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
	details["utilization_percent"] = utilization
	// single-connection pools (sqlite) are always fully used while a query runs
	if utilization >= 80.0 && stats.MaxOpenConnections > 1 {
		return CheckStatus{
			Status:  "degraded",
			Message: "connection pool utilization above 80%",
			Details: details,
		}
	}
	return CheckStatus{Status: "healthy", Details: details}
}

// RedisChecker pings the cache.
type RedisChecker struct {
	Client redis.UniversalClient
}

func (RedisChecker) Name() string { return "cache" }

// Check reports a failing cache as degraded, since reads fall back to storage.
func (c RedisChecker) Check(ctx context.Context) CheckStatus {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return CheckStatus{Status: "degraded", Message: respond.SanitizeError(err)}
	}
	return CheckStatus{Status: "healthy"}
}
