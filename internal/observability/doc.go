// Package observability provides production-grade observability infrastructure
// including structured logging, Prometheus metrics, and OpenTelemetry tracing.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
//   - tracing: OpenTelemetry tracing middleware and span helpers
//
// Example usage:
//
//	import (
//	    "content-service/internal/observability/logging"
//	    "content-service/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger("info")
//	    logger.Info("application started")
//
//	    metrics.RecordContentOperation("create", metrics.ResultSuccess)
//	}
package observability
