// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Business metrics (content operations, stored item count)
//   - Cache and database metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "content-service/internal/observability/metrics"
//
//	func create(ctx context.Context) error {
//	    start := time.Now()
//	    // ... insert ...
//	    metrics.RecordDBQuery("create_content", time.Since(start))
//	    metrics.RecordContentOperation("create", metrics.ResultSuccess)
//	    return nil
//	}
package metrics
