// Package resilience provides reliability and fault tolerance patterns for the application.
// It includes circuit breakers and retry logic so that a slow or unavailable
// backing store degrades requests instead of stalling them.
//
// The package supports:
//   - Circuit breakers around SQL and Redis calls
//   - Retry logic with exponential backoff and jitter for database startup
//
// Usage Example:
//
//	guarded := circuitbreaker.NewDBCircuitBreaker(db)
//	rows, err := guarded.QueryContext(ctx, "SELECT id FROM content_items")
//
//	err := retry.WithBackoff(ctx, retry.DBStartupConfig(), func() error {
//	    return db.PingContext(ctx)
//	})
package resilience
