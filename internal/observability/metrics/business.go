package metrics

import "time"

// Result labels for ContentOperationsTotal.
const (
	ResultSuccess  = "success"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

// Result labels for CacheRequestsTotal.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// RecordContentOperation counts one usecase operation.
// Operation is one of list, get, create, update, delete.
func RecordContentOperation(operation, result string) {
	ContentOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateContentItemsTotal sets the stored item gauge.
func UpdateContentItemsTotal(count int64) {
	ContentItemsTotal.Set(float64(count))
}

// RecordCacheLookup counts one cache lookup by result.
func RecordCacheLookup(result string) {
	CacheRequestsTotal.WithLabelValues(result).Inc()
}

// RecordDBQuery records the duration of a repository call.
// Operation should describe the query type (e.g., "list_content", "create_content").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
