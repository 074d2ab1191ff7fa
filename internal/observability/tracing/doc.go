// Package tracing provides OpenTelemetry tracing integration.
//
// The HTTP middleware starts one server span per request, named after the
// normalized route so item ids do not explode span cardinality. Usecases open
// child spans with StartSpan.
//
// No exporter is configured here; the process uses whatever TracerProvider is
// installed globally (a no-op provider by default).
//
// Example usage:
//
//	func (s *Service) Get(ctx context.Context, id int64) (*entity.ContentItem, error) {
//	    ctx, span := tracing.StartSpan(ctx, "content.Get", attribute.Int64("content.id", id))
//	    defer span.End()
//	    // ...
//	}
package tracing
