package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"content-service/internal/common/pagination"
	"content-service/internal/domain/entity"
	"content-service/internal/observability/metrics"
	"content-service/internal/observability/tracing"
	"content-service/internal/repository"
)

// Service provides content management use cases.
// Persistence is delegated to Repo.
type Service struct {
	Repo repository.ContentRepository
}

// NewService creates a Service backed by repo.
func NewService(repo repository.ContentRepository) *Service {
	return &Service{Repo: repo}
}

// List returns the items matching filter in insertion order.
// A zero filter returns the whole collection.
func (s *Service) List(ctx context.Context, filter repository.ContentFilter) (items []*entity.ContentItem, err error) {
	ctx, done := s.begin(ctx, "list", filterAttrs(filter)...)
	defer func() { done(err) }()

	items, err = timed("list_content", func() ([]*entity.ContentItem, error) {
		return s.Repo.List(ctx, filter)
	})
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	return items, nil
}

// ListPage returns one page of the items matching filter together with the
// total number of matches. Offset and Limit on filter are overwritten.
func (s *Service) ListPage(ctx context.Context, filter repository.ContentFilter, params pagination.Params) (items []*entity.ContentItem, total int64, err error) {
	ctx, done := s.begin(ctx, "list", append(filterAttrs(filter),
		attribute.Int("pagination.page", params.Page),
		attribute.Int("pagination.limit", params.Limit))...)
	defer func() { done(err) }()

	if err := params.Validate(); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", entity.ErrInvalidInput, err)
	}

	total, err = timed("count_content", func() (int64, error) {
		return s.Repo.Count(ctx, filter)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("count content: %w", err)
	}

	filter.Offset = params.Offset()
	filter.Limit = params.Limit
	items, err = timed("list_content", func() ([]*entity.ContentItem, error) {
		return s.Repo.List(ctx, filter)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list content page: %w", err)
	}
	return items, total, nil
}

// Get retrieves a single item.
// Returns ErrInvalidContentID if id is not positive and ErrContentNotFound if it does not exist.
func (s *Service) Get(ctx context.Context, id int64) (item *entity.ContentItem, err error) {
	ctx, done := s.begin(ctx, "get", attribute.Int64("content.id", id))
	defer func() { done(err) }()

	if id <= 0 {
		return nil, ErrInvalidContentID
	}
	item, err = timed("get_content", func() (*entity.ContentItem, error) {
		return s.Repo.Get(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("get content: %w", err)
	}
	if item == nil {
		return nil, ErrContentNotFound
	}
	return item, nil
}

// Create validates fields and stores a new item.
// Returns a *entity.ValidationError if title or content is blank.
func (s *Service) Create(ctx context.Context, fields entity.ContentFields) (item *entity.ContentItem, err error) {
	ctx, done := s.begin(ctx, "create", attribute.Int64("content.author_id", fields.AuthorID))
	defer func() { done(err) }()

	if err := fields.Validate(); err != nil {
		return nil, err
	}
	fields.Tags = entity.CopyTags(fields.Tags)
	// an abandoned request must not leave a write behind
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}

	item, err = timed("create_content", func() (*entity.ContentItem, error) {
		return s.Repo.Create(ctx, fields)
	})
	if err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}
	return item, nil
}

// Update applies the present fields of patch to an existing item.
// Returns ErrNoUpdatableFields for an empty patch and ErrContentNotFound if the item does not exist.
func (s *Service) Update(ctx context.Context, id int64, patch entity.ContentPatch) (item *entity.ContentItem, err error) {
	ctx, done := s.begin(ctx, "update", attribute.Int64("content.id", id))
	defer func() { done(err) }()

	if id <= 0 {
		return nil, ErrInvalidContentID
	}
	if patch.IsEmpty() {
		return nil, ErrNoUpdatableFields
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("update content: %w", err)
	}

	item, err = timed("update_content", func() (*entity.ContentItem, error) {
		return s.Repo.Update(ctx, id, patch)
	})
	if err != nil {
		return nil, fmt.Errorf("update content: %w", err)
	}
	if item == nil {
		return nil, ErrContentNotFound
	}
	return item, nil
}

// Delete removes an item permanently. Its id is never handed out again.
func (s *Service) Delete(ctx context.Context, id int64) (err error) {
	ctx, done := s.begin(ctx, "delete", attribute.Int64("content.id", id))
	defer func() { done(err) }()

	if id <= 0 {
		return ErrInvalidContentID
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	removed, err := timed("delete_content", func() (bool, error) {
		return s.Repo.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	if !removed {
		return ErrContentNotFound
	}
	return nil
}

// begin starts the operation span and returns a func that ends it and
// records the outcome metric.
func (s *Service) begin(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := tracing.StartSpan(ctx, "content."+op, attrs...)
	return ctx, func(err error) {
		result := Result(err)
		span.SetAttributes(attribute.String("content.result", result))
		if result == metrics.ResultError {
			tracing.RecordError(span, err)
		}
		metrics.RecordContentOperation(op, result)
		span.End()
	}
}

// Result classifies err into a content_operations_total result label.
func Result(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, ErrContentNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, ErrInvalidContentID),
		errors.Is(err, ErrNoUpdatableFields),
		errors.Is(err, entity.ErrValidationFailed),
		errors.Is(err, entity.ErrInvalidInput):
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}

func timed[T any](query string, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fn()
	metrics.RecordDBQuery(query, time.Since(start))
	return v, err
}

func filterAttrs(f repository.ContentFilter) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	if f.Tag != "" {
		attrs = append(attrs, attribute.String("content.filter.tag", f.Tag))
	}
	if f.Query != "" {
		attrs = append(attrs, attribute.Bool("content.filter.query", true))
	}
	return attrs
}
