package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"content-service/internal/domain/entity"
	"content-service/internal/repository"
	"content-service/internal/resilience/circuitbreaker"
)

// ContentRepo implements repository.ContentRepository on PostgreSQL.
// Every statement runs through a database circuit breaker.
type ContentRepo struct {
	db           circuitbreaker.DBTX
	queryBuilder *ContentQueryBuilder
}

// NewContentRepo creates a postgres-backed content repository guarded by the default DB breaker.
func NewContentRepo(db *sql.DB) repository.ContentRepository {
	return NewContentRepoWithDB(circuitbreaker.NewDBCircuitBreaker(db))
}

// NewContentRepoWithDB creates a repository over an arbitrary DBTX.
func NewContentRepoWithDB(db circuitbreaker.DBTX) *ContentRepo {
	return &ContentRepo{
		db:           db,
		queryBuilder: NewContentQueryBuilder(),
	}
}

const returningColumns = `id, title, content, author_id, publication_date, tags`

func (repo *ContentRepo) List(ctx context.Context, filter repository.ContentFilter) ([]*entity.ContentItem, error) {
	query, args, err := repo.queryBuilder.Select(filter)
	if err != nil {
		return nil, fmt.Errorf("List: build: %w", err)
	}
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	capacity := 16
	if filter.Limit > 0 {
		capacity = filter.Limit
	}
	items := make([]*entity.ContentItem, 0, capacity)
	for rows.Next() {
		item, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (repo *ContentRepo) Count(ctx context.Context, filter repository.ContentFilter) (int64, error) {
	query, args, err := repo.queryBuilder.Count(filter)
	if err != nil {
		return 0, fmt.Errorf("Count: build: %w", err)
	}
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var n int64
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("Count: Scan: %w", err)
		}
	}
	return n, rows.Err()
}

func (repo *ContentRepo) Get(ctx context.Context, id int64) (*entity.ContentItem, error) {
	const query = `SELECT ` + returningColumns + ` FROM content_items WHERE id = $1`
	item, err := repo.queryOne(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return item, nil
}

func (repo *ContentRepo) Create(ctx context.Context, fields entity.ContentFields) (*entity.ContentItem, error) {
	const query = `
INSERT INTO content_items (title, content, author_id, tags)
VALUES ($1, $2, $3, $4)
RETURNING ` + returningColumns
	item, err := repo.queryOne(ctx, query,
		fields.Title, fields.Content, fields.AuthorID, pq.Array(entity.CopyTags(fields.Tags)))
	if err != nil {
		return nil, handlePostgresError(err, "Create")
	}
	if item == nil {
		return nil, fmt.Errorf("Create: no row returned")
	}
	return item, nil
}

// Update relies on COALESCE so absent patch fields keep their stored value.
func (repo *ContentRepo) Update(ctx context.Context, id int64, patch entity.ContentPatch) (*entity.ContentItem, error) {
	const query = `
UPDATE content_items
SET title   = COALESCE($2, title),
    content = COALESCE($3, content),
    tags    = COALESCE($4, tags)
WHERE id = $1
RETURNING ` + returningColumns

	var tags any
	if patch.Tags != nil {
		tags = pq.Array(entity.CopyTags(*patch.Tags))
	}
	item, err := repo.queryOne(ctx, query, id, nullableString(patch.Title), nullableString(patch.Content), tags)
	if err != nil {
		return nil, handlePostgresError(err, "Update")
	}
	return item, nil
}

func (repo *ContentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM content_items WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Delete: RowsAffected: %w", err)
	}
	return n > 0, nil
}

// queryOne runs a single-row statement through QueryContext so the breaker sees it.
// It returns (nil, nil) when no row matched.
func (repo *ContentRepo) queryOne(ctx context.Context, query string, args ...any) (*entity.ContentItem, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		return nil, rows.Err()
	}
	item, err := scanContent(rows)
	if err != nil {
		return nil, err
	}
	return item, rows.Err()
}

func scanContent(rows *sql.Rows) (*entity.ContentItem, error) {
	var (
		item      entity.ContentItem
		published time.Time
		tags      pq.StringArray
	)
	if err := rows.Scan(&item.ID, &item.Title, &item.Content, &item.AuthorID, &published, &tags); err != nil {
		return nil, err
	}
	published = published.UTC()
	item.PublicationDate = &published
	item.Tags = entity.CopyTags(tags)
	return &item, nil
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// handlePostgresError maps constraint violations to domain errors.
func handlePostgresError(err error, operation string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23514", "23502": // check_violation, not_null_violation
			return fmt.Errorf("%s: %w: %s", operation, entity.ErrInvalidInput, pgErr.Message)
		default:
			return fmt.Errorf("%s: database error: %s (code: %s): %w", operation, pgErr.Message, pgErr.Code, err)
		}
	}
	return fmt.Errorf("%s: %w", operation, err)
}
