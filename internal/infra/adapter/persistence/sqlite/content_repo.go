// Package sqlite provides SQLite implementations of repository interfaces.
// Tags are stored as a JSON array in a TEXT column and publication dates as RFC 3339 text.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"content-service/internal/domain/entity"
	"content-service/internal/repository"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ContentRepo implements repository.ContentRepository using SQLite.
type ContentRepo struct {
	db  *sqlx.DB
	now func() time.Time
}

// Option configures a ContentRepo.
type Option func(*ContentRepo)

// WithClock overrides the publication date source.
func WithClock(now func() time.Time) Option {
	return func(r *ContentRepo) { r.now = now }
}

// NewContentRepo creates a new SQLite-backed content repository.
func NewContentRepo(db *sql.DB, opts ...Option) *ContentRepo {
	r := &ContentRepo{
		db:  sqlx.NewDb(db, "sqlite"),
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ repository.ContentRepository = (*ContentRepo)(nil)

type contentRecord struct {
	ID              int64  `db:"id"`
	Title           string `db:"title"`
	Content         string `db:"content"`
	AuthorID        int64  `db:"author_id"`
	PublicationDate string `db:"publication_date"`
	Tags            string `db:"tags"`
}

func (rec contentRecord) toEntity() (*entity.ContentItem, error) {
	published, err := time.Parse(time.RFC3339Nano, rec.PublicationDate)
	if err != nil {
		return nil, fmt.Errorf("parse publication_date %q: %w", rec.PublicationDate, err)
	}
	published = published.UTC()
	var tags []string
	if rec.Tags != "" {
		if err := json.Unmarshal([]byte(rec.Tags), &tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
	}
	return &entity.ContentItem{
		ID:              rec.ID,
		Title:           rec.Title,
		Content:         rec.Content,
		AuthorID:        rec.AuthorID,
		PublicationDate: &published,
		Tags:            entity.CopyTags(tags),
	}, nil
}

func encodeTags(tags []string) (string, error) {
	b, err := json.Marshal(entity.CopyTags(tags))
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

const selectContent = `SELECT id, title, content, author_id, publication_date, tags FROM content_items`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// whereClause renders the Tag and Query conditions with ? placeholders.
// LIKE in SQLite folds ASCII case only.
func whereClause(filter repository.ContentFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.Tag != "" {
		conds = append(conds, `EXISTS (SELECT 1 FROM json_each(content_items.tags) WHERE json_each.value = ?)`)
		args = append(args, filter.Tag)
	}
	if filter.Query != "" {
		pattern := "%" + likeEscaper.Replace(filter.Query) + "%"
		conds = append(conds, `(title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List retrieves matching items in id order.
func (repo *ContentRepo) List(ctx context.Context, filter repository.ContentFilter) ([]*entity.ContentItem, error) {
	where, args := whereClause(filter)
	query := selectContent + where + " ORDER BY id ASC"
	if filter.Limit > 0 || filter.Offset > 0 {
		limit := -1
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, filter.Offset)
	}

	var recs []contentRecord
	if err := repo.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("List: SelectContext: %w", err)
	}
	items := make([]*entity.ContentItem, 0, len(recs))
	for _, rec := range recs {
		item, err := rec.toEntity()
		if err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Count returns how many items match the filter.
func (repo *ContentRepo) Count(ctx context.Context, filter repository.ContentFilter) (int64, error) {
	where, args := whereClause(filter)
	var n int64
	if err := repo.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM content_items`+where, args...); err != nil {
		return 0, fmt.Errorf("Count: GetContext: %w", err)
	}
	return n, nil
}

// Get returns (nil, nil) when the id is unknown.
func (repo *ContentRepo) Get(ctx context.Context, id int64) (*entity.ContentItem, error) {
	item, err := getContent(ctx, repo.db, id)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return item, nil
}

// Create inserts a new item stamped with the repository clock.
func (repo *ContentRepo) Create(ctx context.Context, fields entity.ContentFields) (*entity.ContentItem, error) {
	tags, err := encodeTags(fields.Tags)
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	published := repo.now().UTC()

	res, err := repo.db.ExecContext(ctx,
		`INSERT INTO content_items (title, content, author_id, publication_date, tags) VALUES (?, ?, ?, ?, ?)`,
		fields.Title, fields.Content, fields.AuthorID, published.Format(time.RFC3339Nano), tags)
	if err != nil {
		return nil, fmt.Errorf("Create: ExecContext: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("Create: LastInsertId: %w", err)
	}
	return &entity.ContentItem{
		ID:              id,
		Title:           fields.Title,
		Content:         fields.Content,
		AuthorID:        fields.AuthorID,
		PublicationDate: &published,
		Tags:            entity.CopyTags(fields.Tags),
	}, nil
}

// Update reads, patches and writes the row inside one transaction.
func (repo *ContentRepo) Update(ctx context.Context, id int64, patch entity.ContentPatch) (*entity.ContentItem, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Update: BeginTxx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	item, err := getContent(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	if item == nil {
		return nil, nil
	}
	patch.Apply(item)

	tags, err := encodeTags(item.Tags)
	if err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE content_items SET title = ?, content = ?, tags = ? WHERE id = ?`,
		item.Title, item.Content, tags, id); err != nil {
		return nil, fmt.Errorf("Update: ExecContext: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("Update: Commit: %w", err)
	}
	return item, nil
}

// Delete reports whether a row was removed.
func (repo *ContentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM content_items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("Delete: ExecContext: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Delete: RowsAffected: %w", err)
	}
	return n > 0, nil
}

func getContent(ctx context.Context, q sqlx.QueryerContext, id int64) (*entity.ContentItem, error) {
	var rec contentRecord
	err := sqlx.GetContext(ctx, q, &rec, selectContent+` WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec.toEntity()
}
