package repository

import (
	"context"
	"slices"
	"strings"

	"content-service/internal/domain/entity"
)

// ContentFilter narrows List and Count. The zero value selects every item.
type ContentFilter struct {
	Tag    string // Optional: exact tag membership
	Query  string // Optional: case-insensitive substring of title or content
	Offset int    // Rows to skip
	Limit  int    // Maximum rows to return; 0 means no limit
}

// IsZero reports whether the filter selects every item.
func (f ContentFilter) IsZero() bool {
	return f == ContentFilter{}
}

// ContentRepository is the sole owner of content identity and storage.
type ContentRepository interface {
	// List returns matching items in insertion (id) order.
	List(ctx context.Context, filter ContentFilter) ([]*entity.ContentItem, error)
	// Count returns the number of items matching Tag and Query; Offset and Limit are ignored.
	Count(ctx context.Context, filter ContentFilter) (int64, error)
	// Get returns (nil, nil) if the item is not found.
	Get(ctx context.Context, id int64) (*entity.ContentItem, error)
	// Create assigns the next unused id and stamps the publication date.
	// Ids are never reused, even after deletes.
	Create(ctx context.Context, fields entity.ContentFields) (*entity.ContentItem, error)
	// Update applies only the fields present in patch.
	// Returns (nil, nil) if the item is not found.
	Update(ctx context.Context, id int64, patch entity.ContentPatch) (*entity.ContentItem, error)
	// Delete reports whether an item was removed.
	Delete(ctx context.Context, id int64) (bool, error)
}

// Matches reports whether item satisfies the Tag and Query conditions of f.
// Stores that filter in process use it so every adapter agrees on semantics.
func (f ContentFilter) Matches(item *entity.ContentItem) bool {
	if f.Tag != "" && !slices.Contains(item.Tags, f.Tag) {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(item.Title), q) &&
			!strings.Contains(strings.ToLower(item.Content), q) {
			return false
		}
	}
	return true
}
