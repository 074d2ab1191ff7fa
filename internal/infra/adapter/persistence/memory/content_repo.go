// Package memory provides an in-process implementation of repository.ContentRepository.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"content-service/internal/domain/entity"
	"content-service/internal/repository"
)

// ContentRepo keeps items in an id-keyed map plus an insertion-ordered id list.
// nextID only ever grows, so ids are never handed out twice.
type ContentRepo struct {
	mu     sync.RWMutex
	items  map[int64]*entity.ContentItem
	order  []int64
	nextID int64
	now    func() time.Time
}

// Option configures a ContentRepo.
type Option func(*ContentRepo)

// WithClock overrides the publication-date clock.
func WithClock(now func() time.Time) Option {
	return func(r *ContentRepo) { r.now = now }
}

// NewContentRepo creates an empty repository whose first id is 1.
func NewContentRepo(opts ...Option) *ContentRepo {
	r := &ContentRepo{
		items:  make(map[int64]*entity.ContentItem),
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ repository.ContentRepository = (*ContentRepo)(nil)

func (r *ContentRepo) List(_ context.Context, filter repository.ContentFilter) ([]*entity.ContentItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.ContentItem, 0, len(r.order))
	skipped := 0
	for _, id := range r.order {
		item := r.items[id]
		if !filter.Matches(item) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		out = append(out, item.Clone())
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *ContentRepo) Count(_ context.Context, filter repository.ContentFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, id := range r.order {
		if filter.Matches(r.items[id]) {
			n++
		}
	}
	return n, nil
}

func (r *ContentRepo) Get(_ context.Context, id int64) (*entity.ContentItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return item.Clone(), nil
}

func (r *ContentRepo) Create(_ context.Context, fields entity.ContentFields) (*entity.ContentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	published := r.now()
	item := &entity.ContentItem{
		ID:              r.nextID,
		Title:           fields.Title,
		Content:         fields.Content,
		AuthorID:        fields.AuthorID,
		PublicationDate: &published,
		Tags:            entity.CopyTags(fields.Tags),
	}
	r.nextID++
	r.items[item.ID] = item
	r.order = append(r.order, item.ID)
	return item.Clone(), nil
}

func (r *ContentRepo) Update(_ context.Context, id int64, patch entity.ContentPatch) (*entity.ContentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	patch.Apply(item)
	return item.Clone(), nil
}

func (r *ContentRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return true, nil
}
