// Package cache provides a Redis read-through cache over a ContentRepository.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"content-service/internal/domain/entity"
	"content-service/internal/observability/metrics"
	"content-service/internal/repository"
	"content-service/internal/resilience/circuitbreaker"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultPrefix = "content:item:"

// generationTTL bounds how long an invalidation counter outlives its last bump.
// It must exceed the slowest repository read.
const generationTTL = time.Hour

var errStaleFill = errors.New("cache: generation changed during fill")

// cachedItem is the JSON form stored in Redis.
type cachedItem struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Content         string     `json:"content"`
	AuthorID        int64      `json:"author_id"`
	PublicationDate *time.Time `json:"publication_date"`
	Tags            []string   `json:"tags"`
}

// ContentCache decorates a ContentRepository with a Redis read-through cache for Get.
// Update and Delete invalidate the key after the wrapped call succeeds.
// List and Count are never cached.
//
// Every invalidation bumps a per-item generation counter. A fill only lands
// when the generation still matches the one seen on the miss, so a slow read
// cannot put back an item that was updated or deleted meanwhile.
//
// Redis failures never fail a request: lookups fall through to the wrapped
// repository and a circuit breaker stops calling Redis while it is down.
type ContentCache struct {
	next    repository.ContentRepository
	client  redis.UniversalClient
	ttl     time.Duration
	prefix  string
	breaker *circuitbreaker.CircuitBreaker
	logger  *slog.Logger
}

// Option configures a ContentCache.
type Option func(*ContentCache)

// WithPrefix overrides the "content:item:" key prefix.
func WithPrefix(prefix string) Option {
	return func(c *ContentCache) { c.prefix = prefix }
}

// WithLogger sets the logger used for degraded-cache warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *ContentCache) { c.logger = logger }
}

// New wraps next. A non-positive ttl stores entries without expiry.
func New(next repository.ContentRepository, client redis.UniversalClient, ttl time.Duration, opts ...Option) *ContentCache {
	c := &ContentCache{
		next:    next,
		client:  client,
		ttl:     ttl,
		prefix:  defaultPrefix,
		breaker: circuitbreaker.New(circuitbreaker.CacheConfig()),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.ttl < 0 {
		c.ttl = 0
	}
	return c
}

var _ repository.ContentRepository = (*ContentCache)(nil)

// key and genKey share a hash tag so both land in one cluster slot.
func (c *ContentCache) key(id int64) string {
	return c.prefix + "{" + strconv.FormatInt(id, 10) + "}"
}

func (c *ContentCache) genKey(id int64) string {
	return c.key(id) + ":gen"
}

func (c *ContentCache) List(ctx context.Context, filter repository.ContentFilter) ([]*entity.ContentItem, error) {
	return c.next.List(ctx, filter)
}

func (c *ContentCache) Count(ctx context.Context, filter repository.ContentFilter) (int64, error) {
	return c.next.Count(ctx, filter)
}

// Get serves from Redis when possible and populates it on a miss.
// Absent items are not cached.
func (c *ContentCache) Get(ctx context.Context, id int64) (*entity.ContentItem, error) {
	cached, gen, ok := c.lookup(ctx, id)
	if cached != nil {
		return cached, nil
	}

	item, err := c.next.Get(ctx, id)
	if err != nil || item == nil {
		return item, err
	}
	if ok {
		c.store(ctx, item, gen)
	}
	return item, nil
}

// Create never touches the cache; new ids cannot have stale entries.
func (c *ContentCache) Create(ctx context.Context, fields entity.ContentFields) (*entity.ContentItem, error) {
	return c.next.Create(ctx, fields)
}

func (c *ContentCache) Update(ctx context.Context, id int64, patch entity.ContentPatch) (*entity.ContentItem, error) {
	item, err := c.next.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, id)
	return item, nil
}

func (c *ContentCache) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := c.next.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	c.invalidate(ctx, id)
	return ok, nil
}

// lookup reads the entry and its generation in one round trip. ok is false
// when Redis could not be read, in which case nothing should be stored.
func (c *ContentCache) lookup(ctx context.Context, id int64) (item *entity.ContentItem, gen string, ok bool) {
	vals, err := circuitbreaker.Do(c.breaker, func() ([]any, error) {
		return c.client.MGet(ctx, c.key(id), c.genKey(id)).Result()
	})
	if err != nil {
		metrics.RecordCacheLookup(metrics.CacheError)
		c.warn("cache lookup failed", id, err)
		return nil, "", false
	}
	if g, isStr := vals[1].(string); isStr {
		gen = g
	}
	raw, hit := vals[0].(string)
	if !hit {
		metrics.RecordCacheLookup(metrics.CacheMiss)
		return nil, gen, true
	}

	var rec cachedItem
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		metrics.RecordCacheLookup(metrics.CacheError)
		c.warn("cache entry corrupt", id, err)
		c.drop(ctx, id)
		return nil, gen, true
	}
	metrics.RecordCacheLookup(metrics.CacheHit)
	return &entity.ContentItem{
		ID:              rec.ID,
		Title:           rec.Title,
		Content:         rec.Content,
		AuthorID:        rec.AuthorID,
		PublicationDate: rec.PublicationDate,
		Tags:            entity.CopyTags(rec.Tags),
	}, gen, true
}

// store writes item only if the generation is still gen.
func (c *ContentCache) store(ctx context.Context, item *entity.ContentItem, gen string) {
	b, err := json.Marshal(cachedItem{
		ID:              item.ID,
		Title:           item.Title,
		Content:         item.Content,
		AuthorID:        item.AuthorID,
		PublicationDate: item.PublicationDate,
		Tags:            entity.CopyTags(item.Tags),
	})
	if err != nil {
		c.warn("cache encode failed", item.ID, err)
		return
	}

	key, genKey := c.key(item.ID), c.genKey(item.ID)
	_, err = circuitbreaker.Do(c.breaker, func() (struct{}, error) {
		err := c.client.Watch(ctx, func(tx *redis.Tx) error {
			cur, err := tx.Get(ctx, genKey).Result()
			if err != nil && !errors.Is(err, redis.Nil) {
				return err
			}
			if cur != gen {
				return errStaleFill
			}
			_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
				p.Set(ctx, key, b, c.ttl)
				return nil
			})
			return err
		}, genKey)
		if errors.Is(err, errStaleFill) || errors.Is(err, redis.TxFailedErr) {
			c.logger.Debug("cache fill skipped, item changed", slog.Int64("content_id", item.ID))
			return struct{}{}, nil
		}
		return struct{}{}, err
	})
	if err != nil {
		c.warn("cache store failed", item.ID, err)
	}
}

// invalidate bumps the generation and removes the entry. It always reaches
// Redis, even while the breaker is open.
func (c *ContentCache) invalidate(ctx context.Context, id int64) {
	key, genKey := c.key(id), c.genKey(id)
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, genKey)
		p.Expire(ctx, genKey, generationTTL)
		p.Del(ctx, key)
		return nil
	})
	if err != nil {
		c.warn("cache invalidate failed", id, err)
	}
}

// drop removes a corrupt entry without touching the generation.
func (c *ContentCache) drop(ctx context.Context, id int64) {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		c.warn("cache drop failed", id, err)
	}
}

func (c *ContentCache) warn(msg string, id int64, err error) {
	c.logger.Warn(msg,
		slog.Int64("content_id", id),
		slog.String("error", err.Error()))
}
