package company

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const detailCacheTTL = 5 * time.Minute

// CachedRepository wraps a Repository with a Redis read-through cache on Get.
// Writes invalidate the cached detail; cache failures are logged and the
// request falls through to storage, never to the client.
type CachedRepository struct {
	inner Repository
	rdb   *redis.Client
}

// NewCachedRepository decorates inner with rdb-backed caching.
func NewCachedRepository(inner Repository, rdb *redis.Client) *CachedRepository {
	return &CachedRepository{inner: inner, rdb: rdb}
}

func detailKey(handle string) string { return "company:detail:" + handle }

// Create passes through; a fresh handle has nothing cached.
func (r *CachedRepository) Create(ctx context.Context, c Company) (*Company, error) {
	return r.inner.Create(ctx, c)
}

// FindAll passes through; listing is filtered per request and not cached.
func (r *CachedRepository) FindAll(ctx context.Context, f Filter) ([]Company, error) {
	return r.inner.FindAll(ctx, f)
}

// Get serves the company detail from Redis when present, otherwise loads it
// from the inner repository and caches the result.
func (r *CachedRepository) Get(ctx context.Context, handle string) (*Detail, error) {
	raw, err := r.rdb.Get(ctx, detailKey(handle)).Bytes()
	if err == nil {
		var d Detail
		if err := json.Unmarshal(raw, &d); err == nil {
			return &d, nil
		}
		slog.Warn("corrupt cached company detail, refetching", "handle", handle)
	} else if err != redis.Nil {
		slog.Warn("company cache read failed", "handle", handle, "err", err)
	}

	d, err := r.inner.Get(ctx, handle)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(d); err == nil {
		if err := r.rdb.Set(ctx, detailKey(handle), raw, detailCacheTTL).Err(); err != nil {
			slog.Warn("company cache write failed", "handle", handle, "err", err)
		}
	}
	return d, nil
}

// Update writes through and drops the stale detail.
func (r *CachedRepository) Update(ctx context.Context, handle string, u Update) (*Company, error) {
	updated, err := r.inner.Update(ctx, handle, u)
	if err != nil {
		return nil, err
	}
	r.Invalidate(ctx, handle)
	return updated, nil
}

// Remove deletes and drops the cached detail.
func (r *CachedRepository) Remove(ctx context.Context, handle string) error {
	if err := r.inner.Remove(ctx, handle); err != nil {
		return err
	}
	r.Invalidate(ctx, handle)
	return nil
}

// Invalidate drops the cached detail for handle. Job mutations call this too,
// since the detail embeds the job sub-collection.
func (r *CachedRepository) Invalidate(ctx context.Context, handle string) {
	if err := r.rdb.Del(ctx, detailKey(handle)).Err(); err != nil {
		slog.Warn("company cache invalidation failed", "handle", handle, "err", err)
	}
}
