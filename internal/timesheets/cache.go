package timesheets

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const countsKeyPrefix = "timesheets:counts:"

// CountsCache keeps per-manager derived counts in Redis for a short TTL.
// Counts are always recomputed from the records on a miss, never maintained
// incrementally, so an invalidation is only ever a freshness hint.
type CountsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCountsCache instantiates the cache helper.
func NewCountsCache(client *redis.Client, ttl time.Duration) *CountsCache {
	return &CountsCache{client: client, ttl: ttl}
}

// Fetch loads cached counts or populates them using the loader. A nil cache
// or client degrades to calling the loader directly.
func (c *CountsCache) Fetch(ctx context.Context, managerID string, loader func(context.Context) (Counts, error)) (Counts, error) {
	if loader == nil {
		return Counts{}, errors.New("cache: loader required")
	}
	if c == nil || c.client == nil {
		return loader(ctx)
	}
	key := countsKeyPrefix + managerID
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var counts Counts
		if err := json.Unmarshal(payload, &counts); err == nil {
			return counts, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		return loader(ctx)
	}

	counts, err := loader(ctx)
	if err != nil {
		return Counts{}, err
	}
	if raw, err := json.Marshal(counts); err == nil {
		_ = c.client.Set(ctx, key, raw, c.ttl).Err()
	}
	return counts, nil
}

// Invalidate drops the cached counts for a manager after a mutation.
func (c *CountsCache) Invalidate(ctx context.Context, managerID string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, countsKeyPrefix+managerID).Err()
}
