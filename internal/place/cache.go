package place

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const filterCacheKey = "places:filters"

// filterCache keeps the distinct filter values in redis so the three DISTINCT
// scans do not run on every page load. A nil client disables caching.
type filterCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func newFilterCache(rdb *redis.Client, ttl time.Duration) *filterCache {
	return &filterCache{rdb: rdb, ttl: ttl}
}

func (c *filterCache) get(ctx context.Context) (FilterOptions, bool) {
	if c.rdb == nil {
		return FilterOptions{}, false
	}
	raw, err := c.rdb.Get(ctx, filterCacheKey).Bytes()
	if err != nil {
		return FilterOptions{}, false
	}
	var opts FilterOptions
	if err := json.Unmarshal(raw, &opts); err != nil {
		return FilterOptions{}, false
	}
	return opts, true
}

func (c *filterCache) set(ctx context.Context, opts FilterOptions) {
	if c.rdb == nil {
		return
	}
	raw, err := json.Marshal(opts)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, filterCacheKey, raw, c.ttl).Err()
}
