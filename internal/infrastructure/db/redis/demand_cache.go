package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	demandKey        = "popularity:tour_orders"
	defaultDemandTTL = 5 * time.Minute
)

// DemandCache holds the per-tour order counts used for popularity ranking.
type DemandCache struct {
	client  *redis.Client
	ttl     time.Duration
	observe func(result string)
}

// NewDemandCache returns a cache with the given TTL. observe, when non-nil,
// is told "hit", "miss" or "error" on every read.
func NewDemandCache(client *redis.Client, ttl time.Duration, observe func(result string)) *DemandCache {
	if ttl <= 0 {
		ttl = defaultDemandTTL
	}
	if observe == nil {
		observe = func(string) {}
	}
	return &DemandCache{client: client, ttl: ttl, observe: observe}
}

func (c *DemandCache) Get(ctx context.Context) (map[string]int64, bool, error) {
	raw, err := c.client.Get(ctx, demandKey).Bytes()
	if err == redis.Nil {
		c.observe("miss")
		return nil, false, nil
	}
	if err != nil {
		c.observe("error")
		return nil, false, fmt.Errorf("demand cache get: %w", err)
	}

	counts := make(map[string]int64)
	if err := json.Unmarshal(raw, &counts); err != nil {
		c.observe("error")
		return nil, false, fmt.Errorf("demand cache decode: %w", err)
	}
	c.observe("hit")
	return counts, true, nil
}

func (c *DemandCache) Set(ctx context.Context, counts map[string]int64) error {
	raw, err := json.Marshal(counts)
	if err != nil {
		return fmt.Errorf("demand cache encode: %w", err)
	}
	return c.client.Set(ctx, demandKey, raw, c.ttl).Err()
}

func (c *DemandCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, demandKey).Err()
}
