package appointments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SlotCache caches the free-slot list per date. Get returns (nil, nil) on a
// miss. Implementations must treat the cache as advisory: the datastore is
// authoritative and the booking path never consults the cache.
type SlotCache interface {
	Get(ctx context.Context, date string) ([]string, error)
	Set(ctx context.Context, date string, times []string) error
	Invalidate(ctx context.Context, date string) error
}

// RedisSlotCache stores the per-date free-slot list in Redis with a short TTL.
type RedisSlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSlotCache creates a cache over the given client.
func NewRedisSlotCache(client *redis.Client, ttl time.Duration) *RedisSlotCache {
	if client == nil {
		panic("appointments: redis client required")
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisSlotCache{client: client, ttl: ttl}
}

func slotCacheKey(date string) string {
	return "booking:slots:" + date
}

// Get returns the cached free-slot list for the date, or (nil, nil) on a miss.
func (c *RedisSlotCache) Get(ctx context.Context, date string) ([]string, error) {
	raw, err := c.client.Get(ctx, slotCacheKey(date)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("slot cache: get %s: %w", date, err)
	}

	var times []string
	if err := json.Unmarshal([]byte(raw), &times); err != nil {
		return nil, fmt.Errorf("slot cache: decode %s: %w", date, err)
	}
	if times == nil {
		times = []string{}
	}
	return times, nil
}

// Set stores the free-slot list for the date.
func (c *RedisSlotCache) Set(ctx context.Context, date string, times []string) error {
	if times == nil {
		times = []string{}
	}
	raw, err := json.Marshal(times)
	if err != nil {
		return fmt.Errorf("slot cache: encode %s: %w", date, err)
	}
	if err := c.client.Set(ctx, slotCacheKey(date), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("slot cache: set %s: %w", date, err)
	}
	return nil
}

// Invalidate drops the cached list for the date. Called after every
// successful booking so availability never serves a just-taken slot for
// longer than one datastore round trip.
func (c *RedisSlotCache) Invalidate(ctx context.Context, date string) error {
	if err := c.client.Del(ctx, slotCacheKey(date)).Err(); err != nil {
		return fmt.Errorf("slot cache: invalidate %s: %w", date, err)
	}
	return nil
}
