package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// statsKeyFormat caches computed venue statistics per venue and date range.
const statsKeyFormat = "venue_stats_v1:%d:%s:%s"

// Cache is a thin JSON-value cache over Redis. A nil *Cache is a no-op, so
// callers never need to check whether caching is enabled.
type Cache struct {
	client *redis.Client
}

// New connects to Redis at addr. Returns nil (caching disabled) when addr is
// empty or the server is unreachable.
func New(addr, password string) *Cache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: redis unreachable at %s, statistics caching disabled: %v", addr, err)
		return nil
	}
	log.Println("Redis connection established.")
	return &Cache{client: client}
}

// StatsKey builds the cache key for a venue's statistics over a date range.
func StatsKey(venueID uint, startDate, endDate string) string {
	return fmt.Sprintf(statsKeyFormat, venueID, startDate, endDate)
}

// GetJSON fetches and unmarshals a cached value into dest. Returns false on
// miss or any error.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Printf("failed to unmarshal cached value for %s: %v", key, err)
		return false
	}
	return true
}

// SetJSON marshals and stores a value with the given TTL. Failures are logged
// and swallowed; the cache is best-effort.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("failed to marshal value for %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("failed to cache value for %s: %v", key, err)
	}
}

// Invalidate removes keys matching the venue's statistics prefix. Called when
// a venue's bookings change. A nil context is tolerated for fire-and-forget
// call sites.
func (c *Cache) Invalidate(ctx context.Context, venueID uint) {
	if c == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	pattern := fmt.Sprintf("venue_stats_v1:%d:*", venueID)
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("failed to invalidate stats cache for venue %d: %v", venueID, err)
	}
}
