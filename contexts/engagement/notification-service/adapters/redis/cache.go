package redisadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"helvetia/contexts/engagement/notification-service/domain/entities"
)

const keyPrefix = "notifications:counters:"

// CounterCache keeps per-user unread counters in Redis with a TTL, so
// stale entries age out even if an invalidation is missed.
type CounterCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCounterCache(client *redis.Client, ttl time.Duration) *CounterCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CounterCache{client: client, ttl: ttl}
}

func (c *CounterCache) Get(ctx context.Context, userID string) (entities.Counters, bool, error) {
	raw, err := c.client.Get(ctx, keyPrefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entities.Counters{}, false, nil
		}
		return entities.Counters{}, false, fmt.Errorf("read counters: %w", err)
	}

	var counters entities.Counters
	if err := json.Unmarshal(raw, &counters); err != nil {
		// A corrupt entry behaves like a miss so the store recomputes it.
		return entities.Counters{}, false, nil
	}
	return counters, true, nil
}

func (c *CounterCache) Set(ctx context.Context, userID string, counters entities.Counters) error {
	raw, err := json.Marshal(counters)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, keyPrefix+userID, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("write counters: %w", err)
	}
	return nil
}

func (c *CounterCache) Zero(ctx context.Context, userID string) error {
	return c.Set(ctx, userID, entities.Counters{})
}

func (c *CounterCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, keyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("drop counters: %w", err)
	}
	return nil
}
