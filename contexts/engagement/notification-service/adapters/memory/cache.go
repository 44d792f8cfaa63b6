package memory

import (
	"context"
	"sync"

	"helvetia/contexts/engagement/notification-service/domain/entities"
)

// CounterCache is the in-process counter cache used by tests and the
// in-memory module.
type CounterCache struct {
	mu       sync.RWMutex
	counters map[string]entities.Counters
}

func NewCounterCache() *CounterCache {
	return &CounterCache{counters: make(map[string]entities.Counters)}
}

func (c *CounterCache) Get(_ context.Context, userID string) (entities.Counters, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	counters, exists := c.counters[userID]
	return counters, exists, nil
}

func (c *CounterCache) Set(_ context.Context, userID string, counters entities.Counters) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[userID] = counters
	return nil
}

func (c *CounterCache) Zero(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[userID] = entities.Counters{}
	return nil
}

func (c *CounterCache) Invalidate(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.counters, userID)
	return nil
}
