package redisadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"helvetia/contexts/identity/account-service/domain/entities"
)

const keyPrefix = "sessions:"

// SessionCache persists denormalized sessions in Redis so a process
// restart or a second instance sees the same warm sessions.
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionCache(client *redis.Client, ttl time.Duration) *SessionCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionCache{client: client, ttl: ttl}
}

func (c *SessionCache) Get(ctx context.Context, userID string) (entities.Session, bool, error) {
	raw, err := c.client.Get(ctx, keyPrefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entities.Session{}, false, nil
		}
		return entities.Session{}, false, fmt.Errorf("read session: %w", err)
	}

	var session entities.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		// A corrupt entry behaves like a miss so the store reloads it.
		return entities.Session{}, false, nil
	}
	return session, true, nil
}

func (c *SessionCache) Set(ctx context.Context, userID string, session entities.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, keyPrefix+userID, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (c *SessionCache) Delete(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, keyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("drop session: %w", err)
	}
	return nil
}
