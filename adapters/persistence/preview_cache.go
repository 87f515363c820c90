package persistence

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/careerone/portfolio/internal/application/service"
	"github.com/redis/go-redis/v9"
)

type cacheEntry struct {
	html    string
	expires time.Time
}

type memoryPreviewCache struct {
	ttl time.Duration

	mu      sync.Mutex
	entries map[string]cacheEntry
}

func NewMemoryPreviewCache(ttl time.Duration) service.PreviewCache {
	return &memoryPreviewCache{ttl: ttl, entries: make(map[string]cacheEntry)}
}

func (c *memoryPreviewCache) Get(ctx context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return "", false, nil
	}
	if c.ttl > 0 && time.Now().After(e.expires) {
		delete(c.entries, key)
		return "", false, nil
	}
	return e.html, true, nil
}

func (c *memoryPreviewCache) Set(ctx context.Context, key string, html string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if c.ttl > 0 && now.After(e.expires) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{html: html, expires: now.Add(c.ttl)}
	return nil
}

type redisPreviewCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisPreviewCache(rdb *redis.Client, ttl time.Duration) service.PreviewCache {
	return &redisPreviewCache{rdb: rdb, ttl: ttl}
}

func (c *redisPreviewCache) Get(ctx context.Context, key string) (string, bool, error) {
	html, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return html, true, nil
}

func (c *redisPreviewCache) Set(ctx context.Context, key string, html string) error {
	return c.rdb.Set(ctx, key, html, c.ttl).Err()
}
