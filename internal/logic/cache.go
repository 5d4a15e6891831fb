package logic

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gamecharts/leaderboard-dashboard/internal/models"
)

const redisKeyPrefix = "leaderboard:table:"

// MemoryCache is a bounded in-process table cache. The oldest entry is
// evicted once capacity is reached.
type MemoryCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*models.LeaderboardTable
	order    []string
}

func NewMemoryCache(capacity int) *MemoryCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &MemoryCache{
		capacity: capacity,
		entries:  make(map[string]*models.LeaderboardTable, capacity),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*models.LeaderboardTable, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.entries[key]
	return t, ok
}

func (c *MemoryCache) Put(_ context.Context, key string, table *models.LeaderboardTable) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		c.entries[key] = table
		return
	}
	for len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = table
	c.order = append(c.order, key)
}

func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// RedisCache stores JSON-encoded tables in Redis with a TTL.
// Redis failures are logged and treated as misses.
type RedisCache struct {
	client RedisClient
	ttl    time.Duration
	logger *zap.SugaredLogger
}

func NewRedisCache(client RedisClient, ttl time.Duration, logger *zap.SugaredLogger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*models.LeaderboardTable, bool) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warnw("redis cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	var table models.LeaderboardTable
	if err := json.Unmarshal(data, &table); err != nil {
		c.logger.Warnw("redis cache entry corrupt", "key", key, "error", err)
		return nil, false
	}
	return &table, true
}

func (c *RedisCache) Put(ctx context.Context, key string, table *models.LeaderboardTable) {
	data, err := json.Marshal(table)
	if err != nil {
		c.logger.Warnw("failed to encode table for redis", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, data, c.ttl).Err(); err != nil {
		c.logger.Warnw("redis cache write failed", "key", key, "error", err)
	}
}

// LayeredCache checks each layer in order and back-fills faster layers on a
// hit in a slower one.
type LayeredCache struct {
	layers []namedCache
}

type namedCache struct {
	name  string
	cache TableCache
}

func NewLayeredCache() *LayeredCache {
	return &LayeredCache{}
}

// With appends a layer; layers are consulted in the order they were added.
func (c *LayeredCache) With(name string, cache TableCache) *LayeredCache {
	c.layers = append(c.layers, namedCache{name: name, cache: cache})
	return c
}

func (c *LayeredCache) Get(ctx context.Context, key string) (*models.LeaderboardTable, bool) {
	for i, l := range c.layers {
		if t, ok := l.cache.Get(ctx, key); ok {
			cacheHits.WithLabelValues(l.name).Inc()
			for j := 0; j < i; j++ {
				c.layers[j].cache.Put(ctx, key, t)
			}
			return t, true
		}
	}
	cacheMisses.Inc()
	return nil, false
}

func (c *LayeredCache) Put(ctx context.Context, key string, table *models.LeaderboardTable) {
	for _, l := range c.layers {
		l.cache.Put(ctx, key, table)
	}
}
