package logic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gamecharts/leaderboard-dashboard/internal/models"
)

// MockRedisClient is an in-memory RedisClient
type MockRedisClient struct {
	data    map[string]string
	SetErr  error
	gets    int
	lastTTL time.Duration
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{data: make(map[string]string)}
}

func (m *MockRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	m.gets++
	cmd := redis.NewStringCmd(ctx, "get", key)
	if v, ok := m.data[key]; ok {
		cmd.SetVal(v)
	} else {
		cmd.SetErr(redis.Nil)
	}
	return cmd
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "set", key)
	if m.SetErr != nil {
		cmd.SetErr(m.SetErr)
		return cmd
	}
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	m.lastTTL = expiration
	cmd.SetVal("OK")
	return cmd
}

func TestMemoryCache_EvictsOldest(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2)
	c.Put(ctx, "a", tableOf("Free"))
	c.Put(ctx, "b", tableOf("Paid"))
	c.Put(ctx, "c", tableOf("Grossing"))

	if _, ok := c.Get(ctx, "a"); ok {
		t.Error("oldest entry should have been evicted")
	}
	if _, ok := c.Get(ctx, "c"); !ok {
		t.Error("newest entry missing")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestRedisCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	client := NewMockRedisClient()
	c := NewRedisCache(client, time.Minute, zap.NewNop().Sugar())

	table := tableOf("Free", "Paid")
	table.Rows[0].Rating = models.ParseRating("Teen")
	c.Put(ctx, "k", table)
	if client.lastTTL != time.Minute {
		t.Errorf("ttl = %v, want 1m", client.lastTTL)
	}
	if _, ok := client.data[redisKeyPrefix+"k"]; !ok {
		t.Fatal("entry not written under the prefixed key")
	}

	got, ok := c.Get(ctx, "k")
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Len() != 2 || got.Rows[1].Category != "Paid" {
		t.Errorf("rows = %+v", got.Rows)
	}
	if got.Rows[0].Rating.Numeric || got.Rows[0].Rating.Raw != "Teen" {
		t.Errorf("rating = %+v, want label Teen", got.Rows[0].Rating)
	}
	if !got.Rows[1].Rating.Numeric || got.Rows[1].Rating.Value != 4 {
		t.Errorf("rating = %+v, want 4", got.Rows[1].Rating)
	}
}

func TestRedisCache_PreservesRatingText(t *testing.T) {
	ctx := context.Background()
	c := NewRedisCache(NewMockRedisClient(), time.Minute, zap.NewNop().Sugar())

	table := tableOf("Free")
	table.Rows[0].Rating = models.ParseRating("4.50")
	c.Put(ctx, "k", table)

	got, ok := c.Get(ctx, "k")
	if !ok {
		t.Fatal("expected hit")
	}
	r := got.Rows[0].Rating
	if !r.Numeric || r.Value != 4.5 || r.Raw != "4.50" {
		t.Errorf("rating = %+v, want numeric 4.5 with raw 4.50", r)
	}
	if v := got.Rows[0].Value(models.ColumnRating); v != "4.50" {
		t.Errorf("Value(Rating) = %q, want 4.50 as on a cold load", v)
	}
}

func TestRedisCache_FailuresAreMisses(t *testing.T) {
	ctx := context.Background()
	client := NewMockRedisClient()
	client.SetErr = errors.New("connection refused")
	c := NewRedisCache(client, time.Minute, zap.NewNop().Sugar())

	c.Put(ctx, "k", tableOf("Free"))
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("expected miss after failed write")
	}

	client.data[redisKeyPrefix+"bad"] = "{not json"
	if _, ok := c.Get(ctx, "bad"); ok {
		t.Error("corrupt entry should be a miss")
	}
}

func TestLayeredCache_BackfillsFasterLayer(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryCache(4)
	client := NewMockRedisClient()
	rc := NewRedisCache(client, time.Minute, zap.NewNop().Sugar())
	rc.Put(ctx, "k", tableOf("Free"))

	c := NewLayeredCache().With("memory", mem).With("redis", rc)
	if _, ok := c.Get(ctx, "k"); !ok {
		t.Fatal("expected hit from redis layer")
	}
	if _, ok := mem.Get(ctx, "k"); !ok {
		t.Error("memory layer was not back-filled")
	}

	gets := client.gets
	if _, ok := c.Get(ctx, "k"); !ok {
		t.Fatal("expected hit")
	}
	if client.gets != gets {
		t.Error("second lookup should be served by memory without touching redis")
	}

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Error("expected miss")
	}
}

func TestUploadStore(t *testing.T) {
	s := NewUploadStore(2)
	a := s.Put("a.csv", []byte("a"))
	again := s.Put("copy-of-a.csv", []byte("a"))
	if a.ID != again.ID {
		t.Error("identical content should share an id")
	}
	if len(a.ID) != 64 {
		t.Errorf("id length = %d, want 64", len(a.ID))
	}

	s.Put("b.csv", []byte("b"))
	s.Put("c.csv", []byte("c"))
	if _, ok := s.Get(a.ID); ok {
		t.Error("oldest upload should have been evicted")
	}
	if u, ok := s.Get(ContentID([]byte("c"))); !ok || u.Filename != "c.csv" {
		t.Errorf("Get(c) = %+v, %v", u, ok)
	}
}
