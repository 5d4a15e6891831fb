package logic

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gamecharts/leaderboard-dashboard/internal/models"
)

// RedisClient defines the subset of the Redis client used by the table cache
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// TableCache memoizes parsed leaderboard tables by load key
type TableCache interface {
	Get(ctx context.Context, key string) (*models.LeaderboardTable, bool)
	Put(ctx context.Context, key string, table *models.LeaderboardTable)
}

// UploadSource resolves an upload id to the uploaded CSV content
type UploadSource interface {
	Get(id string) (Upload, bool)
}

// LoaderService resolves a load request to a table
type LoaderService interface {
	Load(ctx context.Context, req LoadRequest) LoadResult
}

// DashboardService composes the loader and chart renderers for one request
type DashboardService interface {
	Build(ctx context.Context, req models.DashboardRequest) *models.DashboardView
	RenderPanel(ctx context.Context, req models.DashboardRequest, panel string, format string) ([]byte, error)
	Catalog() *Catalog
}
