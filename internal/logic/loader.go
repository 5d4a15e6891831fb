package logic

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/gamecharts/leaderboard-dashboard/internal/models"
)

// LoadStatus classifies the outcome of a load.
type LoadStatus string

const (
	LoadStatusLoaded      LoadStatus = "loaded"
	LoadStatusNoSource    LoadStatus = "no_source"
	LoadStatusNotFound    LoadStatus = "not_found"
	LoadStatusParseFailed LoadStatus = "parse_failed"
)

// LoadRequest identifies the table to load. Upload takes precedence over
// the region/platform default file.
type LoadRequest struct {
	Region   models.Region
	Platform models.Platform
	Upload   *Upload
}

// LoadResult is either a parsed table or the empty table with an
// explanation in Messages. It never carries a nil Table.
type LoadResult struct {
	Table    *models.LeaderboardTable
	Status   LoadStatus
	Source   string
	Cached   bool
	Messages []models.Message
}

func (r LoadResult) OK() bool {
	return r.Status == LoadStatusLoaded
}

// Loader resolves load requests against the catalog and memoizes parsed
// tables by (region, platform, content hash).
type Loader struct {
	catalog *Catalog
	cache   TableCache
	group   singleflight.Group
	logger  *zap.SugaredLogger
}

func NewLoader(catalog *Catalog, cache TableCache, logger *zap.SugaredLogger) *Loader {
	if cache == nil {
		cache = NewMemoryCache(64)
	}
	return &Loader{catalog: catalog, cache: cache, logger: logger}
}

func (l *Loader) Catalog() *Catalog {
	return l.catalog
}

func (l *Loader) Load(ctx context.Context, req LoadRequest) LoadResult {
	start := time.Now()
	res := l.load(ctx, req)
	loadDuration.Observe(time.Since(start).Seconds())
	loadsTotal.WithLabelValues(string(res.Status)).Inc()
	return res
}

func (l *Loader) load(ctx context.Context, req LoadRequest) LoadResult {
	var (
		data   []byte
		source string
		kind   string
	)

	if req.Upload != nil {
		data = req.Upload.Data
		source = req.Upload.Filename
		if source == "" {
			source = "uploaded file"
		}
		kind = "upload"
	} else {
		path, mapped := l.catalog.Path(req.Region, req.Platform)
		if !mapped {
			l.logger.Infow("no default file mapped", "region", req.Region, "platform", req.Platform)
			return emptyResult(LoadStatusNoSource, "", models.Warning(fmt.Sprintf(
				"No default data for %s (%s). Please upload a CSV file for the selected region.",
				req.Region.DisplayName(), req.Platform.DisplayName())))
		}
		resolved, exists := l.catalog.Resolve(req.Region, req.Platform)
		if !exists {
			l.logger.Infow("default file missing", "region", req.Region, "platform", req.Platform, "path", path)
			return emptyResult(LoadStatusNotFound, path, models.Warning(fmt.Sprintf(
				"Default file %s for %s (%s) was not found. Please upload a CSV file for the selected region.",
				filepath.Base(path), req.Region.DisplayName(), req.Platform.DisplayName())))
		}
		b, err := os.ReadFile(resolved)
		if err != nil {
			l.logger.Errorw("failed to read default file", "path", resolved, "error", err)
			return emptyResult(LoadStatusParseFailed, resolved, models.Error("Error loading data: "+err.Error()))
		}
		data = b
		source = filepath.Base(resolved)
		kind = "default"
	}

	key := strings.Join([]string{string(req.Region), string(req.Platform), kind, ContentID(data)}, "|")

	// Every caller sharing a flight reports the leader's outcome.
	v, err, _ := l.group.Do(key, func() (interface{}, error) {
		if t, ok := l.cache.Get(ctx, key); ok {
			return memoized{table: t, cached: true}, nil
		}
		t, err := parseTableBytes(data)
		if err != nil {
			return nil, err
		}
		t.Source = source
		l.cache.Put(ctx, key, t)
		return memoized{table: t}, nil
	})
	if err != nil {
		l.logger.Warnw("failed to parse leaderboard", "source", source, "region", req.Region, "platform", req.Platform, "error", err)
		return emptyResult(LoadStatusParseFailed, source, models.Error("Error loading data: "+err.Error()))
	}

	m := v.(memoized)
	table, cached := m.table, m.cached
	l.logger.Debugw("leaderboard loaded", "source", source, "rows", table.Len(), "cached", cached)
	return LoadResult{
		Table:  table,
		Status: LoadStatusLoaded,
		Source: source,
		Cached: cached,
		Messages: []models.Message{
			models.Success(fmt.Sprintf("Loaded %d rows from %s.", table.Len(), source)),
		},
	}
}

// memoized is the result of one singleflight load.
type memoized struct {
	table  *models.LeaderboardTable
	cached bool
}

func emptyResult(status LoadStatus, source string, msg models.Message) LoadResult {
	return LoadResult{
		Table:    models.EmptyTable(),
		Status:   status,
		Source:   source,
		Messages: []models.Message{msg},
	}
}
