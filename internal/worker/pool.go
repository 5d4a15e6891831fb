// Package worker preloads default leaderboard files into the table cache so
// the first dashboard request for a region does not pay for CSV parsing.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/gamecharts/leaderboard-dashboard/internal/logic"
	"github.com/gamecharts/leaderboard-dashboard/internal/models"
)

// Prometheus metrics
var (
	warmJobs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leaderboard_warm_jobs_total",
		Help: "Cache warm jobs processed, by load status",
	}, []string{"status"})

	warmShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leaderboard_warm_jobs_shed_total",
		Help: "Warm jobs dropped because the queue was full",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "leaderboard_warm_queue_depth",
		Help: "Current depth of the warm queue",
	})
)

// Loader is the part of logic.Loader the pool needs.
type Loader interface {
	Load(ctx context.Context, req logic.LoadRequest) logic.LoadResult
}

// Job asks for one default file to be loaded.
type Job struct {
	Region    models.Region
	Platform  models.Platform
	Timestamp time.Time
}

// PoolConfig configures the worker pool
type PoolConfig struct {
	WorkerCount int
	QueueSize   int
	Loader      Loader
	Logger      *zap.Logger
}

// Pool runs warm jobs on a fixed set of goroutines.
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger
}

// NewPool creates a new worker pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = len(models.Regions) * len(models.Platforms)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	p.logger.Infow("Warm pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
	)
}

// Stop drains the queue and waits for in-flight loads.
func (p *Pool) Stop() {
	close(p.jobQueue)
	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
	p.logger.Info("Warm pool stopped")
}

// Enqueue adds a job without blocking. It reports false when the queue is
// full or the pool has been cancelled.
func (p *Pool) Enqueue(job Job) bool {
	if job.Timestamp.IsZero() {
		job.Timestamp = time.Now()
	}

	// Protect against sending on closed channel
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("Failed to enqueue warm job (pool stopped)", "error", r)
		}
	}()

	if p.ctx != nil && p.ctx.Err() != nil {
		warmShed.Inc()
		return false
	}

	select {
	case p.jobQueue <- job:
		queueDepth.Set(float64(len(p.jobQueue)))
		return true
	default:
		warmShed.Inc()
		return false
	}
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for job := range p.jobQueue {
		queueDepth.Set(float64(len(p.jobQueue)))
		if p.ctx.Err() != nil {
			continue
		}
		res := p.config.Loader.Load(p.ctx, logic.LoadRequest{Region: job.Region, Platform: job.Platform})
		warmJobs.WithLabelValues(string(res.Status)).Inc()
		if res.OK() {
			p.logger.Infow("Warmed table",
				"worker", id,
				"region", job.Region,
				"platform", job.Platform,
				"rows", res.Table.Len(),
				"waited", time.Since(job.Timestamp),
			)
			continue
		}
		p.logger.Warnw("Warm load failed",
			"worker", id,
			"region", job.Region,
			"platform", job.Platform,
			"status", res.Status,
		)
	}
}

// WarmCatalog enqueues every (region, platform) pair whose default file
// exists and returns how many jobs were accepted.
func WarmCatalog(p *Pool, catalog *logic.Catalog) int {
	n := 0
	for _, a := range catalog.Availability() {
		for _, platform := range models.Platforms {
			if !a.Platforms[string(platform)] {
				continue
			}
			if p.Enqueue(Job{Region: a.Code, Platform: platform}) {
				n++
			}
		}
	}
	return n
}
