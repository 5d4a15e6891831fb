package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gamecharts/leaderboard-dashboard/internal/logic"
)

// Pinger is satisfied by *redis.Client; used by the readiness check.
type Pinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// UploadStore defines the storage used for uploaded CSV files
type UploadStore interface {
	Put(filename string, data []byte) logic.Upload
	Get(id string) (logic.Upload, bool)
}

type Config struct {
	Dashboard      logic.DashboardService
	Uploads        UploadStore
	Redis          Pinger
	Logger         *zap.Logger
	MaxUploadBytes int64
}

type Handler struct {
	dashboard      logic.DashboardService
	uploads        UploadStore
	redis          Pinger
	logger         *zap.SugaredLogger
	validator      *validator.Validate
	maxUploadBytes int64
}

func New(cfg Config) *Handler {
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = MaxBodySize
	}
	return &Handler{
		dashboard:      cfg.Dashboard,
		uploads:        cfg.Uploads,
		redis:          cfg.Redis,
		logger:         cfg.Logger.Sugar(),
		validator:      validator.New(),
		maxUploadBytes: maxUpload,
	}
}

// MaxBodySize is the default upload limit (5MB)
const MaxBodySize = 5 << 20
