package handlers

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/gamecharts/leaderboard-dashboard/internal/logic"
	"github.com/gamecharts/leaderboard-dashboard/internal/models"
)

// MockDashboardService
type MockDashboardService struct {
	BuildFunc       func(ctx context.Context, req models.DashboardRequest) *models.DashboardView
	RenderPanelFunc func(ctx context.Context, req models.DashboardRequest, panel string, format string) ([]byte, error)
	CatalogValue    *logic.Catalog
}

func (m *MockDashboardService) Build(ctx context.Context, req models.DashboardRequest) *models.DashboardView {
	if m.BuildFunc != nil {
		return m.BuildFunc(ctx, req)
	}
	return &models.DashboardView{RequestID: req.ID}
}

func (m *MockDashboardService) RenderPanel(ctx context.Context, req models.DashboardRequest, panel string, format string) ([]byte, error) {
	if m.RenderPanelFunc != nil {
		return m.RenderPanelFunc(ctx, req, panel, format)
	}
	return []byte("img"), nil
}

func (m *MockDashboardService) Catalog() *logic.Catalog {
	if m.CatalogValue != nil {
		return m.CatalogValue
	}
	return logic.NewCatalog(".")
}

// MockPinger
type MockPinger struct {
	Err error
}

func (m *MockPinger) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "ping")
	if m.Err != nil {
		cmd.SetErr(m.Err)
	} else {
		cmd.SetVal("PONG")
	}
	return cmd
}

var errRedisDown = errors.New("dial tcp: connection refused")
