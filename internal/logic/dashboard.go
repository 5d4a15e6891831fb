package logic

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/gamecharts/leaderboard-dashboard/internal/models"
	"github.com/gamecharts/leaderboard-dashboard/internal/render"
)

var (
	// ErrUnknownPanel is returned for a panel key outside models.Panels.
	ErrUnknownPanel = errors.New("unknown panel")
	// ErrNoData is returned when a panel is requested but no valid table loaded.
	ErrNoData = errors.New("no leaderboard data")
)

// DashboardConfig wires the dashboard service
type DashboardConfig struct {
	Loader     LoaderService
	Uploads    UploadSource
	Catalog    *Catalog
	Categories *Categories
	Theme      render.Theme
	ChartBase  string
	BuildInfo  string
	Logger     *zap.SugaredLogger
}

type dashboardService struct {
	loader     LoaderService
	uploads    UploadSource
	catalog    *Catalog
	categories *Categories
	theme      render.Theme
	chartBase  string
	buildInfo  string
	logger     *zap.SugaredLogger
}

func NewDashboardService(cfg DashboardConfig) DashboardService {
	chartBase := cfg.ChartBase
	if chartBase == "" {
		chartBase = "/api/v1/charts"
	}
	return &dashboardService{
		loader:     cfg.Loader,
		uploads:    cfg.Uploads,
		catalog:    cfg.Catalog,
		categories: cfg.Categories,
		theme:      cfg.Theme,
		chartBase:  chartBase,
		buildInfo:  cfg.BuildInfo,
		logger:     cfg.Logger,
	}
}

func (s *dashboardService) Catalog() *Catalog {
	return s.catalog
}

// prepared is a loaded, schema-checked table with the request's selections
// resolved against it.
type prepared struct {
	table      *models.LeaderboardTable
	source     string
	valid      bool
	topN       int
	categories []string
	selected   string
	messages   []models.Message
}

func (s *dashboardService) prepare(ctx context.Context, req models.DashboardRequest) *prepared {
	p := &prepared{categories: []string{}}

	loadReq := LoadRequest{Region: req.Region, Platform: req.Platform}
	if req.UploadID != "" {
		if u, ok := s.uploads.Get(req.UploadID); ok {
			loadReq.Upload = &u
		} else {
			p.messages = append(p.messages, models.Warning("The uploaded file is no longer available; falling back to the default data."))
		}
	}

	res := s.loader.Load(ctx, loadReq)
	p.table = res.Table
	p.source = res.Source
	p.messages = append(p.messages, res.Messages...)
	if !res.OK() {
		return p
	}

	if err := ValidateSchema(p.table); err != nil {
		p.messages = append(p.messages, models.Error(err.Error()))
		return p
	}
	p.valid = true

	p.topN = ClampTopN(req.TopN, p.table.Len())
	p.categories = DistinctCategories(p.table)
	if len(p.categories) == 0 {
		return p
	}
	p.selected = p.categories[0]
	if req.Category != "" {
		found := false
		for _, c := range p.categories {
			if c == req.Category {
				p.selected = c
				found = true
				break
			}
		}
		if !found {
			p.messages = append(p.messages, models.Warning(fmt.Sprintf(
				"Category %q is not present in this file; showing %q instead.", req.Category, p.selected)))
		}
	}
	return p
}

// panel builds the metadata and rows of one panel.
func (s *dashboardService) panel(p *prepared, key string) (models.DashboardPanel, *models.LeaderboardTable, error) {
	var (
		panel models.DashboardPanel
		data  *models.LeaderboardTable
	)
	switch key {
	case models.PanelFree:
		panel = models.DashboardPanel{Heading: "Top Free Games", Title: "Top Free Apps", Kind: "bar"}
		data = FilterByCategory(p.table, s.categories.Labels(BucketFree))
	case models.PanelPaid:
		panel = models.DashboardPanel{Heading: "Top Paid Games", Title: "Top Paid Apps", Kind: "bar"}
		data = FilterByCategory(p.table, s.categories.Labels(BucketPaid))
	case models.PanelGrossing:
		panel = models.DashboardPanel{Heading: "Top Grossing Games", Title: "Top Grossing Apps", Kind: "bar"}
		data = FilterByCategory(p.table, s.categories.Labels(BucketGrossing))
	case models.PanelRank:
		panel = models.DashboardPanel{Heading: "Game Name by Rank", Title: "Game Name by Rank", Kind: "bar"}
		data = p.table
	case models.PanelCategory:
		panel = models.DashboardPanel{Heading: "Selected Category", Title: p.selected, Kind: "bar"}
		data = FilterByCategory(p.table, NewLabelSet(p.selected))
	case models.PanelRatings:
		panel = models.DashboardPanel{
			Heading: "Rating Distribution for Selected Category",
			Title:   p.selected + " Rating Distribution",
			Kind:    "pie",
		}
		data = FilterByCategory(p.table, NewLabelSet(p.selected))
	default:
		return panel, nil, fmt.Errorf("%w: %q", ErrUnknownPanel, key)
	}
	panel.Key = key
	data = TakeTop(data, p.topN)
	panel.Rows = data.Rows
	return panel, data, nil
}

func (s *dashboardService) Build(ctx context.Context, req models.DashboardRequest) *models.DashboardView {
	p := s.prepare(ctx, req)

	view := &models.DashboardView{
		RequestID:  req.ID,
		Title:      fmt.Sprintf("Top %s Ranked Games by Category in %s", req.Platform.DisplayName(), req.Region.DisplayName()),
		Region:     req.Region.DisplayName(),
		Platform:   req.Platform.DisplayName(),
		Source:     p.source,
		Valid:      p.valid,
		Categories: p.categories,
		Messages:   p.messages,
		Panels:     []models.DashboardPanel{},
		Info:       s.buildInfo,
	}
	if !p.valid {
		s.logger.Infow("dashboard skipped rendering", "request_id", req.ID, "region", req.Region, "platform", req.Platform, "source", p.source)
		return view
	}

	view.TopN = p.topN
	view.TopNMin, view.TopNMax = TopNRange(p.table.Len())
	view.SelectedCategory = p.selected

	keys := models.Panels
	if len(p.categories) == 0 {
		view.Messages = append(view.Messages, models.Info("No categories available in the selected dataset."))
		keys = []string{models.PanelFree, models.PanelPaid, models.PanelGrossing, models.PanelRank}
	}

	for _, key := range keys {
		panel, data, err := s.panel(p, key)
		if err != nil {
			s.logger.Errorw("failed to build panel", "panel", key, "error", err)
			continue
		}
		if data.IsEmpty() {
			chartsSkipped.Inc()
			panel.Warning = fmt.Sprintf("No data available for %s.", panel.Title)
		} else {
			panel.ChartURL = s.chartURL(req, key, p)
		}
		view.Panels = append(view.Panels, panel)
	}

	if req.Detailed {
		view.Detailed = &models.DetailedView{All: p.table}
		if p.selected != "" {
			view.Detailed.Category = TakeTop(FilterByCategory(p.table, NewLabelSet(p.selected)), p.topN)
		}
	}

	s.logger.Infow("dashboard built",
		"request_id", req.ID,
		"region", req.Region,
		"platform", req.Platform,
		"source", p.source,
		"rows", p.table.Len(),
		"top_n", p.topN,
		"category", p.selected,
	)
	return view
}

func (s *dashboardService) RenderPanel(ctx context.Context, req models.DashboardRequest, key string, format string) ([]byte, error) {
	f, err := render.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	p := s.prepare(ctx, req)
	if !p.valid {
		return nil, fmt.Errorf("%w: %s", ErrNoData, lastMessage(p.messages))
	}

	panel, data, err := s.panel(p, key)
	if err != nil {
		return nil, err
	}
	if data.IsEmpty() {
		chartsSkipped.Inc()
	}
	if panel.Kind == "pie" {
		return render.Pie(data, panel.Title, s.theme, f)
	}
	return render.Bar(data, render.RankBars(panel.Title), s.theme, f)
}

func (s *dashboardService) chartURL(req models.DashboardRequest, key string, p *prepared) string {
	q := url.Values{}
	q.Set("region", string(req.Region))
	q.Set("platform", string(req.Platform))
	if req.UploadID != "" {
		q.Set("upload", req.UploadID)
	}
	// Short tables clamp to their row count, which is also the default.
	if p.topN >= TopNMin {
		q.Set("top", strconv.Itoa(p.topN))
	}
	if p.selected != "" && (key == models.PanelCategory || key == models.PanelRatings) {
		q.Set("category", p.selected)
	}
	return fmt.Sprintf("%s/%s.png?%s", s.chartBase, key, q.Encode())
}

func lastMessage(msgs []models.Message) string {
	if len(msgs) == 0 {
		return "nothing loaded"
	}
	return msgs[len(msgs)-1].Text
}
