package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gamecharts/leaderboard-dashboard/internal/logic"
	"github.com/gamecharts/leaderboard-dashboard/internal/models"
	"github.com/gamecharts/leaderboard-dashboard/internal/render"
)

func main() {
	region := flag.String("region", "AE", "region code or name")
	platform := flag.String("platform", "ios", "ios or android")
	dataDir := flag.String("data", "data", "directory holding the default CSV files")
	file := flag.String("file", "", "render this CSV instead of the default for the region")
	vintage := flag.String("vintage", logic.VintageAll, "category label vintage")
	top := flag.Int("top", logic.TopNDefault, "rows per bar chart")
	category := flag.String("category", "", "category for the category and ratings panels")
	format := flag.String("format", "png", "png or svg")
	out := flag.String("out", "web/static/img", "output directory")
	flag.Parse()

	r, ok := models.ParseRegion(*region)
	if !ok {
		log.Fatalf("Unknown region %q", *region)
	}
	p, ok := models.ParsePlatform(*platform)
	if !ok {
		log.Fatalf("Unknown platform %q", *platform)
	}
	if _, err := render.ParseFormat(*format); err != nil {
		log.Fatal(err)
	}
	categories, err := logic.NewCategories(*vintage)
	if err != nil {
		log.Fatal(err)
	}

	sugar := zap.NewNop().Sugar()
	catalog := logic.NewCatalog(*dataDir)
	uploads := logic.NewUploadStore(1)
	svc := logic.NewDashboardService(logic.DashboardConfig{
		Loader:     logic.NewLoader(catalog, nil, sugar),
		Uploads:    uploads,
		Catalog:    catalog,
		Categories: categories,
		Theme:      render.DarkTheme(),
		Logger:     sugar,
	})

	req := models.DashboardRequest{
		ID:       uuid.NewString(),
		Region:   r,
		Platform: p,
		TopN:     *top,
		Category: *category,
	}
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", *file, err)
		}
		req.UploadID = uploads.Put(filepath.Base(*file), data).ID
	}

	ctx := context.Background()
	view := svc.Build(ctx, req)
	for _, m := range view.Messages {
		fmt.Printf("[%s] %s\n", m.Level, m.Text)
	}
	if !view.Valid {
		log.Fatal("No usable data; nothing to render.")
	}

	for _, key := range models.Panels {
		img, err := svc.RenderPanel(ctx, req, key, *format)
		if errors.Is(err, render.ErrEmptyData) || errors.Is(err, logic.ErrNoData) {
			fmt.Printf("No data found for %s.\n", key)
			continue
		}
		if err != nil {
			log.Printf("Failed to render %s: %v", key, err)
			continue
		}
		saveChart(*out, fmt.Sprintf("%s_%s_%s.%s", r, p, key, *format), img)
	}
}

func saveChart(dir, filename string, img []byte) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatal(err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, img, 0644); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Chart generated: %s\n", path)
}
