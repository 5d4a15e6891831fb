package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gamecharts/leaderboard-dashboard/internal/export"
	"github.com/gamecharts/leaderboard-dashboard/internal/logic"
	"github.com/gamecharts/leaderboard-dashboard/internal/models"
	"github.com/gamecharts/leaderboard-dashboard/internal/render"
)

// GetRegions lists regions, platforms and which default files exist
// @Summary List Regions
// @Tags Dashboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /regions [get]
func (h *Handler) GetRegions(w http.ResponseWriter, r *http.Request) {
	platforms := make([]map[string]string, 0, len(models.Platforms))
	for _, p := range models.Platforms {
		platforms = append(platforms, map[string]string{"code": string(p), "name": p.DisplayName()})
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"regions":   h.dashboard.Catalog().Availability(),
		"platforms": platforms,
		"top_n": map[string]int{
			"min":     logic.TopNMin,
			"max":     logic.TopNMax,
			"default": logic.TopNDefault,
		},
	})
}

// GetDashboard renders the dashboard view for one set of selections
// @Summary Dashboard View
// @Description Loads the leaderboard for a region/platform (or an upload) and returns chart panels and tables
// @Tags Dashboard
// @Produce json
// @Param region query string false "Region code or name" default(AE)
// @Param platform query string false "ios or android" default(ios)
// @Param upload query string false "Upload id returned by POST /uploads"
// @Param top query int false "Rows per chart (5-25)" default(10)
// @Param category query string false "Category for the detail chart"
// @Param detailed query bool false "Include full tables"
// @Success 200 {object} models.DashboardView
// @Failure 400 {object} map[string]string
// @Router /dashboard [get]
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseDashboardRequest(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	view := h.dashboard.Build(r.Context(), req)
	w.Header().Set("X-Request-ID", req.ID)
	h.jsonResponse(w, http.StatusOK, view)
}

// GetChart renders a single dashboard panel as an image
// @Summary Panel Chart
// @Tags Dashboard
// @Produce png
// @Param file path string true "Panel and format, e.g. free.png or ratings.svg"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /charts/{file} [get]
func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	ext := path.Ext(file)
	panel := strings.TrimSuffix(file, ext)
	format, err := render.ParseFormat(strings.TrimPrefix(ext, "."))
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	req, err := h.parseDashboardRequest(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	img, err := h.dashboard.RenderPanel(r.Context(), req, panel, string(format))
	switch {
	case err == nil:
	case errors.Is(err, logic.ErrUnknownPanel):
		h.errorResponse(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, render.ErrEmptyData):
		h.jsonResponse(w, http.StatusNotFound, map[string]string{"warning": "No data available for " + panel + " chart."})
		return
	case errors.Is(err, logic.ErrNoData):
		h.jsonResponse(w, http.StatusNotFound, map[string]string{"warning": err.Error()})
		return
	default:
		h.logger.Errorw("failed to render chart", "request_id", req.ID, "panel", panel, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to render chart")
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("X-Request-ID", req.ID)
	w.WriteHeader(http.StatusOK)
	w.Write(img)
}

// ExportWorkbook returns the detailed view as an XLSX workbook
// @Summary Export Detailed View
// @Tags Dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 404 {object} map[string]interface{}
// @Router /export.xlsx [get]
func (h *Handler) ExportWorkbook(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseDashboardRequest(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Detailed = true

	view := h.dashboard.Build(r.Context(), req)
	if !view.Valid {
		h.jsonResponse(w, http.StatusNotFound, map[string]interface{}{
			"error":    "No data to export",
			"messages": view.Messages,
		})
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, view); err != nil {
		h.logger.Errorw("failed to export workbook", "request_id", req.ID, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to export workbook")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="leaderboard-`+strings.ToLower(string(req.Region))+"-"+string(req.Platform)+`.xlsx"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
