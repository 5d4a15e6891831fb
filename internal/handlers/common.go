package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/gamecharts/leaderboard-dashboard/internal/models"
)

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checks := map[string]bool{}
	info, err := os.Stat(h.dashboard.Catalog().Dir())
	checks["data_dir"] = err == nil && info.IsDir()
	if h.redis != nil {
		checks["redis"] = h.redis.Ping(ctx).Err() == nil
	}

	allHealthy := true
	for _, ok := range checks {
		if !ok {
			allHealthy = false
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if !allHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ready":  allHealthy,
		"checks": checks,
	})
}

// parseDashboardRequest turns query parameters into a validated request
// record. Region defaults to the UAE and platform to iOS.
func (h *Handler) parseDashboardRequest(r *http.Request) (models.DashboardRequest, error) {
	q := r.URL.Query()

	req := models.DashboardRequest{
		ID:       requestID(r),
		Region:   models.RegionUAE,
		Platform: models.PlatformIOS,
		UploadID: strings.ToLower(strings.TrimSpace(q.Get("upload"))),
		Category: q.Get("category"),
	}

	if raw := q.Get("region"); raw != "" {
		if region, ok := models.ParseRegion(raw); ok {
			req.Region = region
		} else {
			req.Region = models.Region(raw)
		}
	}
	if raw := q.Get("platform"); raw != "" {
		if platform, ok := models.ParsePlatform(raw); ok {
			req.Platform = platform
		} else {
			req.Platform = models.Platform(raw)
		}
	}
	if raw := q.Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return req, fmt.Errorf("invalid top: %q is not a number", raw)
		}
		req.TopN = n
	}
	if raw := q.Get("detailed"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return req, fmt.Errorf("invalid detailed: %q is not a boolean", raw)
		}
		req.Detailed = b
	}

	if err := h.validator.Struct(req); err != nil {
		return req, validationMessage(err)
	}
	return req, nil
}

// requestID reuses a well-formed X-Request-ID header or mints a new id.
func requestID(r *http.Request) string {
	if id, err := uuid.Parse(r.Header.Get("X-Request-ID")); err == nil {
		return id.String()
	}
	return uuid.New().String()
}

func validationMessage(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Region":
		return fmt.Errorf("invalid region %q", fe.Value())
	case "Platform":
		return fmt.Errorf("invalid platform %q", fe.Value())
	case "TopN":
		return fmt.Errorf("invalid top: must be between 5 and 25")
	case "UploadID":
		return fmt.Errorf("invalid upload id")
	}
	return fmt.Errorf("invalid %s: failed %s", strings.ToLower(fe.Field()), fe.Tag())
}

// jsonResponse encodes before writing the header so an encoding failure
// becomes a 500 instead of an empty 200.
func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		h.logger.Errorw("failed to encode response", "error", err)
		http.Error(w, `{"error":"Failed to encode response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}
