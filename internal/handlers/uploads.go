package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gamecharts/leaderboard-dashboard/internal/logic"
	"github.com/gamecharts/leaderboard-dashboard/internal/models"
)

// UploadCSV accepts a leaderboard CSV for use in place of the default file
// @Summary Upload Leaderboard CSV
// @Tags Dashboard
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Leaderboard CSV"
// @Success 201 {object} models.UploadResponse
// @Failure 400 {object} map[string]string
// @Failure 413 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Router /uploads [post]
func (h *Handler) UploadCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, hdr, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.errorResponse(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		h.errorResponse(w, http.StatusBadRequest, "Missing CSV file in form field 'file'")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	filename := filepath.Base(hdr.Filename)
	table, err := logic.ParseTable(bytes.NewReader(data))
	if err != nil {
		h.logger.Warnw("rejected upload", "filename", filename, "error", err)
		h.jsonResponse(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":    "Failed to parse CSV",
			"messages": []models.Message{models.Error("Error loading data: " + err.Error())},
		})
		return
	}

	upload := h.uploads.Put(filename, data)
	resp := models.UploadResponse{
		UploadID: upload.ID,
		Filename: filename,
		Rows:     table.Len(),
		Columns:  table.Columns,
	}
	if err := logic.ValidateSchema(table); err != nil {
		resp.Messages = append(resp.Messages, models.Error(err.Error()))
	} else {
		resp.Messages = append(resp.Messages, models.Success("Uploaded "+filename+"."))
	}

	h.logger.Infow("upload stored", "upload_id", upload.ID, "filename", filename, "rows", table.Len())
	h.jsonResponse(w, http.StatusCreated, resp)
}
