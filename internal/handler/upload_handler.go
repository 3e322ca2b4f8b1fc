package handler

import (
	"net/http"

	"storefront/internal/media"
	"storefront/internal/model"

	"github.com/rs/zerolog"
)

const maxUploadBytes = 10 << 20

// UploadResponse carries the URL of an uploaded image.
type UploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

// UploadHandler handles product image uploads.
type UploadHandler struct {
	uploader media.Uploader
	logger   zerolog.Logger
}

// NewUploadHandler creates a new upload handler. A nil uploader disables uploads.
func NewUploadHandler(uploader media.Uploader, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		uploader: uploader,
		logger:   logger.With().Str("handler", "upload").Logger(),
	}
}

// Upload handles POST /api/upload with a multipart "image" field.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.uploader == nil {
		writeServiceError(w, model.ErrUploadDisabled, h.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeServiceError(w, model.InvalidInput("invalid multipart body"), h.logger)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeServiceError(w, model.InvalidInput("no file uploaded"), h.logger)
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeServiceError(w, model.Unavailable(err), h.logger)
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{ImageURL: url})
}
