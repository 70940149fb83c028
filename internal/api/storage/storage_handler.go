package storage

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dellmdq/OT109-Server/internal/api"
	"github.com/dellmdq/OT109-Server/internal/types"
)

// maxUploadBytes caps multipart image uploads at 10 MiB.
const maxUploadBytes = 10 << 20

type StorageHandler struct {
	store  ImageStore
	logger *slog.Logger
}

func NewStorageHandler(store ImageStore, logger *slog.Logger) *StorageHandler {
	return &StorageHandler{store: store, logger: logger}
}

func (h *StorageHandler) RegisterRoutes(r chi.Router) {
	r.Post("/s3/images", h.Upload)
	r.Get("/s3/images", h.Download)
}

func (h *StorageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Missing 'file' form field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	result, err := h.store.Upload(r.Context(), header.Filename, contentType, file)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Image upload failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to upload image")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, result)
}

func (h *StorageHandler) Download(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Missing 'name' query parameter")
		return
	}
	body, contentType, err := h.store.Download(r.Context(), name)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Image not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "Image download failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch image")
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to stream image", slog.Any("error", err))
	}
}
