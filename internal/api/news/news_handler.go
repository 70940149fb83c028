package news

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dellmdq/OT109-Server/internal/api"
	"github.com/dellmdq/OT109-Server/internal/types"
)

type NewsHandler struct {
	service NewsService
	logger  *slog.Logger
}

func NewNewsHandler(service NewsService, logger *slog.Logger) *NewsHandler {
	return &NewsHandler{service: service, logger: logger}
}

func (h *NewsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/news", h.List)
	r.Get("/news/{id}", h.GetByID)
	r.Post("/news", h.Create)
	r.Put("/news/{id}", h.Update)
	r.Delete("/news/{id}", h.Delete)
}

func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	page, size := api.PageParams(r)
	result, err := h.service.List(r.Context(), page, size)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to list news", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list news")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *NewsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid news ID")
		return
	}
	n, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "News not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to fetch news", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch news")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, n)
}

func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var params NewsParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.Validate.Struct(params); err != nil {
		api.ValidationErrorResponse(w, r, err)
		return
	}
	n, err := h.service.Create(r.Context(), params)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to create news", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create news")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, n)
}

func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid news ID")
		return
	}
	var params NewsParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.Validate.Struct(params); err != nil {
		api.ValidationErrorResponse(w, r, err)
		return
	}
	n, err := h.service.Update(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "News not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to update news", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update news")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, n)
}

func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid news ID")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "News not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to delete news", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to delete news")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}
