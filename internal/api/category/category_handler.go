package category

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dellmdq/OT109-Server/internal/api"
	"github.com/dellmdq/OT109-Server/internal/types"
)

type CategoryHandler struct {
	service CategoryService
	logger  *slog.Logger
}

func NewCategoryHandler(service CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{service: service, logger: logger}
}

// RegisterRoutes mounts the category endpoints on r.
func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/categories", h.List)
	r.Get("/categories/{id}", h.GetByID)
	r.Post("/categories", h.Create)
	r.Put("/categories/{id}", h.Update)
	r.Delete("/categories/{id}", h.Delete)
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to list categories", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list categories")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, items)
}

func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid category ID")
		return
	}
	c, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Category not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to fetch category", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch category")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, c)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var params CreateCategoryParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.Validate.Struct(params); err != nil {
		api.ValidationErrorResponse(w, r, err)
		return
	}
	c, err := h.service.Create(r.Context(), params)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to create category", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create category")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, c)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid category ID")
		return
	}
	var params CreateCategoryParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.Validate.Struct(params); err != nil {
		api.ValidationErrorResponse(w, r, err)
		return
	}
	c, err := h.service.Update(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Category not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to update category", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update category")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, c)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid category ID")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Category not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to delete category", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}
