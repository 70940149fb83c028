package testimonial

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dellmdq/OT109-Server/internal/api"
	"github.com/dellmdq/OT109-Server/internal/types"
)

type TestimonialHandler struct {
	service TestimonialService
	logger  *slog.Logger
}

func NewTestimonialHandler(service TestimonialService, logger *slog.Logger) *TestimonialHandler {
	return &TestimonialHandler{service: service, logger: logger}
}

func (h *TestimonialHandler) RegisterRoutes(r chi.Router) {
	r.Get("/testimonials", h.List)
	r.Post("/testimonials", h.Create)
	r.Put("/testimonials/{id}", h.Update)
	r.Delete("/testimonials/{id}", h.Delete)
}

func (h *TestimonialHandler) List(w http.ResponseWriter, r *http.Request) {
	page, size := api.PageParams(r)
	result, err := h.service.List(r.Context(), page, size)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to list testimonials", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list testimonials")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *TestimonialHandler) Create(w http.ResponseWriter, r *http.Request) {
	var params TestimonialParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.Validate.Struct(params); err != nil {
		api.ValidationErrorResponse(w, r, err)
		return
	}
	t, err := h.service.Create(r.Context(), params)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to create testimonial", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create testimonial")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, t)
}

func (h *TestimonialHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid testimonial ID")
		return
	}
	var params TestimonialParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.Validate.Struct(params); err != nil {
		api.ValidationErrorResponse(w, r, err)
		return
	}
	t, err := h.service.Update(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Testimonial not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to update testimonial", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update testimonial")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, t)
}

func (h *TestimonialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid testimonial ID")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Testimonial not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to delete testimonial", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to delete testimonial")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}
