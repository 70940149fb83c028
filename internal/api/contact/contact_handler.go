package contact

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dellmdq/OT109-Server/internal/api"
)

type ContactHandler struct {
	service ContactService
	logger  *slog.Logger
}

func NewContactHandler(service ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{service: service, logger: logger}
}

func (h *ContactHandler) RegisterRoutes(r chi.Router) {
	r.Get("/contacts", h.List)
	r.Post("/contacts", h.Create)
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to list contacts", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list contacts")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, items)
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var params ContactParams
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
		h.logger.ErrorContext(r.Context(), "Failed to store contact", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to store contact")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, c)
}
