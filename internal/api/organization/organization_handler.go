package organization

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dellmdq/OT109-Server/internal/api"
	"github.com/dellmdq/OT109-Server/internal/types"
)

type OrganizationHandler struct {
	service OrganizationService
	logger  *slog.Logger
}

func NewOrganizationHandler(service OrganizationService, logger *slog.Logger) *OrganizationHandler {
	return &OrganizationHandler{service: service, logger: logger}
}

func (h *OrganizationHandler) RegisterRoutes(r chi.Router) {
	r.Get("/organization/public", h.GetPublic)
	r.Get("/organization/public/{id}", h.GetPublicByID)
	r.Post("/organization/public", h.Create)
	r.Patch("/organization/public/{id}", h.UpdatePublic)
}

func (h *OrganizationHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetPublic(r.Context())
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Organization not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to fetch organization", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch organization")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, o)
}

func (h *OrganizationHandler) GetPublicByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid organization ID")
		return
	}
	o, err := h.service.GetPublicByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Organization not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to fetch organization", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch organization")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, o)
}

func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var params OrganizationParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.Validate.Struct(params); err != nil {
		api.ValidationErrorResponse(w, r, err)
		return
	}
	o, err := h.service.Create(r.Context(), params)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to create organization", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create organization")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, o)
}

func (h *OrganizationHandler) UpdatePublic(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid organization ID")
		return
	}
	var params UpdateOrganizationParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.Validate.Struct(params); err != nil {
		api.ValidationErrorResponse(w, r, err)
		return
	}
	o, err := h.service.UpdatePublic(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Organization not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to update organization", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update organization")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, o)
}
