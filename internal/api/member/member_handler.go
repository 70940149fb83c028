package member

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dellmdq/OT109-Server/internal/api"
	"github.com/dellmdq/OT109-Server/internal/types"
)

type MemberHandler struct {
	service MemberService
	logger  *slog.Logger
}

func NewMemberHandler(service MemberService, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{service: service, logger: logger}
}

func (h *MemberHandler) RegisterRoutes(r chi.Router) {
	r.Get("/members", h.List)
	r.Post("/members", h.Create)
	r.Put("/members/{id}", h.Update)
	r.Delete("/members/{id}", h.Delete)
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	page, size := api.PageParams(r)
	result, err := h.service.List(r.Context(), page, size)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to list members", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list members")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var params MemberParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.Validate.Struct(params); err != nil {
		api.ValidationErrorResponse(w, r, err)
		return
	}
	m, err := h.service.Create(r.Context(), params)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to create member", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create member")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, m)
}

func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid member ID")
		return
	}
	var params MemberParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.Validate.Struct(params); err != nil {
		api.ValidationErrorResponse(w, r, err)
		return
	}
	m, err := h.service.Update(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Member not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to update member", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update member")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, m)
}

func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid member ID")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Member not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to delete member", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to delete member")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}
