package comment

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dellmdq/OT109-Server/internal/api"
	"github.com/dellmdq/OT109-Server/internal/api/auth"
	"github.com/dellmdq/OT109-Server/internal/types"
)

type CommentHandler struct {
	service CommentService
	logger  *slog.Logger
}

func NewCommentHandler(service CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{service: service, logger: logger}
}

func (h *CommentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/comments", h.List)
	r.Post("/comments", h.Create)
	r.Put("/comments/{id}", h.Update)
	r.Delete("/comments/{id}", h.Delete)
	r.Get("/news/{id}/comments", h.ListByNews)
}

// callerFromContext rebuilds the mutation caller from the security context.
func callerFromContext(r *http.Request) (Caller, bool) {
	idStr, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		return Caller{}, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return Caller{}, false
	}
	email, _ := auth.GetUserEmailFromContext(r.Context())
	role, _ := auth.GetUserRoleFromContext(r.Context())
	return Caller{UserID: id, Email: email, Role: role}, true
}

func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to list comments", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list comments")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, items)
}

func (h *CommentHandler) ListByNews(w http.ResponseWriter, r *http.Request) {
	newsID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid news ID")
		return
	}
	items, err := h.service.ListByNews(r.Context(), newsID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to list news comments", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list comments")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, items)
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromContext(r)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	var params CreateCommentParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.Validate.Struct(params); err != nil {
		api.ValidationErrorResponse(w, r, err)
		return
	}
	c, err := h.service.Create(r.Context(), caller, params)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to create comment", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create comment")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, c)
}

type updateCommentRequest struct {
	Body string `json:"body" validate:"required"`
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromContext(r)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid comment ID")
		return
	}
	var req updateCommentRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.Validate.Struct(req); err != nil {
		api.ValidationErrorResponse(w, r, err)
		return
	}
	c, err := h.service.Update(r.Context(), caller, id, req.Body)
	if err != nil {
		h.respondMutationError(w, r, err, "update")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, c)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromContext(r)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid comment ID")
		return
	}
	if err := h.service.Delete(r.Context(), caller, id); err != nil {
		h.respondMutationError(w, r, err, "delete")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

func (h *CommentHandler) respondMutationError(w http.ResponseWriter, r *http.Request, err error, op string) {
	switch {
	case errors.Is(err, types.ErrNotFound):
		api.ErrorResponse(w, r, http.StatusNotFound, "Comment not found")
	case errors.Is(err, types.ErrForbidden):
		api.ErrorResponse(w, r, http.StatusForbidden, "Forbidden")
	default:
		h.logger.ErrorContext(r.Context(), "Comment mutation failed",
			slog.String("op", op), slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to "+op+" comment")
	}
}
