package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dellmdq/OT109-Server/app/observability/metrics"
	"github.com/dellmdq/OT109-Server/internal/api"
	"github.com/dellmdq/OT109-Server/internal/types"
)

// AuthHandler handles HTTP requests for registration, login and profile.
type AuthHandler struct {
	authService AuthService
	logger      *slog.Logger
}

func NewAuthHandler(authService AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register godoc
// @Summary      Register a new user
// @Description  Creates a USER-role account and fires a welcome mail.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body body RegisterRequest true "Registration data"
// @Success      201 {object} types.UserProfile
// @Failure      400 {object} map[string]interface{} "Field-level validation errors"
// @Failure      409 {object} map[string]interface{} "Email already registered"
// @Router       /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Register"))
	metrics.Get().RegisterRequestsTotal.Add(ctx, 1)

	var req RegisterRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.Validate.Struct(req); err != nil {
		api.ValidationErrorResponse(w, r, err)
		return
	}

	profile, err := h.authService.Register(ctx, req)
	if err != nil {
		if errors.Is(err, types.ErrConflict) {
			api.ErrorResponse(w, r, http.StatusConflict, "Email already exists")
			return
		}
		l.ErrorContext(ctx, "Registration failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to register user")
		return
	}

	// The welcome mail is dispatched asynchronously; the header reports
	// that it was queued, not delivered.
	w.Header().Set("User-Mail-Sent", "true")
	api.WriteJSONResponse(w, r, http.StatusCreated, profile)
}

// Login godoc
// @Summary      Authenticate a user
// @Description  Verifies credentials and returns a signed bearer token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body body LoginRequest true "Credentials"
// @Success      200 {object} LoginResponse
// @Failure      400 {object} map[string]interface{} "Unknown user or wrong password"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Login"))
	metrics.Get().LoginAttemptsTotal.Add(ctx, 1)

	var req LoginRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.Validate.Struct(req); err != nil {
		api.ValidationErrorResponse(w, r, err)
		return
	}

	resp, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		// Both failures surface as 400 with a reason; the distinction only
		// matters in the logs.
		switch {
		case errors.Is(err, ErrUserNotFound):
			api.ErrorResponse(w, r, http.StatusBadRequest, "User not found")
		case errors.Is(err, ErrInvalidCredentials):
			api.ErrorResponse(w, r, http.StatusBadRequest, "Password doesn't match")
		default:
			l.ErrorContext(ctx, "Login failed", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to login")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// Me godoc
// @Summary      Get own profile
// @Description  Returns the profile of the bearer token's principal.
// @Tags         Auth
// @Produce      json
// @Success      200 {object} types.UserProfile
// @Failure      401 {object} map[string]interface{} "Missing or invalid token"
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Me"))

	email, ok := GetUserEmailFromContext(ctx)
	if !ok || email == "" {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	profile, err := h.authService.GetProfile(ctx, email)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusUnauthorized, "Unauthorized")
			return
		}
		l.ErrorContext(ctx, "Failed to load profile", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve profile")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, profile)
}
