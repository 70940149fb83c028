package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dellmdq/OT109-Server/app/observability/metrics"
	"github.com/dellmdq/OT109-Server/internal/api"
	"github.com/dellmdq/OT109-Server/internal/types"
)

type contextKey string

const (
	UserIDKey    contextKey = "userID"
	UserEmailKey contextKey = "userEmail"
	UserRoleKey  contextKey = "userRole"
)

// Authenticate is the per-request authentication and authorization gate.
// It runs exactly once per inbound request, before any handler:
//
//  1. a request matching a public policy entry proceeds; when it carries a
//     valid bearer token the principal still lands in the context, an
//     invalid one is simply ignored (the entry allows anonymous access)
//  2. otherwise a missing or malformed Authorization header is a 401
//  3. token validation failure is a 401 with the mapped reason
//  4. a token subject that resolves to no active user is a 401
//  5. a policy Deny with a valid principal is a 403; Allow forwards the
//     request with the security context populated
//
// Authentication failures are never retried here.
func Authenticate(logger *slog.Logger, tokens *TokenService, svc AuthService, policy *Policy) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			l := logger.With(
				slog.String("middleware", "Authenticate"),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)

			public := policy.PublicMatch(r.Method, r.URL.Path)

			tokenString, ok := bearerToken(r)
			if !ok {
				if public {
					next.ServeHTTP(w, r)
					return
				}
				l.WarnContext(ctx, "Missing or malformed Authorization header")
				metrics.Get().AuthRejectionsTotal.Add(ctx, 1)
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Authorization header with Bearer token required")
				return
			}

			claims, err := tokens.Validate(tokenString)
			if err != nil {
				if public {
					next.ServeHTTP(w, r)
					return
				}
				l.WarnContext(ctx, "Token validation failed", slog.Any("error", err))
				metrics.Get().AuthRejectionsTotal.Add(ctx, 1)
				api.ErrorResponse(w, r, http.StatusUnauthorized, tokenFailureReason(err))
				return
			}

			principal, err := svc.ResolvePrincipal(ctx, claims.Subject)
			if err != nil {
				if public {
					next.ServeHTTP(w, r)
					return
				}
				if errors.Is(err, types.ErrNotFound) {
					l.WarnContext(ctx, "Token subject resolves to no active user")
					metrics.Get().AuthRejectionsTotal.Add(ctx, 1)
					api.ErrorResponse(w, r, http.StatusUnauthorized, "Unauthorized")
					return
				}
				l.ErrorContext(ctx, "Principal lookup failed", slog.Any("error", err))
				api.ErrorResponse(w, r, http.StatusInternalServerError, "Authentication unavailable")
				return
			}

			granted := Authorities(principal.Role.Name)
			if !public && policy.Authorize(r.Method, r.URL.Path, granted) == Deny {
				l.WarnContext(ctx, "Authorization denied",
					slog.String("role", principal.Role.Name),
					slog.String("userID", principal.ID.String()),
				)
				metrics.Get().AuthRejectionsTotal.Add(ctx, 1)
				api.ErrorResponse(w, r, http.StatusForbidden, "Forbidden")
				return
			}

			ctx = context.WithValue(ctx, UserIDKey, principal.ID.String())
			ctx = context.WithValue(ctx, UserEmailKey, principal.Email)
			ctx = context.WithValue(ctx, UserRoleKey, principal.Role.Name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// tokenFailureReason maps validation errors to client-safe reasons; internal
// detail stays in the logs.
func tokenFailureReason(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "Token has expired"
	case errors.Is(err, ErrTokenSignature):
		return "Invalid token signature"
	default:
		return "Invalid or malformed token"
	}
}

// GetUserIDFromContext returns the authenticated principal's ID, if any.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok
}

// GetUserEmailFromContext returns the authenticated principal's email, if any.
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

// GetUserRoleFromContext returns the authenticated principal's role, if any.
func GetUserRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(UserRoleKey).(string)
	return role, ok
}
