package auth

import "errors"

// Login failures are distinguishable internally for diagnostics; both are
// surfaced to the caller as a 400 with a reason string.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("password doesn't match")
)

// RegisterRequest represents the registration request body.
type RegisterRequest struct {
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8"`
	Photo     *string `json:"photo,omitempty" validate:"omitempty,url"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents the login response body.
type LoginResponse struct {
	Token     string `json:"token"`
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}
