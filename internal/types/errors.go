package types

import "errors"

// Sentinel errors shared by every repository, service and handler. Callers
// wrap them with context and the HTTP edge maps them to status codes.
var ErrNotFound = errors.New("requested item not found")
var ErrConflict = errors.New("item already exists or conflict")
var ErrUnauthenticated = errors.New("authentication required or invalid credentials")
var ErrForbidden = errors.New("action forbidden")
var ErrValidation = errors.New("invalid input data")
