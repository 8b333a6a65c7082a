package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource (or a nested item within a trip) does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized is returned when no valid credentials accompany a request
// (bad password, missing or expired token). Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when an authenticated principal attempts an
// operation it is not permitted to perform (e.g. mutating another user's
// trip without the admin role). Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrAlreadyExists is returned on uniqueness violations (duplicate user
// email, duplicate catalog destination name). Handlers should map this to
// HTTP 409 Conflict.
var ErrAlreadyExists = errors.New("already exists")
