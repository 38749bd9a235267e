package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails shape validation (missing field,
// malformed email, destination too short).
// Handlers should map this to HTTP 400 Bad Request.
var ErrValidation = errors.New("validation error")

// ErrBusinessRule is returned by service functions when well-formed input
// violates a business rule (start date in the past, end date before start).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrBusinessRule = errors.New("business rule violation")

// ErrDependency marks failures of an external collaborator such as the
// database. Handlers should map this to HTTP 500.
var ErrDependency = errors.New("dependency failure")
