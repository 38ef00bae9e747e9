package usecase

import "errors"

// Sentinel errors returned by the services. Callers wrap them with
// fmt.Errorf("%w: ...") and the HTTP layer maps each to a response status.
var (
	// ErrInvalidInput covers malformed categories, ids and date filters.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned for missing predictions and standings tables.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized means the bearer token failed introspection.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the caller is authenticated but lacks VIP
	// membership or the admin role.
	ErrForbidden = errors.New("forbidden")

	// ErrDependencyUnavailable signals a downstream outage (provider,
	// membership service) that the caller may retry.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
