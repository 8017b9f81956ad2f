package apperrors

import "errors"

// Sentinel errors for the failure classes the handlers know how to map to
// HTTP responses. Services and repositories wrap these with fmt.Errorf("%w")
// so the original context survives for logging while errors.Is keeps working
// at the boundary.
var (
	// ErrInvalidInput covers malformed or missing input that slipped past
	// schema validation, e.g. hashing an empty password.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized covers missing/invalid credentials or tokens.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is the explicit absence signal for lookups by id.
	ErrNotFound = errors.New("not found")

	// ErrReferenceNotFound means an association target does not exist,
	// e.g. a product referencing an unknown category id.
	ErrReferenceNotFound = errors.New("referenced entity not found")

	// ErrConflict covers unique-constraint violations such as duplicate
	// emails or usernames.
	ErrConflict = errors.New("conflict")
)
