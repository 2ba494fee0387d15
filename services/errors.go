package services

import (
	"errors"
	"fmt"
)

// Domain error taxonomy. Controllers map these onto HTTP status codes and
// SCREAMING_SNAKE error codes; services never touch the HTTP layer.
var (
	// ErrNotFound means an id did not resolve to a stored entity
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the actor lacks the permission a transition requires
	ErrForbidden = errors.New("forbidden")

	// ErrNoNextState means an advance was attempted from the terminal status
	ErrNoNextState = errors.New("no next state")

	// ErrInvalidCredentials means a login attempt failed
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports a missing or malformed field on input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}
