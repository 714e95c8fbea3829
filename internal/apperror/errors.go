package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized is returned when no valid session is present.
	ErrUnauthorized = errors.New("Authentication required")
	// ErrInvalidCredentials is returned for an unknown email, inactive user or wrong password.
	ErrInvalidCredentials = errors.New("Invalid email or password")
	// ErrForbidden is returned when the session role lacks a capability.
	ErrForbidden = errors.New("Insufficient permissions")
	// ErrNotFound is returned when a referenced id does not exist.
	ErrNotFound = errors.New("Not found")
	// ErrInvalidTransition is returned when a reviewed submission is moved to another terminal state.
	ErrInvalidTransition = errors.New("Submission has already been reviewed")
)

// ValidationError is a user-correctable input problem.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation creates a ValidationError for a field.
func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Required creates the error reported for a missing required field.
func Required(field string) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("Field '%s' is required", field)}
}

// NotFound wraps ErrNotFound with the resource name so errors.Is still matches.
func NotFound(resource string) error {
	return fmt.Errorf("%s %w", resource, errNotFoundSuffix)
}

var errNotFoundSuffix = &notFoundError{}

type notFoundError struct{}

func (*notFoundError) Error() string { return "not found" }

func (*notFoundError) Is(target error) bool { return target == ErrNotFound }

// HTTPStatus maps an error to its HTTP status code and the message safe to return.
// Unknown errors map to 500 with a generic message.
func HTTPStatus(err error) (int, string) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, vErr.Message
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrInvalidCredentials.Error()
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, ErrUnauthorized.Error()
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, ErrForbidden.Error()
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, capitalize(err.Error())
	case errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict, ErrInvalidTransition.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
