package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors for the failure classes the client deals with.
var (
	// ErrNetwork covers an unreachable remote API or a non-2xx response
	// that carries no more specific meaning.
	ErrNetwork = errors.New("network failure")
	// ErrAuthExpired is a 401 / invalid-token response on an authenticated call.
	ErrAuthExpired = errors.New("authentication expired")
	// ErrNotFound is a 404 from the remote API.
	ErrNotFound = errors.New("resource not found")
	// ErrForbidden is a 403 from the remote API.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput is malformed local input (e.g. an empty required field).
	ErrInvalidInput = errors.New("invalid input")
	// ErrMalformedState is an unparseable persisted session blob.
	ErrMalformedState = errors.New("malformed persisted state")
	// ErrConflict is a 409 from the remote API.
	ErrConflict = errors.New("conflict")
)

// AppError represents a structured application error with HTTP status mapping.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Network creates an error for an unreachable or failing remote API.
func Network(message string, err error) *AppError {
	return &AppError{
		Code:    "NETWORK_FAILURE",
		Message: message,
		Status:  http.StatusBadGateway,
		Err:     errors.Join(ErrNetwork, err),
	}
}

// AuthExpired creates a 401 error for an invalid or expired credential.
func AuthExpired(message string) *AppError {
	return &AppError{
		Code:    "AUTH_EXPIRED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     ErrAuthExpired,
	}
}

// NotFound creates a 404 error.
func NotFound(resource string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// Forbidden creates a 403 error.
func Forbidden(message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     ErrForbidden,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// Conflict creates a 409 error.
func Conflict(message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
		Status:  http.StatusConflict,
		Err:     ErrConflict,
	}
}

// MalformedState creates an error for an unparseable credential file.
// It is never fatal; callers treat it as an empty session.
func MalformedState(message string, err error) *AppError {
	return &AppError{
		Code:    "MALFORMED_STATE",
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     errors.Join(ErrMalformedState, err),
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuthExpired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
