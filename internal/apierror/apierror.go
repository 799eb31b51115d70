// Package apierror provides standardized error response structures for the API
// plus the closed error taxonomy used across services. All errors returned to
// clients go through this package to ensure consistency and to prevent leaking
// internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"
)

// Sentinel errors for the business-level taxonomy. Services wrap these with
// context via fmt.Errorf("…: %w", …); handlers map them to HTTP statuses
// through StatusFor.
var (
	ErrValidation          = errors.New("validation error")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrNotFound            = errors.New("record not found")
	ErrPersistence         = errors.New("persistence failure")
	ErrAuthorizationDenied = errors.New("authorization denied")
)

// StatusFor maps a taxonomy error to its HTTP status code.
// Unrecognized errors default to 400: every failure is terminal for that
// user action and never retried automatically.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, ErrAuthorizationDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrPersistence):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Validation error", Fields: fields}
}
