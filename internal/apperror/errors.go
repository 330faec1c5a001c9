// Package apperror provides domain-specific error types for the admin panel.
// These errors carry an HTTP status code and a user-safe message. The Echo
// error handler maps them to appropriate HTTP responses automatically.
//
// NEVER return raw transport or remote-service errors to the client. Always
// wrap them in an apperror type or return a generic internal error.
package apperror

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// AppError is the base error type for all domain errors. It carries an
// HTTP status code, a machine-readable error type, and a human-readable
// message safe to show to the client.
type AppError struct {
	// Code is the HTTP status code (e.g., 404, 422, 502).
	Code int `json:"-"`

	// Type is a machine-readable error classifier (e.g., "not_found").
	Type string `json:"type"`

	// Message is a human-readable description safe for the client.
	Message string `json:"message"`

	// Fields holds per-field validation messages from the remote service.
	// Only set on validation errors.
	Fields map[string][]string `json:"fields,omitempty"`

	// Internal holds the underlying error for logging. Never exposed to client.
	Internal error `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *AppError) Unwrap() error {
	return e.Internal
}

// IsType reports whether err is an AppError with the given classifier.
func IsType(err error, typ string) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Type == typ
}

// Error type classifiers. The gateway produces these; view handlers branch
// on them to pick the right banner.
const (
	TypeNetwork    = "network_failure"
	TypeValidation = "validation_failure"
	TypeNotFound   = "not_found"
	TypeInternal   = "internal_error"
	TypeBadRequest = "bad_request"
	TypeUnauth     = "unauthorized"
)

// --- Constructors for common error types ---

// NewNotFound creates a 404 Not Found error.
func NewNotFound(message string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Type:    TypeNotFound,
		Message: message,
	}
}

// NewBadRequest creates a 400 Bad Request error.
func NewBadRequest(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Type:    TypeBadRequest,
		Message: message,
	}
}

// NewUnauthorized creates a 401 Unauthorized error.
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnauthorized,
		Type:    TypeUnauth,
		Message: message,
	}
}

// NewNetwork creates a 502 error for transport failures against the remote
// campaign service. The real error is kept in Internal for logging; the
// client only sees a generic retry message.
func NewNetwork(err error) *AppError {
	return &AppError{
		Code:     http.StatusBadGateway,
		Type:     TypeNetwork,
		Message:  "The campaign service could not be reached. Please try again.",
		Internal: err,
	}
}

// NewValidation creates a 422 error carrying the remote service's per-field
// validation messages.
func NewValidation(fields map[string][]string) *AppError {
	e := &AppError{
		Code:   http.StatusUnprocessableEntity,
		Type:   TypeValidation,
		Fields: fields,
	}
	e.Message = e.Flatten()
	return e
}

// Flatten joins all field messages into a single comma-separated string,
// prefixed with "Validation failed: ". Fields are walked in sorted order so
// the message is stable.
func (e *AppError) Flatten() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var msgs []string
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k]...)
	}
	return "Validation failed: " + strings.Join(msgs, ", ")
}

// NewInternal creates a 500 Internal Server Error. The real error is stored
// in Internal for logging but the client only sees a generic message.
func NewInternal(err error) *AppError {
	return &AppError{
		Code:     http.StatusInternalServerError,
		Type:     TypeInternal,
		Message:  "An unexpected error occurred. Please try again.",
		Internal: err,
	}
}

// SafeMessage returns the client-safe error message from an error. If the
// error is an AppError, returns its Message field (which is safe to expose).
// For any other error type, returns a generic message to prevent leaking
// internal details like remote URLs or response bodies.
func SafeMessage(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Message
	}
	return "an unexpected error occurred"
}

// SafeCode returns the HTTP status code from an AppError, or 500 for
// any other error type.
func SafeCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
