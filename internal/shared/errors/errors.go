// Package errors provides application-level error types and utilities.
// Besides the generic HTTP-shaped errors it defines the failure kinds of the
// OAuth connect flow: provider rejection, malformed provider response, state
// mismatch and storage unavailability.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "validation_error"
	ErrorTypeInternal    ErrorType = "internal_error"
	ErrorTypeRateLimited ErrorType = "rate_limited"

	ErrorTypeProviderRejected    ErrorType = "provider_rejected"
	ErrorTypeProviderUnreachable ErrorType = "provider_unreachable"
	ErrorTypeMalformedResponse   ErrorType = "malformed_response"
	ErrorTypeStateMismatch       ErrorType = "invalid_state"
	ErrorTypeStorageUnavailable  ErrorType = "storage_unavailable"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func newAppError(t ErrorType, code int, message string, details []string) *AppError {
	e := &AppError{Type: t, Message: message, Code: code}
	if len(details) > 0 {
		e.Details = details[0]
	}
	return e
}

func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details)
}

func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details)
}

func NewRateLimitedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeRateLimited, http.StatusTooManyRequests, message, details)
}

// NewProviderRejectedError is returned when the provider answers ok:false.
// Details carries the provider's error code verbatim.
func NewProviderRejectedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeProviderRejected, http.StatusInternalServerError, message, details)
}

// NewProviderUnreachableError covers transport failures and timeouts.
func NewProviderUnreachableError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeProviderUnreachable, http.StatusInternalServerError, message, details)
}

// NewMalformedResponseError is returned when required fields are missing from a successful provider response.
func NewMalformedResponseError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeMalformedResponse, http.StatusInternalServerError, message, details)
}

func NewStateMismatchError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeStateMismatch, http.StatusBadRequest, message, details)
}

func NewStorageUnavailableError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeStorageUnavailable, http.StatusInternalServerError, message, details)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType reports whether err carries an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

func IsValidationError(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

// IsDuplicateError checks if the error is a database duplicate key error
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	// MySQL
	if strings.Contains(errStr, "Duplicate entry") || strings.Contains(errStr, "duplicate key") {
		return true
	}
	// SQLite and libsql
	return strings.Contains(errStr, "UNIQUE constraint failed")
}
