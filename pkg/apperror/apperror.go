// Package apperror defines the typed errors shared by services and handlers.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType categorizes application errors
type ErrorType int

const (
	// InternalError represents a generic internal failure
	InternalError ErrorType = iota
	// ConflictError represents a duplicate resource (email, review)
	ConflictError
	// UnauthorizedError represents a missing/invalid token or bad credentials
	UnauthorizedError
	// ForbiddenError represents an authenticated but not permitted request
	ForbiddenError
	// NotFoundError represents a missing resource
	NotFoundError
	// BadRequestError represents an invalid request (bad validation code, etc.)
	BadRequestError
)

// AppError carries an error type, a user-facing message, and an
// optional underlying error for debugging.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap supports errors.Is / errors.As chains
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error type to an HTTP status code
func (e *AppError) StatusCode() int {
	switch e.Type {
	case ConflictError:
		return http.StatusConflict
	case UnauthorizedError:
		return http.StatusUnauthorized
	case ForbiddenError:
		return http.StatusForbidden
	case NotFoundError:
		return http.StatusNotFound
	case BadRequestError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func New(errType ErrorType, message string, underlying error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlying,
	}
}

func NewConflictError(message string, underlying error) *AppError {
	return New(ConflictError, message, underlying)
}

func NewUnauthorizedError(message string, underlying error) *AppError {
	return New(UnauthorizedError, message, underlying)
}

func NewForbiddenError(message string, underlying error) *AppError {
	return New(ForbiddenError, message, underlying)
}

func NewNotFoundError(message string, underlying error) *AppError {
	return New(NotFoundError, message, underlying)
}

func NewBadRequestError(message string, underlying error) *AppError {
	return New(BadRequestError, message, underlying)
}

func NewInternalError(message string, underlying error) *AppError {
	return New(InternalError, message, underlying)
}

// FromError extracts an *AppError from an error chain
func FromError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType reports whether err is an AppError of the given type
func IsType(err error, errType ErrorType) bool {
	appErr, ok := FromError(err)
	return ok && appErr.Type == errType
}

func IsConflict(err error) bool { return IsType(err, ConflictError) }

func IsUnauthorized(err error) bool { return IsType(err, UnauthorizedError) }

func IsForbidden(err error) bool { return IsType(err, ForbiddenError) }

func IsNotFound(err error) bool { return IsType(err, NotFoundError) }

func IsBadRequest(err error) bool { return IsType(err, BadRequestError) }
