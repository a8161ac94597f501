// Package errors provides standardized domain errors with codes for the
// portal's core operations.
//
// Usage:
//
//	// In services - return typed errors
//	if inUse > 0 {
//	    return errors.CategoryInUse("category is referenced by articles", inUse)
//	}
//
//	// In handlers - check with errors.Is
//	if errors.Is(err, errors.ErrInvalidTransition) {
//	    ...
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeNotFound           Code = "NOT_FOUND"
	CodeReferenceNotFound  Code = "REFERENCE_NOT_FOUND"
	CodeDuplicateSlug      Code = "DUPLICATE_SLUG"
	CodeInvalidTransition  Code = "INVALID_TRANSITION"
	CodeCategoryInUse      Code = "CATEGORY_IN_USE"
	CodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeForbidden          Code = "FORBIDDEN"
	CodeValidation         Code = "VALIDATION"
	CodeConflict           Code = "CONFLICT"
	CodeInternal           Code = "INTERNAL"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeTokenExpired       Code = "TOKEN_EXPIRED"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound, CodeReferenceNotFound:
		return http.StatusNotFound
	case CodeDuplicateSlug, CodeInvalidTransition, CodeCategoryInUse, CodeConflict:
		return http.StatusConflict
	case CodeUnauthorized, CodeInvalidCredentials, CodeTokenExpired:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeValidation:
		return http.StatusBadRequest
	case CodeStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrNotFound           = &Error{Code: CodeNotFound, Message: "not found"}
	ErrReferenceNotFound  = &Error{Code: CodeReferenceNotFound, Message: "referenced record not found"}
	ErrDuplicateSlug      = &Error{Code: CodeDuplicateSlug, Message: "slug already in use"}
	ErrInvalidTransition  = &Error{Code: CodeInvalidTransition, Message: "invalid status transition"}
	ErrCategoryInUse      = &Error{Code: CodeCategoryInUse, Message: "category is in use"}
	ErrStorageUnavailable = &Error{Code: CodeStorageUnavailable, Message: "storage unavailable"}
	ErrUnauthorized       = &Error{Code: CodeUnauthorized, Message: "unauthorized"}
	ErrForbidden          = &Error{Code: CodeForbidden, Message: "forbidden"}
	ErrValidation         = &Error{Code: CodeValidation, Message: "validation error"}
	ErrConflict           = &Error{Code: CodeConflict, Message: "conflict"}
	ErrInternal           = &Error{Code: CodeInternal, Message: "internal error"}
	ErrInvalidCredentials = &Error{Code: CodeInvalidCredentials, Message: "invalid credentials"}
	ErrTokenExpired       = &Error{Code: CodeTokenExpired, Message: "token expired"}
)

// Constructor functions for creating errors with custom messages.

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// ReferenceNotFound creates a reference not found error.
func ReferenceNotFound(msg string) *Error {
	return &Error{Code: CodeReferenceNotFound, Message: msg}
}

// ReferenceNotFoundf creates a reference not found error with formatted message.
func ReferenceNotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeReferenceNotFound, Message: fmt.Sprintf(format, args...)}
}

// DuplicateSlug creates a duplicate slug error naming the offending slug.
func DuplicateSlug(slug string) *Error {
	return &Error{
		Code:    CodeDuplicateSlug,
		Message: fmt.Sprintf("slug %q is already in use", slug),
		Details: map[string]string{"slug": slug},
	}
}

// InvalidTransition creates an invalid transition error naming both states.
func InvalidTransition(from, to string) *Error {
	return &Error{
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition article from %s to %s", from, to),
		Details: map[string]string{"from": from, "to": to},
	}
}

// CategoryInUse creates a category in use error carrying the count of
// referencing articles.
func CategoryInUse(msg string, count int) *Error {
	return &Error{
		Code:    CodeCategoryInUse,
		Message: msg,
		Details: map[string]int{"article_count": count},
	}
}

// StorageUnavailable wraps a transient storage failure. Safe to retry.
func StorageUnavailable(err error) *Error {
	return &Error{Code: CodeStorageUnavailable, Message: "storage unavailable", cause: err}
}

// Unauthorized creates an unauthorized error.
func Unauthorized(msg string) *Error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

// Forbidden creates a forbidden error.
func Forbidden(msg string) *Error {
	return &Error{Code: CodeForbidden, Message: msg}
}

// Forbiddenf creates a forbidden error with formatted message.
func Forbiddenf(format string, args ...any) *Error {
	return &Error{Code: CodeForbidden, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// ValidationWithDetails creates a validation error with field-level details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// Conflict creates a conflict error.
func Conflict(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// InvalidCredentials creates an invalid credentials error.
func InvalidCredentials(msg string) *Error {
	return &Error{Code: CodeInvalidCredentials, Message: msg}
}

// TokenExpired creates a token expired error.
func TokenExpired(msg string) *Error {
	return &Error{Code: CodeTokenExpired, Message: msg}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
