package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// Envelope status values. The set is closed; every response carries one.
const (
	StatusSuccess       = "SUCCESS"
	StatusValidation    = "VALIDATION_ERROR"
	StatusUnauthorized  = "UNAUTHORIZED"
	StatusNotFound      = "NOT_FOUND"
	StatusForbidden     = "FORBIDDEN"
	StatusInternalError = "INTERNAL_SERVER_ERROR"
)

// Internal error codes. CONFLICT is kept distinct from plain validation
// failures for callers inspecting errors, but renders with the
// VALIDATION_ERROR envelope status since the status set has no conflict member.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_SERVER_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// EnvelopeStatus maps the error code onto the closed envelope status set.
func (e *DomainError) EnvelopeStatus() string {
	switch e.Code {
	case CodeValidation, CodeConflict:
		return StatusValidation
	case CodeUnauthorized:
		return StatusUnauthorized
	case CodeNotFound:
		return StatusNotFound
	case CodeForbidden:
		return StatusForbidden
	default:
		return StatusInternalError
	}
}

// NewValidationError reports missing/malformed fields with field-level detail.
func NewValidationError(message string, details map[string]any) error {
	return &DomainError{Code: CodeValidation, Message: message, HTTPStatus: http.StatusBadRequest, Details: details}
}

// NewUnauthorized reports an authentication failure. The message stays
// generic to avoid acting as an oracle for credentials or codes.
func NewUnauthorized(message string) error {
	return &DomainError{Code: CodeUnauthorized, Message: message, HTTPStatus: http.StatusUnauthorized}
}

// NewForbidden reports an authorization failure.
func NewForbidden(message string) error {
	return &DomainError{Code: CodeForbidden, Message: message, HTTPStatus: http.StatusForbidden}
}

// NewNotFound reports an absent entity.
func NewNotFound(resource string) error {
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewConflict reports registration on the wrong path (phone or subject id
// already bound).
func NewConflict(message string) error {
	return &DomainError{Code: CodeConflict, Message: message, HTTPStatus: http.StatusConflict}
}

// NewInternalError wraps an unexpected fault. The cause is logged, never
// returned to the caller beyond an opaque message.
func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &DomainError{Code: CodeNotFound, Message: "resource not found", HTTPStatus: http.StatusNotFound}
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
