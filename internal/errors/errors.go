package errors

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

// Sentinel errors shared across the application. Services mark their errors
// with one of these so handlers can translate them into the wire envelope
// without inspecting messages.
var (
	ErrNotFound         = new(ErrCodeNotFound, "resource not found")
	ErrAlreadyExists    = new(ErrCodeAlreadyExists, "resource already exists")
	ErrValidation       = new(ErrCodeValidation, "validation error")
	ErrInvalidOperation = new(ErrCodeInvalidOperation, "invalid operation")
	ErrPermissionDenied = new(ErrCodePermissionDenied, "permission denied")
	ErrUnauthorized     = new(ErrCodeUnauthorized, "unauthorized")
	ErrFreeTierLimit    = new(ErrCodeFreeTierLimit, "free tier quote limit reached")
	ErrProRequired      = new(ErrCodeProRequired, "pro plan required")
	ErrBusinessRequired = new(ErrCodeBusinessRequired, "business plan required")
	ErrQuoteExpired     = new(ErrCodeQuoteExpired, "quote has expired")
	ErrHTTPClient       = new(ErrCodeHTTPClient, "http client error")
	ErrDatabase         = new(ErrCodeDatabase, "database error")
	ErrSystem           = new(ErrCodeSystemError, "system error")

	// maps sentinel errors to http status codes
	statusCodeMap = map[error]int{
		ErrNotFound:         http.StatusNotFound,
		ErrAlreadyExists:    http.StatusConflict,
		ErrValidation:       http.StatusBadRequest,
		ErrInvalidOperation: http.StatusBadRequest,
		ErrPermissionDenied: http.StatusForbidden,
		ErrUnauthorized:     http.StatusUnauthorized,
		ErrFreeTierLimit:    http.StatusPaymentRequired,
		ErrProRequired:      http.StatusPaymentRequired,
		ErrBusinessRequired: http.StatusPaymentRequired,
		ErrQuoteExpired:     http.StatusConflict,
		ErrHTTPClient:       http.StatusInternalServerError,
		ErrDatabase:         http.StatusInternalServerError,
		ErrSystem:           http.StatusInternalServerError,
	}
)

// Machine-readable error codes. These are the `error` field of the response
// envelope and are the only thing API clients branch on.
const (
	ErrCodeNotFound         = "not_found"
	ErrCodeAlreadyExists    = "already_exists"
	ErrCodeValidation       = "validation_error"
	ErrCodeInvalidOperation = "invalid_operation"
	ErrCodePermissionDenied = "permission_denied"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeFreeTierLimit    = "free_tier_limit"
	ErrCodeProRequired      = "pro_required"
	ErrCodeBusinessRequired = "business_required"
	ErrCodeQuoteExpired     = "quote_expired"
	ErrCodeHTTPClient       = "http_client_error"
	ErrCodeDatabase         = "database_error"
	ErrCodeSystemError      = "internal_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.Code + ": " + e.Message
	}
	return e.Code + ": " + e.Err.Error()
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

func IsFreeTierLimit(err error) bool {
	return errors.Is(err, ErrFreeTierLimit)
}

func IsProRequired(err error) bool {
	return errors.Is(err, ErrProRequired)
}

func IsBusinessRequired(err error) bool {
	return errors.Is(err, ErrBusinessRequired)
}

func IsQuoteExpired(err error) bool {
	return errors.Is(err, ErrQuoteExpired)
}

// CodeFromErr returns the wire-level error code for an error. Unmarked errors
// report internal_error so transport failures never leak internals.
func CodeFromErr(err error) string {
	for sentinel := range statusCodeMap {
		if errors.Is(err, sentinel) {
			return sentinel.(*InternalError).Code
		}
	}
	return ErrCodeSystemError
}

func HTTPStatusFromErr(err error) int {
	for sentinel, status := range statusCodeMap {
		if errors.Is(err, sentinel) {
			return status
		}
	}
	return http.StatusInternalServerError
}
