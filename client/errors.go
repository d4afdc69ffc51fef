package client

import (
	"fmt"

	"github.com/cockroachdb/errors"

	ierr "github.com/quoteflow/quote-service/internal/errors"
)

// APIError is a failure envelope decoded from the server. Callers branch on
// Code, never on Message.
type APIError struct {
	Code    string
	Message string
	Status  int
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("quoteflow: %s (http %d)", e.Code, e.Status)
	}
	return fmt.Sprintf("quoteflow: %s: %s", e.Code, e.Message)
}

func codeOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}

func IsFreeTierLimit(err error) bool {
	return codeOf(err) == ierr.ErrCodeFreeTierLimit
}

func IsProRequired(err error) bool {
	return codeOf(err) == ierr.ErrCodeProRequired
}

func IsBusinessRequired(err error) bool {
	return codeOf(err) == ierr.ErrCodeBusinessRequired
}

func IsQuoteExpired(err error) bool {
	return codeOf(err) == ierr.ErrCodeQuoteExpired
}

func IsNotFound(err error) bool {
	return codeOf(err) == ierr.ErrCodeNotFound
}

func IsValidation(err error) bool {
	return codeOf(err) == ierr.ErrCodeValidation
}

func IsInvalidOperation(err error) bool {
	return codeOf(err) == ierr.ErrCodeInvalidOperation
}

func IsUnauthorized(err error) bool {
	return codeOf(err) == ierr.ErrCodeUnauthorized
}

// RetryableError wraps a transport failure whose outcome on the server is
// unknown. The caller may safely retry idempotent calls.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("quoteflow: request did not complete: %v", e.Err)
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

func IsRetryable(err error) bool {
	var r *RetryableError
	return errors.As(err, &r)
}
