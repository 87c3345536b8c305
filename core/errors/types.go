// ABOUTME: Custom error types for the core business logic
// ABOUTME: Structured errors let the API layer map failures to HTTP statuses

package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents invalid caller input. It always fails fast,
// before any network I/O.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NotFoundError represents a resource not found error.
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ExternalAPIError represents a definitive answer from an upstream API
// that is nonetheless a failure: a non-2xx status, or a success-status
// body carrying an application-level error code.
type ExternalAPIError struct {
	StatusCode int
	Message    string
	API        string
}

// Error implements the error interface.
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// RetryExhaustedError is returned when the retry engine has used every
// attempt without a success. Callers treat it as a normal empty-result
// outcome for one source, never as a crash.
type RetryExhaustedError struct {
	Attempts int
	LastErr  error
}

// Error implements the error interface.
func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("all %d attempts failed: %v", e.Attempts, e.LastErr)
}

// Unwrap exposes the last underlying error.
func (e *RetryExhaustedError) Unwrap() error { return e.LastErr }

// AggregateError is raised only when every fanned-out source failed. Its
// message concatenates each source's name and error.
type AggregateError struct {
	Failures []string
}

// Error implements the error interface.
func (e *AggregateError) Error() string {
	return "all sources failed: " + strings.Join(e.Failures, "; ")
}

// IsValidation checks if an error is a ValidationError.
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsNotFound checks if an error is a NotFoundError.
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsExternalAPI checks if an error is an ExternalAPIError.
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// IsRetryExhausted checks if an error is a RetryExhaustedError.
func IsRetryExhausted(err error) bool {
	var rErr *RetryExhaustedError
	return errors.As(err, &rErr)
}

// IsAggregate checks if an error is an AggregateError.
func IsAggregate(err error) bool {
	var aErr *AggregateError
	return errors.As(err, &aErr)
}

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
