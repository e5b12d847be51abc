package fastfuels

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// APIError represents an error response from the FastFuels API. The API
// reports errors as a JSON object with a single "detail" member.
type APIError struct {
	StatusCode int    `json:"-"      yaml:"-"`
	Detail     string `json:"detail" yaml:"detail"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("API error (status: %d)", e.StatusCode)
	}

	return fmt.Sprintf("%s (status: %d)", e.Detail, e.StatusCode)
}

// ParseAPIError builds an APIError from a non-2xx response body. Bodies that
// are not the documented {"detail": ...} shape are carried verbatim.
func ParseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	err := json.Unmarshal(body, apiErr)
	if err != nil || apiErr.Detail == "" {
		apiErr.Detail = strings.TrimSpace(string(body))
	}

	return apiErr
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired       = errors.New("config is required")
	ErrAPIKeyRequired       = errors.New("API key is required")
	ErrEndpointRequired     = errors.New("API endpoint is required")
	ErrNoHostInURL          = errors.New("no host specified in URL")
	ErrInvalidPollInterval  = errors.New("poll interval must be greater than zero")
	ErrInvalidWaitTimeout   = errors.New("wait timeout must not be negative")
	ErrDomainIDRequired     = errors.New("domain ID is required")
	ErrExportFormatRequired = errors.New("export format is required")
	ErrExportTargetRequired = errors.New("export target is required")
	ErrExportNotReady       = errors.New("export is not completed")
	ErrExportExpired        = errors.New("export signed URL has expired")
	ErrNoSignedURL          = errors.New("export has no signed URL")
	ErrNoAttributesSet      = errors.New("no grid attributes configured")
	ErrUnknownConfigKey     = errors.New("unknown configuration key")
	ErrKeyFieldCannotUnset  = errors.New("the api key cannot be unset via the config command")
	ErrInvalidOutputFormat  = errors.New("invalid output format")
)

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}

	return false
}

// IsUnauthorized checks if the error is an authentication error.
func IsUnauthorized(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}

	return false
}

// IsValidation checks if the error is a request validation error.
func IsValidation(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnprocessableEntity
	}

	return false
}

// OperationFailedError is returned when a resource reaches a failed terminal
// status while waiting for it to complete.
type OperationFailedError struct {
	// Status is the terminal status the resource reached.
	Status Status

	// Detail carries the failure detail reported by the API, if any.
	Detail string

	// Snapshot is the last resource snapshot observed.
	Snapshot interface{}
}

// Error implements the error interface.
func (e *OperationFailedError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("operation finished with status %q and no error details available", e.Status)
	}

	return fmt.Sprintf("operation finished with status %q: %s", e.Status, e.Detail)
}

// WaitTimeoutError is returned when a resource does not reach a terminal
// status before the configured wait timeout elapses.
type WaitTimeoutError struct {
	// LastStatus is the most recent non-terminal status observed.
	LastStatus Status

	// Elapsed is how long the waiter polled before giving up.
	Elapsed time.Duration

	// Polls is the number of status checks performed.
	Polls int

	// Snapshot is the last resource snapshot observed.
	Snapshot interface{}
}

// Error implements the error interface.
func (e *WaitTimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for completion (last status: %q, polls: %d)",
		e.Elapsed.Round(time.Millisecond), e.LastStatus, e.Polls)
}

// IsOperationFailed checks if the error indicates a failed remote operation.
func IsOperationFailed(err error) bool {
	failedErr := &OperationFailedError{}

	return errors.As(err, &failedErr)
}

// IsWaitTimeout checks if the error indicates a polling timeout.
func IsWaitTimeout(err error) bool {
	timeoutErr := &WaitTimeoutError{}

	return errors.As(err, &timeoutErr)
}
