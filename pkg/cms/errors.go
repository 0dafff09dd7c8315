package cms

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// CodeTimeout is the APIError code set when a request exceeds the configured
// timeout before the transport completes.
const CodeTimeout = "TIMEOUT"

// defaultErrorType is the problem type used when the body carries none.
const defaultErrorType = "about:blank"

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
	Message string `json:"message"         yaml:"message"`
}

// APIError represents a non-2xx response from the API, in the problem-details
// shape the server uses. Fields absent from the response body are backfilled
// from the HTTP status.
type APIError struct {
	Type     string       `json:"type,omitempty"     yaml:"type,omitempty"`
	Title    string       `json:"title"              yaml:"title"`
	Status   int          `json:"status"             yaml:"status"`
	Instance string       `json:"instance,omitempty" yaml:"instance,omitempty"`
	Details  string       `json:"details,omitempty"  yaml:"details,omitempty"`
	Code     string       `json:"code,omitempty"     yaml:"code,omitempty"`
	Errors   []FieldError `json:"errors,omitempty"   yaml:"errors,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s (status %d)", e.Title, e.Status)
	if e.Details != "" {
		msg += ": " + e.Details
	}

	if e.Code != "" {
		msg += " [" + e.Code + "]"
	}

	return msg
}

// ConfigurationError reports a precondition failure detected before any
// network call: missing credentials, or an operation the configured API
// version does not support. It is never retried.
type ConfigurationError struct {
	Message string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return e.Message
}

// Common configuration errors.
var (
	ErrMissingCredentials = &ConfigurationError{
		Message: "no credentials configured: provide client id/secret or set an access token",
	}
	ErrUpdateUnsupported = &ConfigurationError{
		Message: "partial updates are not supported by API version preview2",
	}
)

// NewTimeoutError returns the APIError reported when the wall-clock timeout
// elapses before the transport completes.
func NewTimeoutError() *APIError {
	return &APIError{
		Type:   defaultErrorType,
		Title:  "Request Timeout",
		Status: http.StatusRequestTimeout,
		Code:   CodeTimeout,
	}
}

// ParseAPIError builds an APIError from a non-2xx response. The body is
// parsed as a structured problem when possible; any absent field is
// backfilled from the HTTP status, so a missing or unparseable body still
// yields a usable error and never masks the original failure.
func ParseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{}

	if len(body) > 0 {
		// A decode failure leaves the zero value; backfill covers it.
		_ = json.Unmarshal(body, apiErr)
	}

	if apiErr.Status == 0 {
		apiErr.Status = status
	}

	if apiErr.Title == "" {
		apiErr.Title = statusTitle(status)
	}

	if apiErr.Type == "" {
		apiErr.Type = defaultErrorType
	}

	return apiErr
}

// statusTitle derives a generic human summary from an HTTP status code.
func statusTitle(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}

	return fmt.Sprintf("HTTP %d", status)
}

// IsTimeout checks if the error is a timeout APIError.
func IsTimeout(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Code == CodeTimeout
	}

	return false
}

// IsNotFound checks if the error is a not found APIError.
func IsNotFound(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusNotFound
	}

	return false
}

// IsConfigurationError checks if the error is a ConfigurationError.
func IsConfigurationError(err error) bool {
	confErr := &ConfigurationError{}

	return errors.As(err, &confErr)
}
