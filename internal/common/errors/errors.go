// Package errors provides standardized error handling for the admin data layer.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Transport errors
const (
	ErrCodeNetwork         ErrorCode = "NETWORK_ERROR"
	ErrCodeHTTPStatus      ErrorCode = "HTTP_STATUS_ERROR"
	ErrCodeRequestBuild    ErrorCode = "REQUEST_BUILD_FAILED"
	ErrCodeEnvelopeDecode  ErrorCode = "ENVELOPE_DECODE_ERROR"
	ErrCodeSessionStore    ErrorCode = "SESSION_STORE_ERROR"
	ErrCodeIdentity        ErrorCode = "IDENTITY_ERROR"
	ErrCodeMultipartEncode ErrorCode = "MULTIPART_ENCODE_FAILED"
)

// Client-side state errors
const (
	ErrCodeInvalidState     ErrorCode = "INVALID_STATE"
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden        ErrorCode = "FORBIDDEN"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause, if any.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata sets a metadata entry and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

// NewNetworkError wraps a transport-level failure (DNS, refused, timeout, cancel).
func NewNetworkError(method, path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNetwork,
		Message:   "Request to backend failed",
		Details:   fmt.Sprintf("%s %s: %s", method, path, err.Error()),
		Retryable: true,
		Metadata: map[string]interface{}{
			"method": method,
			"path":   path,
		},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewHTTPStatusError reports a non-2xx response from the backend.
func NewHTTPStatusError(method, path string, status int, body string) *StandardError {
	return &StandardError{
		Code:      ErrCodeHTTPStatus,
		Message:   fmt.Sprintf("Backend responded with status %d", status),
		Details:   truncate(body, 512),
		Retryable: status >= 500,
		Metadata: map[string]interface{}{
			"method": method,
			"path":   path,
			"status": status,
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewRequestBuildError reports a request that could not be constructed.
func NewRequestBuildError(method, path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestBuild,
		Message:   "Failed to build request",
		Details:   fmt.Sprintf("%s %s: %s", method, path, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewEnvelopeDecodeError reports a response whose shape does not match the expected envelope.
func NewEnvelopeDecodeError(key string, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEnvelopeDecode,
		Message:   fmt.Sprintf("Unexpected response shape for %q", key),
		Details:   details,
		Retryable: false,
		Metadata:  map[string]interface{}{"envelope": key},
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionStoreError wraps a failure of the token storage backend.
func NewSessionStoreError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionStore,
		Message:   "Session storage unavailable",
		Details:   fmt.Sprintf("%s: %s", op, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewIdentityError reports a failure returned by the identity provider.
func NewIdentityError(op string, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIdentity,
		Message:   "Identity provider rejected the request",
		Details:   fmt.Sprintf("%s: %s", op, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMultipartEncodeError wraps a failure while writing a multipart body.
func NewMultipartEncodeError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMultipartEncode,
		Message:   "Failed to encode form data",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewInvalidStateError reports an operation attempted in the wrong lifecycle state.
func NewInvalidStateError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidState,
		Message:   "Operation not allowed in current state",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError reports request data that failed local validation.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewUnauthorizedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnauthorized,
		Message:   "Not signed in",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewForbiddenError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeForbidden,
		Message:   "Access restricted to administrators",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// As returns the StandardError in err's chain, if any.
func As(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	stdErr, ok := As(err)
	return ok && stdErr.Code == code
}

// StatusCode returns the backend HTTP status carried by err, or 0.
func StatusCode(err error) int {
	stdErr, ok := As(err)
	if !ok || stdErr.Metadata == nil {
		return 0
	}
	if status, ok := stdErr.Metadata["status"].(int); ok {
		return status
	}
	return 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeNetwork, ErrCodeHTTPStatus, ErrCodeRequestBuild, ErrCodeMultipartEncode:
		return "TRANSPORT"
	case ErrCodeEnvelopeDecode:
		return "PROTOCOL"
	case ErrCodeSessionStore, ErrCodeIdentity, ErrCodeUnauthorized, ErrCodeForbidden:
		return "AUTH"
	case ErrCodeInvalidState, ErrCodeValidationFailed:
		return "CLIENT"
	default:
		return "UNKNOWN"
	}
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
