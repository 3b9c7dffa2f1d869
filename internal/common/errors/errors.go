// Package errors provides the standardized error taxonomy for the analysis
// pipeline and its external collaborators.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Board service failures.
	ErrCodeTransport      ErrorCode = "TRANSPORT_ERROR"
	ErrCodeUpstreamSchema ErrorCode = "UPSTREAM_SCHEMA_ERROR"
	ErrCodeBoardQuery     ErrorCode = "BOARD_QUERY_ERROR"

	// Language-model failures.
	ErrCodeIntentParsingFailed  ErrorCode = "INTENT_PARSING_FAILED"
	ErrCodeIntentUnavailable    ErrorCode = "INTENT_UNAVAILABLE"
	ErrCodeNarrationFailed      ErrorCode = "NARRATION_FAILED"
	ErrCodeNarrationUnavailable ErrorCode = "NARRATION_UNAVAILABLE"

	// Startup.
	ErrCodeMissingCredential ErrorCode = "CONFIG_MISSING_CREDENTIAL"
)

// StandardError represents a structured application error. Nothing in this
// system is retried, so Retryable is false throughout; the field stays on the
// struct because consumers of the JSON shape expect it.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// CodeOf extracts the ErrorCode from err, or "" when err is not a
// StandardError.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// NewTransportError wraps a network/HTTP failure reaching the board service.
func NewTransportError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTransport,
		Message:   "Board service request failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamSchemaError flags a malformed or unexpected board-service
// response shape.
func NewUpstreamSchemaError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamSchema,
		Message:   "Unexpected board service response shape",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewBoardQueryError wraps a GraphQL-level error returned inside a 200
// response.
func NewBoardQueryError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeBoardQuery,
		Message:   "Board service rejected the query",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewIntentParsingFailedError wraps an interpreter error that is not an
// availability problem.
func NewIntentParsingFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeIntentParsingFailed,
		Message:   "Intent extraction failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewIntentUnavailableError marks the interpreter as rate-limited,
// unauthorized or unconfigured.
func NewIntentUnavailableError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIntentUnavailable,
		Message:   "Language model unavailable for intent extraction",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNarrationFailedError wraps a narrator error that is not an availability
// problem.
func NewNarrationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNarrationFailed,
		Message:   "Insight narration failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNarrationUnavailableError marks the narrator as rate-limited,
// unauthorized or unconfigured.
func NewNarrationUnavailableError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNarrationUnavailable,
		Message:   "Language model unavailable for narration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingCredentialError reports the one fatal startup condition: a
// mandatory credential absent from configuration and environment.
func NewMissingCredentialError(key string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingCredential,
		Message:   "Mandatory credential missing",
		Details:   fmt.Sprintf("config key: %s", key),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
