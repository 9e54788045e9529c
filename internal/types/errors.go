package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for health coach errors.
type ErrorCode string

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_PARSE_FAILED      ErrorCode = "CONFIG_PARSE_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
)

// Database error codes
const (
	DB_OPEN_FAILED      ErrorCode = "DB_OPEN_FAILED"
	DB_MIGRATION_FAILED ErrorCode = "DB_MIGRATION_FAILED"
	DB_QUERY_FAILED     ErrorCode = "DB_QUERY_FAILED"
	DB_NOT_FOUND        ErrorCode = "DB_NOT_FOUND"
)

// Completion error codes
const (
	LLM_COMPLETION_FAILED  ErrorCode = "LLM_COMPLETION_FAILED"
	LLM_PROVIDER_NOT_FOUND ErrorCode = "LLM_PROVIDER_NOT_FOUND"
	LLM_PROVIDER_INIT      ErrorCode = "LLM_PROVIDER_INIT_FAILED"
	LLM_UNAUTHORIZED       ErrorCode = "LLM_PROVIDER_UNAUTHORIZED"
	LLM_RATE_LIMITED       ErrorCode = "LLM_PROVIDER_RATE_LIMITED"
	LLM_NETWORK_FAILED     ErrorCode = "LLM_NETWORK_FAILED"
)

// Embedding and ranking error codes
const (
	EMBED_FAILED         ErrorCode = "EMBED_FAILED"
	EMBED_INVALID_CONFIG ErrorCode = "EMBED_INVALID_CONFIG"
	RANK_FAILED          ErrorCode = "RANK_FAILED"
	RANK_INVALID_INPUT   ErrorCode = "RANK_INVALID_INPUT"
)

// Retrieval error codes. These are always recovered by callers: a failed
// retrieval source degrades to an empty result, it never aborts a run.
const (
	RETRIEVAL_SEARCH_FAILED ErrorCode = "RETRIEVAL_SEARCH_FAILED"
	RETRIEVAL_STORE_FAILED  ErrorCode = "RETRIEVAL_STORE_FAILED"
)

// Workflow error codes
const (
	WORKFLOW_STAGE_FAILED  ErrorCode = "WORKFLOW_STAGE_FAILED"
	WORKFLOW_INVALID_STATE ErrorCode = "WORKFLOW_INVALID_STATE"
	WORKFLOW_INVALID_INPUT ErrorCode = "WORKFLOW_INVALID_INPUT"
)

// CoachError represents a structured error with error code, message, and
// optional cause. It supports error wrapping and retryability hints.
type CoachError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error implements the error interface.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *CoachError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
func (e *CoachError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
func (e *CoachError) Is(target error) bool {
	var coachErr *CoachError
	if errors.As(target, &coachErr) {
		return e.Code == coachErr.Code
	}
	return false
}

// NewError creates a new non-retryable CoachError with the given code and message.
func NewError(code ErrorCode, message string) *CoachError {
	return &CoachError{
		Code:    code,
		Message: message,
	}
}

// NewRetryableError creates a new retryable CoachError. Use this for
// transient errors that may succeed on retry (e.g., network timeouts).
func NewRetryableError(code ErrorCode, message string) *CoachError {
	return &CoachError{
		Code:      code,
		Message:   message,
		Retryable: true,
	}
}

// WrapError creates a new non-retryable CoachError that wraps an existing error.
// The wrapped error is accessible via Unwrap() for error chain inspection.
func WrapError(code ErrorCode, message string, cause error) *CoachError {
	return &CoachError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapRetryableError creates a retryable CoachError that wraps an existing error.
func WrapRetryableError(code ErrorCode, message string, cause error) *CoachError {
	return &CoachError{
		Code:      code,
		Message:   message,
		Retryable: true,
		Cause:     cause,
	}
}

// IsRetryable reports whether err carries a retryable hint anywhere in
// its unwrap chain.
func IsRetryable(err error) bool {
	var coachErr *CoachError
	if errors.As(err, &coachErr) {
		return coachErr.Retryable
	}
	return false
}

// CodeOf extracts the error code from err, or empty string if err is not
// a CoachError.
func CodeOf(err error) ErrorCode {
	var coachErr *CoachError
	if errors.As(err, &coachErr) {
		return coachErr.Code
	}
	return ""
}
