// Package errors provides standardized error handling for the
// recommendation resolution pipeline.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeDiscoveryFailed  ErrorCode = "DISCOVERY_FAILED"
	ErrCodeDiscoveryEmpty   ErrorCode = "DISCOVERY_EMPTY"
	ErrCodeDiscoveryTimeout ErrorCode = "DISCOVERY_TIMEOUT"

	ErrCodeGenerativeFailed   ErrorCode = "GENERATIVE_FAILED"
	ErrCodeGenerativeTimeout  ErrorCode = "GENERATIVE_TIMEOUT"
	ErrCodeGenerativeUnusable ErrorCode = "GENERATIVE_UNUSABLE"

	ErrCodeCatalogSearchFailed ErrorCode = "CATALOG_SEARCH_FAILED"
	ErrCodeCatalogNotFound     ErrorCode = "CATALOG_NOT_FOUND"

	ErrCodeTrailerNotFound ErrorCode = "TRAILER_NOT_FOUND"

	ErrCodeInvalidAnswer  ErrorCode = "INVALID_ANSWER"
	ErrCodeGenresEmpty    ErrorCode = "GENRES_EMPTY"
	ErrCodeSessionUnknown ErrorCode = "SESSION_UNKNOWN"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewDiscoveryFailedError marks a catalog discovery call that errored or
// returned a non-success status. Never surfaced to the user: the resolver
// falls through to the next tier.
func NewDiscoveryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDiscoveryFailed,
		Message:   "Catalog discovery request failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDiscoveryEmptyError marks a discovery query that returned zero results.
func NewDiscoveryEmptyError() *StandardError {
	return &StandardError{
		Code:      ErrCodeDiscoveryEmpty,
		Message:   "Catalog discovery returned no results",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerativeFailedError marks a generative text API failure.
func NewGenerativeFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerativeFailed,
		Message:   "Generative text request failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerativeUnusableError marks generated output that failed
// post-processing (empty, too short, or too long to be a title).
func NewGenerativeUnusableError(raw string) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerativeUnusable,
		Message:   "Generated text is not a usable movie title",
		Details:   fmt.Sprintf("candidate: %q", raw),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogSearchFailedError marks a title search or details lookup failure.
func NewCatalogSearchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogSearchFailed,
		Message:   "Catalog search request failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidAnswerError creates a recoverable user input error. The
// conversation state is left untouched.
func NewInvalidAnswerError(stepID, answer string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidAnswer,
		Message:   "Answer is not one of the step's options",
		Details:   fmt.Sprintf("stepId: %s, answer: %s", stepID, answer),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenresEmptyError creates the recoverable zero-genre confirmation error.
func NewGenresEmptyError() *StandardError {
	return &StandardError{
		Code:      ErrCodeGenresEmpty,
		Message:   "At least one genre must be selected",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionUnknownError creates an error for a missing or expired session id.
func NewSessionUnknownError(id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionUnknown,
		Message:   "Unknown conversation session",
		Details:   fmt.Sprintf("sessionId: %s", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// IsUserError reports whether the code describes recoverable user input.
func IsUserError(code ErrorCode) bool {
	switch code {
	case ErrCodeInvalidAnswer, ErrCodeGenresEmpty:
		return true
	default:
		return false
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "DISCOVERY"):
		return "DISCOVERY"
	case strings.Contains(codeStr, "GENERATIVE"):
		return "GENERATIVE"
	case strings.Contains(codeStr, "CATALOG") || strings.Contains(codeStr, "TRAILER"):
		return "CATALOG"
	case strings.Contains(codeStr, "ANSWER") || strings.Contains(codeStr, "GENRES") || strings.Contains(codeStr, "SESSION"):
		return "CONVERSATION"
	default:
		return "OTHER"
	}
}
