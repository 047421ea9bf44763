// Package errors provides standardized error handling for the analytics and
// workflow engines.
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
	ErrCodeInsufficientData  ErrorCode = "INSUFFICIENT_DATA"
	ErrCodeNotFound          ErrorCode = "NOT_FOUND"
	ErrCodeDivisionUndefined ErrorCode = "DIVISION_UNDEFINED"
	ErrCodeNotInitialized    ErrorCode = "NOT_INITIALIZED"
	ErrCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"

	ErrCodeCatalogQueryFailed ErrorCode = "CATALOG_QUERY_FAILED"
	ErrCodeStoreUnavailable   ErrorCode = "STORE_UNAVAILABLE"

	ErrCodeGuidanceUnavailable ErrorCode = "GUIDANCE_UNAVAILABLE"
	ErrCodeGuidanceTimeout     ErrorCode = "GUIDANCE_TIMEOUT"

	ErrCodeDeliveryFailed ErrorCode = "DELIVERY_FAILED"
	ErrCodeExportFailed   ErrorCode = "EXPORT_FAILED"

	ErrCodeScheduleFailed ErrorCode = "SCHEDULE_FAILED"
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

// Is lets errors.Is match two StandardErrors by code.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInsufficientDataError signals that a computation was asked to run on too
// few observations. The caller recovers by gathering more data; it is never
// retried automatically.
func NewInsufficientDataError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInsufficientData,
		Message:   "Not enough observations for computation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotFoundError creates a non-retryable missing-reference error.
func NewNotFoundError(kind, id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotFound,
		Message:   fmt.Sprintf("%s not found", kind),
		Details:   fmt.Sprintf("id: %s", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDivisionUndefinedError reports a zero or negative weight gain. The
// condition is surfaced explicitly instead of returning Inf or NaN.
func NewDivisionUndefinedError(totalGain float64) *StandardError {
	return &StandardError{
		Code:      ErrCodeDivisionUndefined,
		Message:   "Feed conversion undefined for non-positive weight gain",
		Details:   fmt.Sprintf("totalWeightGained: %.2f", totalGain),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotInitializedError creates a fatal use-before-setup error.
func NewNotInitializedError(component string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotInitialized,
		Message:   fmt.Sprintf("%s used before construction completed", component),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable trigger/condition error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Trigger or condition validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogQueryFailedError creates a retryable catalog query error.
func NewCatalogQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogQueryFailed,
		Message:   "Feed catalog query error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreUnavailableError creates a retryable observation store error.
func NewStoreUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreUnavailable,
		Message:   "Observation store error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGuidanceUnavailableError creates a retryable guidance provider error.
func NewGuidanceUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGuidanceUnavailable,
		Message:   "Guidance provider error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGuidanceTimeoutError creates a retryable guidance timeout error.
func NewGuidanceTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeGuidanceTimeout,
		Message:   "Guidance provider timeout",
		Details:   "call exceeded configured timeout",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDeliveryFailedError creates a retryable notification delivery error.
func NewDeliveryFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDeliveryFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewExportFailedError creates a retryable research export error.
func NewExportFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExportFailed,
		Message:   "Research data export failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewScheduleFailedError creates a non-retryable scheduler error.
func NewScheduleFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeScheduleFailed,
		Message:   "Follow-up scheduling failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCatalogQueryFailed,
		ErrCodeStoreUnavailable,
		ErrCodeDeliveryFailed,
		ErrCodeExportFailed,
		ErrCodeGuidanceUnavailable:
		return 3

	case ErrCodeGuidanceTimeout:
		return 1

	default:
		return 0 // computation and validation errors: no retry
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "DATA") || strings.Contains(codeStr, "DIVISION"):
		return "COMPUTATION"
	case strings.Contains(codeStr, "CATALOG") || strings.Contains(codeStr, "STORE"):
		return "PERSISTENCE"
	case strings.Contains(codeStr, "GUIDANCE"):
		return "GUIDANCE"
	case strings.Contains(codeStr, "DELIVERY") || strings.Contains(codeStr, "EXPORT") || strings.Contains(codeStr, "SCHEDULE"):
		return "COLLABORATOR"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}

// AsStandardError normalizes any error into a StandardError.
func AsStandardError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
