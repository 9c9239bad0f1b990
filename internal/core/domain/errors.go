// Package domain defines the core domain models for KVArea.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a domain error with a structured error code.
type DomainError struct {
	Code    string // Error code (e.g., "KA-KEY-4000")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
// Two DomainErrors compare equal when their codes match.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks whether the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Key and Value Errors (KEY, VAL)
// ============================================================================

var (
	// ErrInvalidKey indicates the key failed the validity check.
	// Raised synchronously, before any engine interaction.
	ErrInvalidKey = NewDomainError("KA-KEY-4000", "invalid key")

	// ErrUnserializableValue indicates the value cannot be serialized.
	// Raised synchronously, before any transaction is created.
	ErrUnserializableValue = NewDomainError("KA-VAL-4000", "value cannot be serialized")
)

// ============================================================================
// Database Errors (DB)
// ============================================================================

var (
	// ErrOpenFailure indicates the engine failed to open a connection.
	// Delivered to every caller waiting on the shared open; the handle
	// cache resets afterwards so the next operation retries.
	ErrOpenFailure = NewDomainError("KA-DB-5000", "database open failed")

	// ErrDestroyFailure indicates clear's destroy-store step failed.
	ErrDestroyFailure = NewDomainError("KA-DB-5001", "database destroy failed")

	// ErrAreaClosed indicates an operation was issued against a closed area.
	ErrAreaClosed = NewDomainError("KA-DB-5002", "storage area closed")
)

// ============================================================================
// Transaction Errors (TXN)
// ============================================================================

var (
	// ErrTransactionFailure indicates the transaction ended in error.
	ErrTransactionFailure = NewDomainError("KA-TXN-5000", "transaction failed")

	// ErrTransactionAborted indicates the transaction was aborted by the
	// engine (e.g. a write conflict). Carries the same rejection semantics
	// as ErrTransactionFailure but is observationally distinct.
	ErrTransactionAborted = NewDomainError("KA-TXN-5001", "transaction aborted")
)

// ============================================================================
// Argument Errors (ARG)
// ============================================================================

var (
	// ErrInvalidArgument indicates an invalid argument.
	ErrInvalidArgument = NewDomainError("KA-ARG-1001", "invalid argument")

	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("KA-ARG-1002", "missing required argument")
)
