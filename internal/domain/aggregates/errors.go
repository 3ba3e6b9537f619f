package aggregates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode standardizes failure semantics across registries and aggregates.
type ErrorCode string

const (
	CodeValidation ErrorCode = "validation"
	CodeNotFound   ErrorCode = "not_found"
	CodeConflict   ErrorCode = "conflict"
	CodeRetryable  ErrorCode = "retryable"
	CodeStore      ErrorCode = "store"
)

// GenericStoreMessage is what callers see in place of store diagnostics.
const GenericStoreMessage = "storage failure, please try again later"

// Error is the canonical aggregate error wrapper.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds an aggregate error with explicit code + operation.
func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap annotates an existing error with aggregate error semantics.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

// IsCode checks whether err (or wrapped err) carries the given aggregate code.
func IsCode(err error, code ErrorCode) bool {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return false
	}
	return aggErr.Code == code
}

// CodeOf extracts the aggregate error code when available.
func CodeOf(err error) ErrorCode {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return ""
	}
	return aggErr.Code
}

// Kind names the error family shown to the user.
func Kind(err error) string {
	switch CodeOf(err) {
	case CodeValidation:
		return "ValidationError"
	case CodeNotFound:
		return "NotFoundError"
	case CodeConflict:
		return "ConflictError"
	case CodeRetryable, CodeStore:
		return "StoreError"
	default:
		return "Error"
	}
}

// PublicMessage returns the message safe to show outside the process.
// Business messages are kept verbatim; store failures are replaced.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return GenericStoreMessage
	}
	switch aggErr.Code {
	case CodeStore, CodeRetryable:
		return GenericStoreMessage
	}
	if msg := strings.TrimSpace(aggErr.Message); msg != "" {
		return msg
	}
	return string(aggErr.Code)
}
