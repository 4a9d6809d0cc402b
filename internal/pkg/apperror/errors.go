package apperror

import (
	"errors"
	"fmt"
	"strings"
)

// Precondition codes.
const (
	CodeAlreadyConfirmed     = "already_confirmed"
	CodeReminderLimitReached = "reminder_limit_reached"
)

// ValidationError is a user-correctable request problem. Fields, when set,
// names exactly what is missing or malformed.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
	}
	return e.Message
}

func NewValidation(message string, fields ...string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// UpstreamError wraps a generation or delivery provider failure. The caller
// sees a generic message; the cause goes to the log.
type UpstreamError struct {
	Provider string // "llm" or "mailer"
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s provider failed: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func NewUpstream(provider string, err error) *UpstreamError {
	return &UpstreamError{Provider: provider, Err: err}
}

// NotFoundError means no matching outcome or token exists.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func NewNotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// PreconditionError means the requested transition is not allowed in the
// current outcome state (already confirmed, reminder cap reached).
type PreconditionError struct {
	Code    string
	Message string
}

func (e *PreconditionError) Error() string { return e.Message }

func NewPrecondition(code, message string) *PreconditionError {
	return &PreconditionError{Code: code, Message: message}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsUpstream(err error) bool {
	var target *UpstreamError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsPrecondition(err error) bool {
	var target *PreconditionError
	return errors.As(err, &target)
}

// PreconditionCode extracts the code from a precondition error, or "".
func PreconditionCode(err error) string {
	var target *PreconditionError
	if errors.As(err, &target) {
		return target.Code
	}
	return ""
}
