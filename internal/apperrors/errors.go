package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAlreadyPosted signals that a journal entry already exists for the given
// source reference. It is an expected outcome of retried postings, not a failure.
var ErrAlreadyPosted = errors.New("journal entry already posted for source")

// ErrUnbalanced indicates a computed journal entry whose debits do not equal
// its credits. The posting must be aborted, never silently corrected.
var ErrUnbalanced = errors.New("journal entry debits do not equal credits")

// ErrPeriodLocked indicates an attempt to write into a locked accounting period.
var ErrPeriodLocked = errors.New("accounting period is locked")

// AppError wraps a lower-level error with an HTTP-ish status code and a message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given error.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
