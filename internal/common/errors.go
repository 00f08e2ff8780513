// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Session errors.
	ErrUnauthenticated = errors.New("not authenticated")

	// Local precondition errors.
	ErrInvalidCategory = errors.New("invalid category")
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDeadline = errors.New("deadline is in the past")
	ErrInvalidInput    = errors.New("invalid input")

	// Remote service errors.
	ErrRemoteCallFailed = errors.New("remote call failed")

	// Storage errors.
	ErrNotFound = errors.New("not found")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// RemoteError describes a failed call to a remote service. Detail holds the
// human-readable message the service returned, if any.
type RemoteError struct {
	Err    error
	Op     string
	Detail string
	Status int
}

func (e *RemoteError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s failed: HTTP error! status: %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s failed", e.Op)
}

// Unwrap exposes both ErrRemoteCallFailed and the transport cause.
func (e *RemoteError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRemoteCallFailed}
	}
	return []error{ErrRemoteCallFailed, e.Err}
}

// NewRemoteError creates a RemoteError for the named operation.
func NewRemoteError(op string, status int, detail string, err error) error {
	return &RemoteError{
		Op:     op,
		Status: status,
		Detail: detail,
		Err:    err,
	}
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage returns the message meant for the user, falling back to the
// error text when err carries none.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return err.Error()
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimit) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
