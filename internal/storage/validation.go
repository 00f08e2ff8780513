// Package storage provides local persistence for the finpilot CLI.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/finpilot/internal/model"
	"github.com/Veraticus/finpilot/internal/service"
)

// Validation errors.
var (
	ErrNilContext          = errors.New("context cannot be nil")
	ErrEmptyString         = errors.New("string parameter cannot be empty")
	ErrNilParameter        = errors.New("parameter cannot be nil")
	ErrInvalidSession      = errors.New("invalid session")
	ErrInvalidNotification = errors.New("invalid notification")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateSession(session *model.Session) error {
	if session == nil {
		return fmt.Errorf("%w: session", ErrNilParameter)
	}
	if strings.TrimSpace(session.UserID) == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidSession)
	}
	return nil
}

func validateNotification(n service.Notification) error {
	switch n.Level {
	case service.LevelSuccess, service.LevelError:
	default:
		return fmt.Errorf("%w: level %q", ErrInvalidNotification, n.Level)
	}
	if strings.TrimSpace(n.Message) == "" {
		return fmt.Errorf("%w: missing message", ErrInvalidNotification)
	}
	return nil
}
