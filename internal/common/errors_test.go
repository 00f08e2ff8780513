package common

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteError(t *testing.T) {
	tests := []struct {
		err     *RemoteError
		name    string
		wantMsg string
	}{
		{
			name:    "service detail wins",
			err:     &RemoteError{Op: "add transaction", Status: 400, Detail: "Invalid category"},
			wantMsg: "Invalid category",
		},
		{
			name:    "status without detail",
			err:     &RemoteError{Op: "add transaction", Status: 502},
			wantMsg: "add transaction failed: HTTP error! status: 502",
		},
		{
			name:    "transport failure",
			err:     &RemoteError{Op: "load goals", Err: errors.New("connection refused")},
			wantMsg: "load goals failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrRemoteCallFailed)
		})
	}
}

func TestRemoteError_UnwrapsCause(t *testing.T) {
	err := NewRemoteError("delete goal", 0, "", context.DeadlineExceeded)

	assert.ErrorIs(t, err, ErrRemoteCallFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "delete goal", remote.Op)
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, UserMessage(nil))
	assert.Equal(t, "boom", UserMessage(errors.New("boom")))

	wrapped := NewUserError("Failed to delete goal", NewRemoteError("delete goal", 404, "Goal not found", nil))
	assert.Equal(t, "Failed to delete goal", UserMessage(wrapped))
	assert.ErrorIs(t, wrapped, ErrRemoteCallFailed)
	assert.Equal(t, "Failed to delete goal: Goal not found", wrapped.Error())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHandler(t *testing.T) {
	var buf bytes.Buffer

	handler, err := NewHandler(&buf, slog.LevelInfo, "json")
	require.NoError(t, err)
	slog.New(handler).Info("hello", "component", "test")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	_, err = NewHandler(&buf, slog.LevelInfo, "xml")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestWithRetry(t *testing.T) {
	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return &RetryableError{Err: errors.New("flaky"), Retryable: true}
			}
			return nil
		}, RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on non-retryable error", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return &RetryableError{Err: errors.New("bad request"), Retryable: false}
		}, RetryOptions{MaxAttempts: 5, InitialDelay: time.Millisecond})

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		err := WithRetry(context.Background(), func() error {
			return errors.New("still failing")
		}, RetryOptions{MaxAttempts: 2, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond})

		assert.ErrorIs(t, err, ErrMaxRetries)
	})
}
