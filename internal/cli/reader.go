package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// LineReader reads answers from a non-interactive stdin (pipes, scripts)
// where the huh forms cannot run. Reads respect context cancellation.
type LineReader struct {
	reader      *bufio.Reader
	writer      io.Writer
	readingLock sync.Mutex
}

// NewLineReader creates a reader that prompts on w.
func NewLineReader(r io.Reader, w io.Writer) *LineReader {
	if w == nil {
		w = io.Discard
	}
	return &LineReader{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// ReadLine reads one trimmed line. A final line without a newline is
// returned as is; an empty stream yields io.EOF.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}

	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		r.readingLock.Lock()
		defer r.readingLock.Unlock()

		value, err := r.reader.ReadString('\n')
		if errors.Is(err, io.EOF) && value != "" {
			err = nil
		}
		resultCh <- result{value: value, err: err}
	}()

	// The reading goroutine outlives a canceled read until input arrives.
	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		return strings.TrimSpace(res.value), res.err
	}
}

// Ask writes prompt and reads the answer.
func (r *LineReader) Ask(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(r.writer, BoldStyle.Render(prompt)+" "); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	return r.ReadLine(ctx)
}

// Confirm asks a yes/no question; anything but y or yes is no.
func (r *LineReader) Confirm(ctx context.Context, prompt string) (bool, error) {
	answer, err := r.Ask(ctx, prompt+" [y/N]")
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
