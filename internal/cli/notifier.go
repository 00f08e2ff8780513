package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/Veraticus/finpilot/internal/service"
)

const journalTimeout = 2 * time.Second

// Notifier prints notifications to the terminal and, when a journal is
// configured, records them for `finpilot notifications`.
type Notifier struct {
	writer  io.Writer
	journal service.NotificationJournal
	userID  string
	mu      sync.Mutex
}

// NewNotifier creates a terminal notifier. journal may be nil.
func NewNotifier(w io.Writer, journal service.NotificationJournal) *Notifier {
	if w == nil {
		w = os.Stderr
	}
	return &Notifier{writer: w, journal: journal}
}

// SetUser attributes subsequent notifications to userID.
func (n *Notifier) SetUser(userID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.userID = userID
}

// Success implements service.Notifier.
func (n *Notifier) Success(message string) {
	n.emit(service.LevelSuccess, FormatSuccess(message), message)
}

// Error implements service.Notifier.
func (n *Notifier) Error(message string) {
	n.emit(service.LevelError, FormatError(message), message)
}

func (n *Notifier) emit(level service.NotificationLevel, rendered, message string) {
	n.mu.Lock()
	userID := n.userID
	if _, err := fmt.Fprintln(n.writer, rendered); err != nil {
		slog.Warn("Failed to write notification", "error", err)
	}
	n.mu.Unlock()

	if n.journal == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()
	if err := n.journal.AppendNotification(ctx, service.Notification{
		Level:   level,
		Message: message,
		UserID:  userID,
	}); err != nil {
		slog.Warn("Failed to journal notification", "level", level, "error", err)
	}
}

var _ service.Notifier = (*Notifier)(nil)
