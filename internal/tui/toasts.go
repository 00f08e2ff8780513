package tui

import "github.com/Veraticus/finpilot/internal/service"

// Toast is one notification shown in the status line.
type Toast struct {
	Message string
	Error   bool
}

// Toasts is a notifier feeding the dashboard status line. Notifications
// raised while the buffer is full are dropped.
type Toasts struct {
	ch chan Toast
}

// NewToasts creates an empty toast feed.
func NewToasts() *Toasts {
	return &Toasts{ch: make(chan Toast, 16)}
}

// Success implements service.Notifier.
func (t *Toasts) Success(message string) { t.send(Toast{Message: message}) }

// Error implements service.Notifier.
func (t *Toasts) Error(message string) { t.send(Toast{Message: message, Error: true}) }

func (t *Toasts) send(toast Toast) {
	select {
	case t.ch <- toast:
	default:
	}
}

var _ service.Notifier = (*Toasts)(nil)
