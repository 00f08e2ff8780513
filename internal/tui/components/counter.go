// Package components contains reusable bubbletea widgets for the dashboard.
package components

import (
	"time"

	"github.com/Veraticus/finpilot/internal/animation"
	"github.com/Veraticus/finpilot/internal/money"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FrameInterval is the counter refresh rate (60 fps).
const FrameInterval = time.Second / 60

// CounterTickMsg schedules one animation frame for one counter.
type CounterTickMsg struct {
	Time  time.Time
	ID    int
	Frame animation.Frame
}

// Counter is an animated number. Ticks carry the counter id and the
// interpolator generation, so frames for other counters or for a
// superseded run are dropped.
type Counter struct {
	interp *animation.Interpolator
	format func(float64) string
	style  lipgloss.Style
	label  string
	id     int
}

// CounterOption configures a Counter.
type CounterOption func(*Counter)

// WithFormat overrides how the value is printed. The default is currency.
func WithFormat(format func(float64) string) CounterOption {
	return func(c *Counter) { c.format = format }
}

// WithStyle sets the style of the rendered value.
func WithStyle(style lipgloss.Style) CounterOption {
	return func(c *Counter) { c.style = style }
}

// NewCounter creates an idle counter.
func NewCounter(id int, label string, target float64, duration time.Duration, opts ...CounterOption) Counter {
	c := Counter{
		id:     id,
		label:  label,
		interp: animation.New(target, duration),
		format: money.Format,
		style:  lipgloss.NewStyle().Bold(true),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// ID returns the counter id.
func (c Counter) ID() int { return c.id }

// Label returns the counter label.
func (c Counter) Label() string { return c.label }

// Value returns the currently displayed value.
func (c Counter) Value() float64 { return c.interp.Value() }

// Settled reports whether the counter shows its target.
func (c Counter) Settled() bool { return c.interp.State() == animation.Settled }

// Start begins counting up from zero.
func (c Counter) Start(now time.Time) tea.Cmd {
	frame, ok := c.interp.SetActive(true, now)
	if !ok {
		return nil
	}
	return c.tick(frame)
}

// SetTarget retargets the counter. A running animation continues from the
// value on screen.
func (c Counter) SetTarget(target float64, now time.Time) tea.Cmd {
	frame, ok := c.interp.SetTarget(target, now)
	if !ok {
		return nil
	}
	return c.tick(frame)
}

// Stop cancels every scheduled frame and keeps the last value.
func (c Counter) Stop() {
	c.interp.Stop()
}

// Update advances the counter on its own ticks.
func (c Counter) Update(msg tea.Msg) (Counter, tea.Cmd) {
	tick, ok := msg.(CounterTickMsg)
	if !ok || tick.ID != c.id {
		return c, nil
	}
	if _, ok := c.interp.Advance(tick.Frame, tick.Time); !ok {
		return c, nil
	}
	if next, ok := c.interp.Next(); ok {
		return c, c.tick(next)
	}
	return c, nil
}

// View renders the current value.
func (c Counter) View() string {
	return c.style.Render(c.format(c.interp.Value()))
}

func (c Counter) tick(frame animation.Frame) tea.Cmd {
	id := c.id
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return CounterTickMsg{ID: id, Frame: frame, Time: t}
	})
}
