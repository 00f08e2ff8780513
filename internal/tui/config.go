package tui

import (
	"time"

	"github.com/Veraticus/finpilot/internal/tui/themes"
)

// View is a dashboard tab.
type View int

const (
	ViewBudget View = iota
	ViewTransactions
	ViewGoals
	ViewReview
)

var viewNames = []string{"Budget", "Transactions", "Goals", "Review"}

func (v View) String() string {
	if int(v) < len(viewNames) {
		return viewNames[v]
	}
	return "Unknown"
}

// Config holds TUI configuration.
type Config struct {
	Theme     themes.Theme
	Toasts    *Toasts
	Now       func() time.Time
	UserName  string
	Animation time.Duration
	StartView View
	Year      int
	Month     int
	Width     int
	Height    int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Now:       time.Now,
		Animation: 2 * time.Second,
		StartView: ViewBudget,
		Width:     80,
		Height:    24,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) { c.Theme = theme }
}

// WithAnimation sets how long counters take to reach their value. Zero
// disables animation.
func WithAnimation(d time.Duration) Option {
	return func(c *Config) { c.Animation = d }
}

// WithToasts shows notifications raised while the dashboard is open.
func WithToasts(t *Toasts) Option {
	return func(c *Config) { c.Toasts = t }
}

// WithUserName sets the name shown in the header.
func WithUserName(name string) Option {
	return func(c *Config) { c.UserName = name }
}

// WithReview opens the dashboard on the month-in-review screen.
func WithReview(year, month int) Option {
	return func(c *Config) {
		c.StartView = ViewReview
		c.Year = year
		c.Month = month
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Config) { c.Now = now }
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}
