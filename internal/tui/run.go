package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/finpilot/internal/budget"
	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the dashboard until the user quits or ctx is cancelled. The
// store subscription lives exactly as long as the program.
func Run(ctx context.Context, eng Engine, opts ...Option) error {
	if eng == nil {
		return errors.New("engine is required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	changes := make(chan struct{}, 1)
	unsubscribe := eng.Store().Subscribe(func(budget.State) { notifyChange(changes) })
	defer unsubscribe()

	p := tea.NewProgram(newModel(ctx, eng, cfg, changes),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
