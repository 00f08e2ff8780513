package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const requestTimeout = 30 * time.Second

// notifyChange wakes the dashboard without blocking the store. Pending wakeups
// coalesce; the dashboard always reads the latest snapshot.
func notifyChange(ch chan<- struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

func waitForToast(t *Toasts) tea.Cmd {
	if t == nil {
		return nil
	}
	return func() tea.Msg {
		return toastMsg{toast: <-t.ch}
	}
}

// refresh reloads the dashboard and the goal list.
func (m Model) refresh() tea.Cmd {
	ctx, eng := m.ctx, m.engine
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		if err := eng.LoadDashboardData(ctx); err != nil {
			return refreshedMsg{err: err}
		}
		return refreshedMsg{err: eng.LoadGoals(ctx)}
	}
}

func (m Model) loadDrillDown(categoryID string) tea.Cmd {
	ctx, eng := m.ctx, m.engine
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		txns, err := eng.CategoryTransactions(ctx, categoryID)
		return drillDownMsg{categoryID: categoryID, transactions: txns, err: err}
	}
}

func (m Model) loadReview() tea.Cmd {
	ctx, eng := m.ctx, m.engine
	year, month := m.reviewYear, m.reviewMonth
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		review, err := eng.MonthlyReview(ctx, year, month)
		return reviewMsg{review: review, err: err}
	}
}
