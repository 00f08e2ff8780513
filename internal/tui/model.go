// Package tui is the interactive budget dashboard. Every tab renders from
// the budget store's latest snapshot; store changes wake the program
// through a subscription.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/finpilot/internal/budget"
	"github.com/Veraticus/finpilot/internal/common"
	"github.com/Veraticus/finpilot/internal/model"
	"github.com/Veraticus/finpilot/internal/tui/components"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Engine is the part of *budget.Engine the dashboard drives.
type Engine interface {
	Store() *budget.Store
	LoadDashboardData(ctx context.Context) error
	LoadGoals(ctx context.Context) error
	CategoryTransactions(ctx context.Context, categoryID string) ([]model.Transaction, error)
	MonthlyReview(ctx context.Context, year, month int) (*model.MonthlyReview, error)
}

const (
	counterBudget = iota
	counterSpent
	counterRemaining
	counterIncome
	counterExpenses
	counterSavings
	counterTransactions
)

// Review headline durations, staggered like slides.
var reviewDurations = map[int]time.Duration{
	counterIncome:       2000 * time.Millisecond,
	counterExpenses:     2000 * time.Millisecond,
	counterSavings:      2500 * time.Millisecond,
	counterTransactions: 1500 * time.Millisecond,
}

type drillDown struct {
	err          error
	category     model.BudgetCategory
	transactions []model.Transaction
	loading      bool
}

// Model holds the dashboard state.
type Model struct {
	ctx            context.Context
	engine         Engine
	changes        <-chan struct{}
	drill          *drillDown
	review         *model.MonthlyReview
	reviewErr      error
	spinner        spinner.Model
	help           help.Model
	toast          Toast
	state          budget.State
	keymap         KeyMap
	totals         []components.Counter
	reviewCounters []components.Counter
	config         Config
	view           View
	cursor         int
	reviewYear     int
	reviewMonth    int
	width          int
	height         int
	reviewLoading  bool
	quitting       bool
}

func newModel(ctx context.Context, eng Engine, cfg Config, changes <-chan struct{}) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = sp.Style.Foreground(cfg.Theme.Primary)

	year, month := cfg.Year, cfg.Month
	if year == 0 || month == 0 {
		now := cfg.Now()
		year, month = now.Year(), int(now.Month())
	}

	m := Model{
		ctx:         ctx,
		engine:      eng,
		changes:     changes,
		config:      cfg,
		keymap:      DefaultKeyMap(),
		help:        help.New(),
		spinner:     sp,
		view:        cfg.StartView,
		reviewYear:  year,
		reviewMonth: month,
		width:       cfg.Width,
		height:      cfg.Height,
		state:       eng.Store().Snapshot(),
	}
	m.reviewLoading = m.view == ViewReview

	m.totals = []components.Counter{
		components.NewCounter(counterBudget, "Budget", m.state.TotalBudget(), cfg.Animation, components.WithStyle(cfg.Theme.Bold)),
		components.NewCounter(counterSpent, "Spent", m.state.TotalSpent(), cfg.Animation, components.WithStyle(cfg.Theme.Bold)),
		components.NewCounter(counterRemaining, "Remaining", m.state.TotalRemaining(), cfg.Animation, components.WithStyle(cfg.Theme.StatusSuccess)),
	}
	return m
}

// Init starts the counters and the store subscription.
func (m Model) Init() tea.Cmd {
	now := m.config.Now()
	cmds := []tea.Cmd{m.spinner.Tick, waitForChange(m.changes), waitForToast(m.config.Toasts)}
	for _, c := range m.totals {
		cmds = append(cmds, c.Start(now))
	}
	if m.reviewLoading {
		cmds = append(cmds, m.loadReview())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case storeChangedMsg:
		cmd := m.syncState()
		return m, tea.Batch(cmd, waitForChange(m.changes))

	case refreshedMsg:
		if msg.err != nil {
			m.toast = Toast{Message: common.UserMessage(msg.err), Error: true}
		}
		return m, nil

	case drillDownMsg:
		if m.drill == nil || m.drill.category.ID != msg.categoryID {
			return m, nil
		}
		m.drill.loading = false
		m.drill.transactions = msg.transactions
		m.drill.err = msg.err
		return m, nil

	case reviewMsg:
		return m.handleReview(msg)

	case toastMsg:
		m.toast = msg.toast
		return m, waitForToast(m.config.Toasts)

	case components.CounterTickMsg:
		return m, m.updateCounters(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		m.stopCounters()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keymap.Back):
		m.drill = nil

	case key.Matches(msg, m.keymap.NextTab):
		return m.switchView((m.view + 1) % View(len(viewNames)))

	case key.Matches(msg, m.keymap.PrevTab):
		return m.switchView((m.view + View(len(viewNames)) - 1) % View(len(viewNames)))

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keymap.Down):
		if m.cursor < m.rows()-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keymap.Select):
		if m.view == ViewBudget && m.cursor < len(m.state.Categories) {
			cat := m.state.Categories[m.cursor]
			m.drill = &drillDown{category: cat, loading: true}
			return m, m.loadDrillDown(cat.ID)
		}

	case key.Matches(msg, m.keymap.Refresh):
		if m.view == ViewReview {
			cmd := m.reloadReview()
			return m, cmd
		}
		return m, m.refresh()
	}
	return m, nil
}

func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	m.view = v
	m.cursor = 0
	m.drill = nil
	if v == ViewReview && m.review == nil && !m.reviewLoading {
		m.reviewLoading = true
		return m, m.loadReview()
	}
	return m, nil
}

func (m Model) rows() int {
	switch m.view {
	case ViewBudget:
		return len(m.state.Categories)
	case ViewGoals:
		return len(m.state.Goals)
	default:
		return 0
	}
}

// syncState reads the latest snapshot and retargets the totals.
func (m *Model) syncState() tea.Cmd {
	m.state = m.engine.Store().Snapshot()
	if n := m.rows(); n > 0 && m.cursor >= n {
		m.cursor = n - 1
	}

	now := m.config.Now()
	targets := []float64{m.state.TotalBudget(), m.state.TotalSpent(), m.state.TotalRemaining()}
	cmds := make([]tea.Cmd, 0, len(m.totals))
	for i, c := range m.totals {
		cmds = append(cmds, c.SetTarget(targets[i], now))
	}
	return tea.Batch(cmds...)
}

func (m *Model) reloadReview() tea.Cmd {
	for _, c := range m.reviewCounters {
		c.Stop()
	}
	m.reviewCounters = nil
	m.review = nil
	m.reviewErr = nil
	m.reviewLoading = true
	return m.loadReview()
}

func (m Model) handleReview(msg reviewMsg) (tea.Model, tea.Cmd) {
	m.reviewLoading = false
	m.review = msg.review
	m.reviewErr = msg.err
	if msg.err != nil || msg.review == nil {
		return m, nil
	}

	animate := m.config.Animation > 0
	duration := func(id int) time.Duration {
		if !animate {
			return 0
		}
		return reviewDurations[id]
	}
	count := components.WithFormat(func(v float64) string { return fmt.Sprintf("%.0f", v) })

	r := msg.review
	theme := m.config.Theme
	m.reviewCounters = []components.Counter{
		components.NewCounter(counterIncome, "Income", r.TotalIncome, duration(counterIncome), components.WithStyle(theme.StatusSuccess)),
		components.NewCounter(counterExpenses, "Expenses", r.TotalExpenses, duration(counterExpenses), components.WithStyle(theme.StatusError)),
		components.NewCounter(counterSavings, "Saved", r.TotalSavings, duration(counterSavings), components.WithStyle(theme.Bold)),
		components.NewCounter(counterTransactions, "Transactions", float64(r.TotalTransactions), duration(counterTransactions), count, components.WithStyle(theme.Bold)),
	}

	now := m.config.Now()
	cmds := make([]tea.Cmd, 0, len(m.reviewCounters))
	for _, c := range m.reviewCounters {
		cmds = append(cmds, c.Start(now))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateCounters(msg components.CounterTickMsg) tea.Cmd {
	var cmds []tea.Cmd
	for _, group := range [][]components.Counter{m.totals, m.reviewCounters} {
		for i, c := range group {
			if c.ID() != msg.ID {
				continue
			}
			var cmd tea.Cmd
			group[i], cmd = c.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m Model) stopCounters() {
	for _, c := range m.totals {
		c.Stop()
	}
	for _, c := range m.reviewCounters {
		c.Stop()
	}
}
