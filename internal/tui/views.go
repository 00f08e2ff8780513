package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/finpilot/internal/common"
	"github.com/Veraticus/finpilot/internal/money"
	"github.com/Veraticus/finpilot/internal/tui/components"
	"github.com/Veraticus/finpilot/internal/vocab"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

const recentTransactions = 15

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.view {
	case ViewTransactions:
		body = m.renderTransactions()
	case ViewGoals:
		body = m.renderGoals()
	case ViewReview:
		body = m.renderReview()
	default:
		body = m.renderBudget()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderTabs(),
		"",
		body,
		"",
		m.renderStatus(),
		m.help.View(m.keymap),
	)
}

func (m Model) renderHeader() string {
	title := "💼 finpilot"
	if m.config.UserName != "" {
		title += " · " + m.config.UserName
	}
	header := m.config.Theme.Title.Render(title)
	if m.state.Busy {
		header += " " + m.spinner.View()
	}
	return header
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(viewNames))
	for i, name := range viewNames {
		style := m.config.Theme.InactiveTab
		if View(i) == m.view {
			style = m.config.Theme.ActiveTab
		}
		tabs = append(tabs, style.Render(name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderBudget() string {
	theme := m.config.Theme
	var b strings.Builder

	totals := make([]string, 0, len(m.totals))
	for _, c := range m.totals {
		totals = append(totals, theme.Subtitle.Render(c.Label()+" ")+c.View())
	}
	b.WriteString(strings.Join(totals, "   "))
	b.WriteString("\n")
	if m.state.Salary > 0 {
		b.WriteString(theme.Subtitle.Render("Salary " + money.Format(m.state.Salary)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, cat := range m.state.Categories {
		b.WriteString(components.CategoryBar(cat, m.width, theme, i == m.cursor))
		b.WriteString("\n")
	}

	if m.drill != nil {
		b.WriteString("\n")
		b.WriteString(m.renderDrillDown())
	}
	return b.String()
}

func (m Model) renderDrillDown() string {
	theme := m.config.Theme
	d := m.drill

	var b strings.Builder
	b.WriteString(theme.Bold.Render(d.category.Icon + " " + d.category.Name))
	b.WriteString("\n")

	switch {
	case d.loading:
		b.WriteString(theme.StatusPending.Render("Loading transactions..."))
	case d.err != nil:
		b.WriteString(theme.StatusError.Render(common.UserMessage(d.err)))
	case len(d.transactions) == 0:
		b.WriteString(theme.StatusPending.Render("No transactions in this category yet"))
	default:
		for _, tx := range d.transactions {
			b.WriteString(m.transactionLine(tx.Date.Format("Jan 02"), string(tx.Kind), tx.Amount, tx.Description))
			b.WriteString("\n")
		}
	}
	return theme.RoundedBox.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderTransactions() string {
	theme := m.config.Theme
	if len(m.state.Transactions) == 0 {
		return theme.StatusPending.Render("No transactions recorded yet")
	}

	names := make(map[string]string, len(m.state.Categories))
	for _, c := range m.state.Categories {
		names[c.ID] = c.Name
	}

	var b strings.Builder
	for i, tx := range m.state.Transactions {
		if i == recentTransactions {
			b.WriteString(theme.StatusPending.Render(fmt.Sprintf("… %d more", len(m.state.Transactions)-recentTransactions)))
			break
		}
		category := names[tx.CategoryID]
		if category == "" {
			category = vocab.FallbackCategory
		}
		b.WriteString(m.transactionLine(tx.Date.Format("Jan 02"), category, tx.Amount, tx.Description))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) transactionLine(date, category string, amount float64, description string) string {
	return fmt.Sprintf("%-7s %-14s %12s  %s", date, category, money.Format(amount), description)
}

func (m Model) renderGoals() string {
	theme := m.config.Theme
	if len(m.state.Goals) == 0 {
		return theme.StatusPending.Render("No savings goals yet")
	}

	barWidth := m.width / 3
	if barWidth < 10 {
		barWidth = 10
	}

	var b strings.Builder
	for i, g := range m.state.Goals {
		name := g.Icon + " " + g.Name
		if i == m.cursor {
			name = theme.Selected.Render(name)
		} else {
			name = theme.Bold.Render(name)
		}

		bar := progress.New(
			progress.WithSolidFill(string(theme.Primary)),
			progress.WithWidth(barWidth),
		)
		b.WriteString(name)
		b.WriteString("\n")
		b.WriteString(bar.ViewAs(g.Progress()))
		b.WriteString(fmt.Sprintf("  %s of %s", money.Format(g.CurrentAmount), money.Format(g.TargetAmount)))
		if g.Deadline != nil {
			b.WriteString(theme.Subtitle.Render("  by " + g.Deadline.Format("Jan 2, 2006")))
		}
		b.WriteString("\n")
		if g.MonthlyAmount > 0 {
			b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Save %s a month", money.Format(g.MonthlyAmount))))
			if g.Suggestion != "" {
				b.WriteString(theme.Subtitle.Render(" · " + g.Suggestion))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderReview() string {
	theme := m.config.Theme
	switch {
	case m.reviewLoading:
		return m.spinner.View() + " " + theme.StatusPending.Render("Crunching your month...")
	case m.reviewErr != nil:
		return theme.StatusError.Render(common.UserMessage(m.reviewErr))
	case m.review == nil:
		return theme.StatusPending.Render("No review loaded")
	}

	r := m.review
	var b strings.Builder
	title := fmt.Sprintf("%s %d in review", r.MonthName, r.Year)
	if r.MonthName == "" {
		title = fmt.Sprintf("%04d-%02d in review", m.reviewYear, m.reviewMonth)
	}
	b.WriteString(theme.Title.Render(title))
	b.WriteString("\n")

	cells := make([]string, 0, len(m.reviewCounters))
	for _, c := range m.reviewCounters {
		cells = append(cells, theme.RoundedBox.Render(theme.Subtitle.Render(c.Label())+"\n"+c.View()))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Savings rate %.0f%%", r.SavingsRate)))
	b.WriteString("\n\n")

	if len(r.TopCategories) > 0 {
		b.WriteString(theme.Bold.Render("Top categories"))
		b.WriteString("\n")
		for _, c := range r.TopCategories {
			b.WriteString(fmt.Sprintf("%s %-14s %12s  %5.1f%%\n", c.Icon, c.Category, money.Format(c.Amount), c.Percentage))
		}
		b.WriteString("\n")
	}

	if r.BiggestTransaction != nil {
		bt := r.BiggestTransaction
		b.WriteString(theme.Bold.Render("Biggest splurge "))
		b.WriteString(fmt.Sprintf("%s on %s (%s)\n", money.Format(bt.Amount), bt.Description, bt.Date))
	}
	for _, fact := range r.FunComparisons {
		b.WriteString("✨ " + fact + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderStatus() string {
	if m.toast.Message == "" {
		return ""
	}
	if m.toast.Error {
		return m.config.Theme.StatusError.Render("✗ " + m.toast.Message)
	}
	return m.config.Theme.StatusSuccess.Render("✓ " + m.toast.Message)
}
