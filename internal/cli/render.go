package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/finpilot/internal/budget"
	"github.com/Veraticus/finpilot/internal/model"
	"github.com/Veraticus/finpilot/internal/money"
	"github.com/Veraticus/finpilot/internal/service"
	"github.com/charmbracelet/lipgloss"
)

var (
	nameCol  = lipgloss.NewStyle().Width(18)
	dateCol  = lipgloss.NewStyle().Width(12)
	levelCol = lipgloss.NewStyle().Width(4)
)

// RenderDashboard renders the totals and per-category table of st.
func RenderDashboard(st budget.State) string {
	var b strings.Builder

	b.WriteString(FormatTitle("Budget overview"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n\n",
		SubtleStyle.Render("Budget"), BoldStyle.Render(money.Format(st.TotalBudget())),
		SubtleStyle.Render("Spent"), BoldStyle.Render(money.Format(st.TotalSpent())),
		SubtleStyle.Render("Remaining"), remainingStyle(st.TotalRemaining()).Render(money.Format(st.TotalRemaining())))

	b.WriteString(TableHeaderStyle.Render(
		nameCol.Render("Category") +
			AmountStyle.Render("Allocated") +
			AmountStyle.Render("Spent") +
			AmountStyle.Render("Remaining")))
	b.WriteString("\n")

	for _, c := range st.Categories {
		b.WriteString(nameCol.Render(c.Icon + " " + c.Name))
		b.WriteString(AmountStyle.Render(money.Format(c.Allocated)))
		b.WriteString(AmountStyle.Render(money.Format(c.Spent)))
		b.WriteString(remainingStyle(c.Remaining()).Inherit(AmountStyle).Render(money.Format(c.Remaining())))
		if c.OverBudget() {
			b.WriteString(" " + ErrorStyle.Render("over budget"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func remainingStyle(v float64) lipgloss.Style {
	if v < 0 {
		return ErrorStyle
	}
	return SuccessStyle
}

// RenderTransactions lists txns newest first as given. cats resolves
// category names; unknown ids are shown raw.
func RenderTransactions(txns []model.Transaction, cats []model.BudgetCategory) string {
	if len(txns) == 0 {
		return SubtleStyle.Render("No transactions yet.") + "\n"
	}

	var b strings.Builder
	for _, t := range txns {
		name := t.CategoryID
		if idx := model.FindCategory(cats, t.CategoryID); idx >= 0 {
			name = cats[idx].Icon + " " + cats[idx].Name
		}

		amount := "-" + money.Format(t.Amount)
		style := ErrorStyle
		if t.Kind == model.KindIncome {
			amount = "+" + money.Format(t.Amount)
			style = SuccessStyle
		}

		date := ""
		if !t.Date.IsZero() {
			date = t.Date.Format("2006-01-02")
		}

		b.WriteString(dateCol.Render(date))
		b.WriteString(nameCol.Render(name))
		b.WriteString(style.Inherit(AmountStyle).Render(amount))
		b.WriteString("  " + t.Description + "\n")
	}
	return b.String()
}

// RenderGoals lists goals with their progress and planner advice.
func RenderGoals(goals []model.SavingsGoal) string {
	if len(goals) == 0 {
		return SubtleStyle.Render("No goals yet. Create one with `finpilot goals add`.") + "\n"
	}

	var b strings.Builder
	for _, g := range goals {
		status := fmt.Sprintf("%3.0f%%", g.Progress()*100)
		if g.Completed() {
			status = SuccessStyle.Render(CheckMark)
		}
		fmt.Fprintf(&b, "%s %s  %s / %s  %s  %s\n",
			g.Icon, BoldStyle.Render(g.Name),
			money.Format(g.CurrentAmount), money.Format(g.TargetAmount),
			status, SubtleStyle.Render(g.ID))

		var details []string
		if g.Deadline != nil {
			details = append(details, "by "+g.Deadline.Format("Jan 2, 2006"))
		}
		if g.MonthlyAmount > 0 {
			details = append(details, money.Format(g.MonthlyAmount)+"/month")
		}
		if g.Suggestion != "" {
			details = append(details, g.Suggestion)
		}
		if len(details) > 0 {
			b.WriteString("   " + SubtleStyle.Render(strings.Join(details, " · ")) + "\n")
		}
	}
	return b.String()
}

// CheckMark marks completed goals.
const CheckMark = "✅"

// RenderNotifications lists journal entries.
func RenderNotifications(entries []service.Notification) string {
	if len(entries) == 0 {
		return SubtleStyle.Render("No notifications.") + "\n"
	}

	var b strings.Builder
	for _, n := range entries {
		icon := SuccessStyle.Render(SuccessIcon)
		if n.Level == service.LevelError {
			icon = ErrorStyle.Render(ErrorIcon)
		}
		b.WriteString(levelCol.Render(icon))
		b.WriteString(SubtleStyle.Render(n.CreatedAt.Local().Format("Jan 02 15:04")) + "  ")
		b.WriteString(n.Message + "\n")
	}
	return b.String()
}

// RenderReview renders the month-in-review summary without animation.
func RenderReview(r *model.MonthlyReview) string {
	var b strings.Builder

	title := fmt.Sprintf("%s %d in review", r.MonthName, r.Year)
	if r.UserName != "" {
		title = r.UserName + "'s " + title
	}
	b.WriteString(FormatTitle(title))
	b.WriteString("\n")

	fmt.Fprintf(&b, "Income     %s %s\n", money.Format(r.TotalIncome), change(r.IncomeChange))
	fmt.Fprintf(&b, "Expenses   %s %s\n", money.Format(r.TotalExpenses), change(r.ExpenseChange))
	fmt.Fprintf(&b, "Savings    %s %s  (%.1f%% of income)\n", money.Format(r.TotalSavings), change(r.SavingsChange), r.SavingsRate)
	fmt.Fprintf(&b, "%d transactions, %s per day on average\n", r.TotalTransactions, money.Format(r.AverageDailySpending))

	if len(r.TopCategories) > 0 {
		b.WriteString("\n" + BoldStyle.Render("Top categories") + "\n")
		for _, c := range r.TopCategories {
			fmt.Fprintf(&b, "  %s %s %s (%.0f%%)\n", c.Icon, nameCol.Render(c.Category), money.Format(c.Amount), c.Percentage)
		}
	}

	if bt := r.BiggestTransaction; bt != nil {
		fmt.Fprintf(&b, "\nBiggest transaction: %s on %s (%s, %s)\n", money.Format(bt.Amount), bt.Date, bt.Description, bt.Category)
	}
	if r.StreakDaysUnderBudget > 0 {
		fmt.Fprintf(&b, "%d days under budget\n", r.StreakDaysUnderBudget)
	}

	gs := r.GoalsSummary
	if gs.TotalGoals > 0 {
		fmt.Fprintf(&b, "\nGoals: %d of %d completed, %s saved toward %s\n",
			gs.Completed, gs.TotalGoals, money.Format(gs.TotalSaved), money.Format(gs.TotalTarget))
	}

	for _, fun := range r.FunComparisons {
		b.WriteString(InfoStyle.Render("  • "+fun) + "\n")
	}
	return b.String()
}

func change(pct float64) string {
	switch {
	case pct > 0:
		return SuccessStyle.Render(fmt.Sprintf("▲ %.1f%%", pct))
	case pct < 0:
		return ErrorStyle.Render(fmt.Sprintf("▼ %.1f%%", -pct))
	default:
		return SubtleStyle.Render("–")
	}
}
