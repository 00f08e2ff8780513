package sheets

import (
	"context"
	"sort"
	"time"

	"github.com/Veraticus/finpilot/internal/budget"
	"github.com/Veraticus/finpilot/internal/model"
	"github.com/shopspring/decimal"
)

// ReportWriter exports a budget snapshot.
type ReportWriter interface {
	Write(ctx context.Context, snap Snapshot) error
}

// CategoryRow is one row of the Budget tab.
type CategoryRow struct {
	Name      string
	Icon      string
	Allocated decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal
}

// TransactionRow is one row of the Transactions tab.
type TransactionRow struct {
	Date        time.Time
	Category    string
	Kind        string
	Description string
	Amount      decimal.Decimal
}

// GoalRow is one row of the Goals tab.
type GoalRow struct {
	Deadline       *time.Time
	Name           string
	Suggestion     string
	Target         decimal.Decimal
	Current        decimal.Decimal
	Monthly        decimal.Decimal
	ExpectedReturn decimal.Decimal
	Progress       float64
}

// Snapshot is everything written in one export.
type Snapshot struct {
	GeneratedAt  time.Time
	UserName     string
	Salary       decimal.Decimal
	TotalBudget  decimal.Decimal
	TotalSpent   decimal.Decimal
	Categories   []CategoryRow
	Transactions []TransactionRow
	Goals        []GoalRow
}

// FromState builds an export snapshot from a store snapshot. Transactions
// are ordered newest first.
func FromState(st budget.State, userName string, now time.Time) Snapshot {
	snap := Snapshot{
		GeneratedAt:  now,
		UserName:     userName,
		Salary:       decimal.NewFromFloat(st.Salary),
		TotalBudget:  decimal.NewFromFloat(st.TotalBudget()),
		TotalSpent:   decimal.NewFromFloat(st.TotalSpent()),
		Categories:   make([]CategoryRow, 0, len(st.Categories)),
		Transactions: make([]TransactionRow, 0, len(st.Transactions)),
		Goals:        make([]GoalRow, 0, len(st.Goals)),
	}

	for _, c := range st.Categories {
		allocated := decimal.NewFromFloat(c.Allocated)
		spent := decimal.NewFromFloat(c.Spent)
		snap.Categories = append(snap.Categories, CategoryRow{
			Name:      c.Name,
			Icon:      c.Icon,
			Allocated: allocated,
			Spent:     spent,
			Remaining: allocated.Sub(spent),
		})
	}

	for _, t := range st.Transactions {
		name := t.CategoryID
		if idx := model.FindCategory(st.Categories, t.CategoryID); idx >= 0 {
			name = st.Categories[idx].Name
		}
		snap.Transactions = append(snap.Transactions, TransactionRow{
			Date:        t.Date,
			Category:    name,
			Kind:        string(t.Kind),
			Description: t.Description,
			Amount:      decimal.NewFromFloat(t.Amount),
		})
	}
	sort.SliceStable(snap.Transactions, func(i, j int) bool {
		return snap.Transactions[i].Date.After(snap.Transactions[j].Date)
	})

	for _, g := range st.Goals {
		snap.Goals = append(snap.Goals, GoalRow{
			Name:           g.Name,
			Deadline:       g.Deadline,
			Suggestion:     g.Suggestion,
			Target:         decimal.NewFromFloat(g.TargetAmount),
			Current:        decimal.NewFromFloat(g.CurrentAmount),
			Monthly:        decimal.NewFromFloat(g.MonthlyAmount),
			ExpectedReturn: decimal.NewFromFloat(g.ExpectedReturn),
			Progress:       g.Progress(),
		})
	}

	return snap
}
