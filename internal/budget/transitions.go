package budget

import (
	"strings"
	"time"

	"github.com/Veraticus/finpilot/internal/model"
	"github.com/Veraticus/finpilot/internal/money"
	"github.com/Veraticus/finpilot/internal/service"
	"github.com/Veraticus/finpilot/internal/vocab"
)

// Transitions are pure: each takes a state and returns the next one. They
// run only after the remote call they reconcile has succeeded.

// applyDashboard overwrites allocation and spend of every category from the
// month's breakdown, and the salary from the total budget.
func applyDashboard(st State, summary *service.DashboardSummary) State {
	for i, cat := range st.Categories {
		cat.Allocated, cat.Spent = 0, 0
		if code, err := vocab.ToServiceCode(cat.Name); err == nil {
			if entry, ok := findBreakdown(summary.Breakdown, code); ok {
				cat.Allocated = entry.Allocated
				cat.Spent = entry.Spent
			}
		}
		st.Categories[i] = cat
	}
	st.Salary = summary.TotalBudget
	return st
}

func findBreakdown(breakdown []service.CategorySummary, code string) (service.CategorySummary, bool) {
	for _, entry := range breakdown {
		if entry.Category == code {
			return entry, true
		}
	}
	return service.CategorySummary{}, false
}

// applyHistory replaces the transaction list wholesale.
func applyHistory(st State, records []service.TransactionRecord) State {
	txns := make([]model.Transaction, 0, len(records))
	for _, r := range records {
		txns = append(txns, transactionFromRecord(r))
	}
	st.Transactions = txns
	return st
}

func transactionFromRecord(r service.TransactionRecord) model.Transaction {
	kind := model.KindIncome
	if r.Type == "debit" {
		kind = model.KindExpense
	}
	date, _ := parseDate(r.Date)
	return model.Transaction{
		ID:          r.ID,
		CategoryID:  vocab.CategoryIDForCode(r.Category),
		Amount:      r.Amount,
		Kind:        kind,
		Description: r.Description,
		Date:        date,
	}
}

// applyGoals replaces the goal list wholesale.
func applyGoals(st State, records []service.GoalRecord) State {
	goals := make([]model.SavingsGoal, 0, len(records))
	for _, r := range records {
		goals = append(goals, model.SavingsGoal{
			ID:             r.GoalID,
			Name:           r.Name,
			TargetAmount:   r.TargetAmount,
			CurrentAmount:  r.CurrentAmount,
			Deadline:       parseDeadline(r.Deadline),
			Icon:           r.Icon,
			Color:          r.Color,
			Suggestion:     r.Suggestion,
			MonthlyAmount:  r.MonthlyAmount,
			ExpectedReturn: r.ExpectedReturn,
		})
	}
	st.Goals = goals
	return st
}

// applyPrediction rebuilds every category from the predicted allocation,
// rounded to whole currency units, and clears spending.
func applyPrediction(st State, salary float64, resp *service.AllocationResponse) State {
	for i, cat := range st.Categories {
		cat.Allocated, cat.Spent = 0, 0
		if code, err := vocab.ToServiceCode(cat.Name); err == nil {
			cat.Allocated = money.RoundUnits(resp.PredictedAllocation[code])
		}
		st.Categories[i] = cat
	}
	st.Salary = salary
	return st
}

// applyTransaction prepends txn and, for expenses, adds its amount to the
// category's spending. Allocation is untouched.
func applyTransaction(st State, txn model.Transaction) State {
	st.Transactions = append([]model.Transaction{txn}, st.Transactions...)
	if txn.Kind != model.KindExpense {
		return st
	}
	if idx := model.FindCategory(st.Categories, txn.CategoryID); idx >= 0 {
		st.Categories[idx].Spent = money.Sum(st.Categories[idx].Spent, txn.Amount)
	}
	return st
}

func applyNewGoal(st State, goal model.SavingsGoal) State {
	st.Goals = append(st.Goals, goal)
	return st
}

// applyGoalProgress adopts the server's amount as authoritative.
func applyGoalProgress(st State, goalID string, current float64) State {
	for i := range st.Goals {
		if st.Goals[i].ID == goalID {
			st.Goals[i].CurrentAmount = current
		}
	}
	return st
}

func applyGoalDeletion(st State, goalID string) State {
	kept := make([]model.SavingsGoal, 0, len(st.Goals))
	for _, g := range st.Goals {
		if g.ID != goalID {
			kept = append(kept, g)
		}
	}
	st.Goals = kept
	return st
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// parseDate accepts the plain and ISO-8601 date forms the service emits.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseDeadline(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, ok := parseDate(*s)
	if !ok {
		return nil
	}
	return &t
}
