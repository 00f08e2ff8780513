package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/finpilot/internal/budget"
	"github.com/Veraticus/finpilot/internal/model"
	"github.com/Veraticus/finpilot/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestRenderDashboard(t *testing.T) {
	st := budget.DefaultState()
	st.Categories[0].Allocated = 1500
	st.Categories[1].Allocated = 400
	st.Categories[1].Spent = 450.5

	out := RenderDashboard(st)

	assert.Contains(t, out, "Budget overview")
	assert.Contains(t, out, "$1,900")
	assert.Contains(t, out, "$450.50")
	assert.Contains(t, out, "-$50.50")
	assert.Contains(t, out, "over budget")
	assert.Contains(t, out, "Savings")
}

func TestRenderTransactions(t *testing.T) {
	cats := model.DefaultCategories()
	txns := []model.Transaction{
		{ID: "t-2", CategoryID: model.CategoryFood, Amount: 250, Kind: model.KindExpense, Description: "lunch", Date: time.Date(2024, 6, 15, 0, 0, 0, 0, time.Local)},
		{ID: "t-1", CategoryID: "99", Amount: 5000, Kind: model.KindIncome, Description: "salary"},
	}

	out := RenderTransactions(txns, cats)

	assert.Contains(t, out, "2024-06-15")
	assert.Contains(t, out, "-$250")
	assert.Contains(t, out, "+$5,000")
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "99")
	assert.Less(t, strings.Index(out, "lunch"), strings.Index(out, "salary"), "order is preserved")

	assert.Contains(t, RenderTransactions(nil, cats), "No transactions yet.")
}

func TestRenderGoals(t *testing.T) {
	deadline := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	out := RenderGoals([]model.SavingsGoal{
		{ID: "g-1", Name: "Trip", Icon: "✈️", TargetAmount: 5000, CurrentAmount: 1250, Deadline: &deadline, MonthlyAmount: 420, Suggestion: "Recurring deposit"},
		{ID: "g-2", Name: "Laptop", Icon: "💻", TargetAmount: 2000, CurrentAmount: 2000},
	})

	assert.Contains(t, out, "$1,250 / $5,000")
	assert.Contains(t, out, " 25%")
	assert.Contains(t, out, "by Mar 1, 2025")
	assert.Contains(t, out, "$420/month")
	assert.Contains(t, out, "Recurring deposit")
	assert.Contains(t, out, CheckMark)

	assert.Contains(t, RenderGoals(nil), "No goals yet")
}

func TestRenderNotifications(t *testing.T) {
	out := RenderNotifications([]service.Notification{
		{Level: service.LevelError, Message: "Failed to create goal", CreatedAt: time.Now()},
		{Level: service.LevelSuccess, Message: "Goal deleted!", CreatedAt: time.Now()},
	})

	assert.Contains(t, out, ErrorIcon)
	assert.Contains(t, out, "Failed to create goal")
	assert.Contains(t, out, "Goal deleted!")
	assert.Contains(t, RenderNotifications(nil), "No notifications.")
}

func TestRenderReview(t *testing.T) {
	out := RenderReview(&model.MonthlyReview{
		UserName:      "Ada",
		MonthName:     "May",
		Year:          2024,
		TotalIncome:   52000,
		TotalExpenses: 31000,
		TotalSavings:  21000,
		SavingsRate:   40.4,
		ExpenseChange: -12.5,
		TopCategories: []model.ReviewCategory{{Category: "Food", Icon: "🍕", Amount: 9000, Percentage: 29}},
		BiggestTransaction: &model.ReviewTransaction{
			Amount: 12000, Date: "2024-05-01", Description: "rent", Category: "Housing",
		},
		GoalsSummary:   model.ReviewGoals{TotalGoals: 2, Completed: 1, TotalSaved: 3000, TotalTarget: 7000},
		FunComparisons: []string{"You saved enough for 70 pizzas"},
	})

	assert.Contains(t, out, "Ada's May 2024 in review")
	assert.Contains(t, out, "$52,000")
	assert.Contains(t, out, "▼ 12.5%")
	assert.Contains(t, out, "40.4% of income")
	assert.Contains(t, out, "Biggest transaction: $12,000")
	assert.Contains(t, out, "1 of 2 completed")
	assert.Contains(t, out, "70 pizzas")
}
