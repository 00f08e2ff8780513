package budget

import (
	"testing"
	"time"

	"github.com/Veraticus/finpilot/internal/model"
	"github.com/Veraticus/finpilot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   time.Time
		wantOK bool
	}{
		{name: "plain date", input: "2024-06-10", want: time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local), wantOK: true},
		{name: "iso without zone", input: "2024-06-10T08:15:00", want: time.Date(2024, 6, 10, 8, 15, 0, 0, time.Local), wantOK: true},
		{name: "iso with fraction", input: "2024-06-10T08:15:00.250", want: time.Date(2024, 6, 10, 8, 15, 0, 250000000, time.Local), wantOK: true},
		{name: "space separated", input: "2024-06-10 08:15:00", want: time.Date(2024, 6, 10, 8, 15, 0, 0, time.Local), wantOK: true},
		{name: "garbage", input: "next tuesday", wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseDate(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "got %v", got)
			}
		})
	}

	zoned, ok := parseDate("2024-06-10T08:15:00Z")
	require.True(t, ok)
	assert.Equal(t, time.UTC, zoned.Location())
}

func TestApplyTransaction_UnknownCategoryOnlyPrepends(t *testing.T) {
	st := applyTransaction(DefaultState(), model.Transaction{ID: "t", CategoryID: "99", Amount: 10, Kind: model.KindExpense})

	assert.Len(t, st.Transactions, 1)
	assert.Zero(t, st.TotalSpent())
}

func TestApplyTransaction_OverBudgetIsRepresentable(t *testing.T) {
	st := DefaultState()
	st.Categories[1].Allocated = 100
	st = applyTransaction(st, model.Transaction{CategoryID: model.CategoryFood, Amount: 250, Kind: model.KindExpense})

	food, _ := st.Category(model.CategoryFood)
	assert.True(t, food.OverBudget())
	assert.Equal(t, -150.0, food.Remaining())
}

func TestApplyGoalProgress_UnknownGoalIsNoop(t *testing.T) {
	st := applyNewGoal(DefaultState(), model.SavingsGoal{ID: "g-1", CurrentAmount: 5})
	st = applyGoalProgress(st, "g-404", 100)

	assert.Equal(t, 5.0, st.Goals[0].CurrentAmount)
}

func TestApplyGoalDeletion_DoesNotAliasInput(t *testing.T) {
	before := applyNewGoal(DefaultState(), model.SavingsGoal{ID: "g-1"})
	before = applyNewGoal(before, model.SavingsGoal{ID: "g-2"})

	after := applyGoalDeletion(before, "g-1")

	require.Len(t, after.Goals, 1)
	assert.Equal(t, "g-2", after.Goals[0].ID)
	assert.Equal(t, "g-1", before.Goals[0].ID)
}

func TestApplyGoals_Deadlines(t *testing.T) {
	good, bad, empty := "2025-12-31", "soon", ""
	st := applyGoals(DefaultState(), []service.GoalRecord{
		{GoalID: "a", Deadline: &good},
		{GoalID: "b", Deadline: &bad},
		{GoalID: "c", Deadline: &empty},
		{GoalID: "d"},
	})

	require.Len(t, st.Goals, 4)
	require.NotNil(t, st.Goals[0].Deadline)
	assert.Equal(t, 31, st.Goals[0].Deadline.Day())
	assert.Nil(t, st.Goals[1].Deadline)
	assert.Nil(t, st.Goals[2].Deadline)
	assert.Nil(t, st.Goals[3].Deadline)
}

func TestApplyDashboard_ZeroesMissingRows(t *testing.T) {
	st := DefaultState()
	for i := range st.Categories {
		st.Categories[i].Allocated = 10
		st.Categories[i].Spent = 5
	}

	st = applyDashboard(st, &service.DashboardSummary{
		TotalBudget: 700,
		Breakdown:   []service.CategorySummary{{Category: "savings", Allocated: 700, Spent: 0}},
	})

	for _, c := range st.Categories {
		if c.ID == model.CategorySavings {
			assert.Equal(t, 700.0, c.Allocated)
			continue
		}
		assert.Zero(t, c.Allocated, c.Name)
		assert.Zero(t, c.Spent, c.Name)
	}
	assert.Equal(t, 700.0, st.Salary)
}
