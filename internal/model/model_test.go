package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCategories(t *testing.T) {
	cats := DefaultCategories()
	require.Len(t, cats, 8)

	names := make(map[string]bool)
	for _, c := range cats {
		assert.Zero(t, c.Allocated, c.Name)
		assert.Zero(t, c.Spent, c.Name)
		assert.False(t, names[c.Name], "duplicate name %s", c.Name)
		names[c.Name] = true
	}

	// Mutating the copy must not leak into later calls.
	cats[0].Allocated = 900
	assert.Zero(t, DefaultCategories()[0].Allocated)
}

func TestFindCategory(t *testing.T) {
	cats := DefaultCategories()
	assert.Equal(t, 1, FindCategory(cats, CategoryFood))
	assert.Equal(t, -1, FindCategory(cats, "42"))
}

func TestBudgetCategory_Remaining(t *testing.T) {
	c := BudgetCategory{Allocated: 300, Spent: 450}
	assert.InDelta(t, -150, c.Remaining(), 0.001)
	assert.True(t, c.OverBudget())
}

func TestParseTransactionKind(t *testing.T) {
	tests := []struct {
		input   string
		want    TransactionKind
		wantErr bool
	}{
		{input: "expense", want: KindExpense},
		{input: "debit", want: KindExpense},
		{input: "income", want: KindIncome},
		{input: "credit", want: KindIncome},
		{input: "refund", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTransactionKind(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocalTransactionID(t *testing.T) {
	now := time.UnixMilli(1718000000123)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := LocalTransactionID(now)
		assert.Regexp(t, `^txn-1718000000123-[0-9a-f]{8}$`, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestSavingsGoal_Progress(t *testing.T) {
	tests := []struct {
		name string
		goal SavingsGoal
		want float64
	}{
		{name: "half way", goal: SavingsGoal{TargetAmount: 1000, CurrentAmount: 500}, want: 0.5},
		{name: "over target clamps", goal: SavingsGoal{TargetAmount: 1000, CurrentAmount: 1500}, want: 1},
		{name: "zero target", goal: SavingsGoal{CurrentAmount: 10}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.goal.Progress(), 0.0001)
		})
	}
}

func TestGoalColor(t *testing.T) {
	assert.Equal(t, GoalPalette[0], GoalColor(0))
	assert.Equal(t, GoalPalette[2], GoalColor(2))
	assert.Equal(t, GoalPalette[0], GoalColor(5))
	assert.Equal(t, GoalPalette[1], GoalColor(11))
}

func TestSession_Valid(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.Valid())
	assert.False(t, (&Session{}).Valid())
	assert.True(t, (&Session{UserID: "u-1"}).Valid())
}
