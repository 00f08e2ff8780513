package components

import (
	"testing"

	"github.com/Veraticus/finpilot/internal/model"
	"github.com/Veraticus/finpilot/internal/tui/themes"
	"github.com/stretchr/testify/assert"
)

func TestCategoryBar(t *testing.T) {
	cat := model.BudgetCategory{ID: "2", Name: "Food", Icon: "🍕", Allocated: 600, Spent: 150}

	out := CategoryBar(cat, 80, themes.Default, false)
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "$150 / $600")
}

func TestCategoryBar_OverBudget(t *testing.T) {
	cat := model.BudgetCategory{ID: "3", Name: "Transport", Icon: "🚗", Allocated: 100, Spent: 130.5}

	out := CategoryBar(cat, 20, themes.Default, true)
	assert.Contains(t, out, "$130.50 / $100")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Entertai…", truncate("Entertainment", 9))
}
