package model

// BudgetCategory is one of the eight fixed budget buckets.
// Spent is not capped by Allocated; over-budget is representable.
type BudgetCategory struct {
	ID        string
	Name      string
	Icon      string
	Color     string
	Allocated float64
	Spent     float64
}

// Remaining returns the unspent part of the allocation, negative when over budget.
func (c BudgetCategory) Remaining() float64 {
	return c.Allocated - c.Spent
}

// OverBudget reports whether spending exceeds the allocation.
func (c BudgetCategory) OverBudget() bool {
	return c.Spent > c.Allocated
}

// Default category ids.
const (
	CategoryHousing       = "1"
	CategoryFood          = "2"
	CategoryTransport     = "3"
	CategoryEntertainment = "4"
	CategoryUtilities     = "5"
	CategoryShopping      = "6"
	CategoryHealth        = "7"
	CategorySavings       = "8"
)

var defaultCategories = []BudgetCategory{
	{ID: CategoryHousing, Name: "Housing", Icon: "🏠", Color: "#7c3aed"},
	{ID: CategoryFood, Name: "Food", Icon: "🍕", Color: "#2563eb"},
	{ID: CategoryTransport, Name: "Transport", Icon: "🚗", Color: "#ef4444"},
	{ID: CategoryEntertainment, Name: "Entertainment", Icon: "🎬", Color: "#f59e0b"},
	{ID: CategoryUtilities, Name: "Utilities", Icon: "⚡", Color: "#10b981"},
	{ID: CategoryShopping, Name: "Shopping", Icon: "🛍️", Color: "#ec4899"},
	{ID: CategoryHealth, Name: "Health", Icon: "💊", Color: "#06b6d4"},
	{ID: CategorySavings, Name: "Savings", Icon: "💰", Color: "#f97316"},
}

// DefaultCategories returns a fresh copy of the seed categories with zero
// allocation and spend.
func DefaultCategories() []BudgetCategory {
	out := make([]BudgetCategory, len(defaultCategories))
	copy(out, defaultCategories)
	return out
}

// FindCategory returns the index of the category with the given id, or -1.
func FindCategory(categories []BudgetCategory, id string) int {
	for i, c := range categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}
