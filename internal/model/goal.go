package model

import "time"

// SavingsGoal is a savings target tracked by the remote planner. The id is
// always assigned by the service.
type SavingsGoal struct {
	Deadline       *time.Time
	ID             string
	Name           string
	Icon           string
	Color          string
	Suggestion     string
	TargetAmount   float64
	CurrentAmount  float64
	MonthlyAmount  float64
	ExpectedReturn float64
}

// Progress returns CurrentAmount/TargetAmount clamped to [0, 1].
func (g SavingsGoal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	p := g.CurrentAmount / g.TargetAmount
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Completed reports whether the goal has reached its target.
func (g SavingsGoal) Completed() bool {
	return g.TargetAmount > 0 && g.CurrentAmount >= g.TargetAmount
}

// GoalPalette is the rotating set of colors assigned to new goals.
var GoalPalette = []string{
	"hsl(142, 40%, 45%)",
	"hsl(152, 68%, 70%)",
	"hsl(140, 30%, 35%)",
	"hsl(155, 45%, 55%)",
	"hsl(148, 50%, 60%)",
}

// GoalColor picks the palette entry for the goal created after existing ones.
func GoalColor(existing int) string {
	if existing < 0 {
		existing = 0
	}
	return GoalPalette[existing%len(GoalPalette)]
}

// GoalIcons lists the icons offered for goals. The first is the default.
var GoalIcons = []string{"🎯", "🏠", "🚗", "✈️", "💻", "📚", "💍", "🎓", "🏥", "🎁", "🛡️", "💎"}

// DefaultGoalIcon is used when a goal is created without an icon.
const DefaultGoalIcon = "🎯"
