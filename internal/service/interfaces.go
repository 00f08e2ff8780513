// Package service defines the contracts between the budget engine and its
// collaborators: the remote budget service, notification sinks, and the
// local session store.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/finpilot/internal/model"
)

// BudgetAPI is the remote budget-prediction and goal-planning service.
// Category fields carry service codes, not display names.
type BudgetAPI interface {
	// Authentication
	Register(ctx context.Context, req RegisterRequest) (*model.Session, error)
	Login(ctx context.Context, req LoginRequest) (*model.Session, error)

	// Budget and transactions
	PredictAllocation(ctx context.Context, req AllocationRequest) (*AllocationResponse, error)
	AddTransaction(ctx context.Context, req TransactionRequest) (*TransactionReceipt, error)
	TransactionHistory(ctx context.Context, userID string) ([]TransactionRecord, error)
	CategoryTransactions(ctx context.Context, userID, code string) ([]TransactionRecord, error)
	DashboardSummary(ctx context.Context, userID, month string) (*DashboardSummary, error)

	// Goals
	CreateGoal(ctx context.Context, req GoalRequest) (*GoalPlan, error)
	Goals(ctx context.Context, userID string) ([]GoalRecord, error)
	UpdateGoalProgress(ctx context.Context, goalID string, amount float64) (*GoalProgress, error)
	DeleteGoal(ctx context.Context, goalID string) (*DeleteResult, error)

	// Monthly review
	MonthlyReview(ctx context.Context, userID string, year, month int) (*model.MonthlyReview, error)
}

// Notifier shows transient user-facing notifications.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// SessionStore persists the signed-in session between CLI invocations.
type SessionStore interface {
	SaveSession(ctx context.Context, session *model.Session) error
	LoadSession(ctx context.Context) (*model.Session, error)
	DeleteSession(ctx context.Context) error
}

// NotificationJournal records notifications for later review.
type NotificationJournal interface {
	AppendNotification(ctx context.Context, n Notification) error
	RecentNotifications(ctx context.Context, limit int) ([]Notification, error)
}

// NotificationLevel distinguishes success from error notifications.
type NotificationLevel string

const (
	// LevelSuccess marks a completed operation.
	LevelSuccess NotificationLevel = "success"
	// LevelError marks a failed operation.
	LevelError NotificationLevel = "error"
)

// Notification is one journaled notification.
type Notification struct {
	CreatedAt time.Time
	Level     NotificationLevel
	Message   string
	UserID    string
	ID        int64
}

// RegisterRequest creates an account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

// LoginRequest signs in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AllocationRequest asks the predictor to split a salary across categories.
type AllocationRequest struct {
	UserID string  `json:"user_id" validate:"required"`
	Month  string  `json:"month" validate:"required,datetime=2006-01"`
	Amount float64 `json:"amount" validate:"gt=0"`
}

// AllocationResponse maps service codes to predicted amounts.
type AllocationResponse struct {
	PredictedAllocation map[string]float64 `json:"predicted_allocation"`
	Salary              float64            `json:"salary"`
}

// TransactionRequest records a transaction. Type is "debit" or "credit".
type TransactionRequest struct {
	UserID      string  `json:"user_id" validate:"required"`
	Type        string  `json:"type" validate:"oneof=debit credit"`
	Category    string  `json:"category" validate:"required"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount" validate:"gt=0"`
}

// TransactionReceipt acknowledges a recorded transaction.
type TransactionReceipt struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// TransactionRecord is a transaction as stored by the service.
type TransactionRecord struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// CategorySummary is one row of the dashboard breakdown.
type CategorySummary struct {
	Category  string  `json:"category"`
	Status    string  `json:"status"`
	Allocated float64 `json:"allocated"`
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
}

// DashboardSummary is the month's budget breakdown.
type DashboardSummary struct {
	Month           string            `json:"month"`
	Breakdown       []CategorySummary `json:"breakdown"`
	TotalBudget     float64           `json:"total_budget"`
	TotalSpent      float64           `json:"total_spent"`
	RemainingSalary float64           `json:"remaining_salary"`
}

// GoalRequest creates a goal. Deadline is "YYYY-MM-DD" or nil.
type GoalRequest struct {
	Deadline       *string `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
	UserID         string  `json:"user_id" validate:"required"`
	Name           string  `json:"name" validate:"required"`
	Icon           string  `json:"icon"`
	Color          string  `json:"color"`
	TargetAmount   float64 `json:"target_amount" validate:"gt=0"`
	CurrentAmount  float64 `json:"current_amount" validate:"gte=0"`
	DurationMonths int     `json:"duration_months" validate:"gte=1"`
}

// GoalPlan is the planner's advice for a newly created goal.
type GoalPlan struct {
	GoalID         string  `json:"goal_id"`
	Suggestion     string  `json:"suggestion"`
	MonthlyAmount  float64 `json:"monthly_amount"`
	ExpectedReturn float64 `json:"expected_return"`
}

// GoalRecord is a goal as stored by the service.
type GoalRecord struct {
	Deadline       *string `json:"deadline"`
	GoalID         string  `json:"goal_id"`
	UserID         string  `json:"user_id"`
	Name           string  `json:"name"`
	Icon           string  `json:"icon"`
	Color          string  `json:"color"`
	Suggestion     string  `json:"suggestion"`
	TargetAmount   float64 `json:"target_amount"`
	CurrentAmount  float64 `json:"current_amount"`
	MonthlyAmount  float64 `json:"monthly_amount"`
	ExpectedReturn float64 `json:"expected_return"`
	DurationMonths int     `json:"duration_months"`
}

// GoalProgress carries the authoritative amount after a contribution.
type GoalProgress struct {
	GoalID        string  `json:"goal_id"`
	CurrentAmount float64 `json:"current_amount"`
}

// DeleteResult acknowledges a deletion.
type DeleteResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
