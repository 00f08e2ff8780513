package api

import (
	"context"
	"sync"

	"github.com/Veraticus/finpilot/internal/model"
	"github.com/Veraticus/finpilot/internal/service"
)

// MockClient is a mock implementation of service.BudgetAPI for testing.
// Unset function fields return empty successful responses.
type MockClient struct {
	RegisterFn             func(ctx context.Context, req service.RegisterRequest) (*model.Session, error)
	LoginFn                func(ctx context.Context, req service.LoginRequest) (*model.Session, error)
	PredictAllocationFn    func(ctx context.Context, req service.AllocationRequest) (*service.AllocationResponse, error)
	AddTransactionFn       func(ctx context.Context, req service.TransactionRequest) (*service.TransactionReceipt, error)
	TransactionHistoryFn   func(ctx context.Context, userID string) ([]service.TransactionRecord, error)
	CategoryTransactionsFn func(ctx context.Context, userID, code string) ([]service.TransactionRecord, error)
	DashboardSummaryFn     func(ctx context.Context, userID, month string) (*service.DashboardSummary, error)
	CreateGoalFn           func(ctx context.Context, req service.GoalRequest) (*service.GoalPlan, error)
	GoalsFn                func(ctx context.Context, userID string) ([]service.GoalRecord, error)
	UpdateGoalProgressFn   func(ctx context.Context, goalID string, amount float64) (*service.GoalProgress, error)
	DeleteGoalFn           func(ctx context.Context, goalID string) (*service.DeleteResult, error)
	MonthlyReviewFn        func(ctx context.Context, userID string, year, month int) (*model.MonthlyReview, error)

	// Call tracking
	AllocationCalls  []service.AllocationRequest
	TransactionCalls []service.TransactionRequest
	GoalCalls        []service.GoalRequest
	ProgressCalls    []ProgressCall
	DeleteCalls      []string
	SummaryCalls     []SummaryCall
	HistoryCalls     int
	GoalsCalls       int

	mu sync.Mutex
}

// ProgressCall records the parameters of an UpdateGoalProgress call.
type ProgressCall struct {
	GoalID string
	Amount float64
}

// SummaryCall records the parameters of a DashboardSummary call.
type SummaryCall struct {
	UserID string
	Month  string
}

// NewMockClient creates a new mock budget service client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Calls returns the total number of remote calls made.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.AllocationCalls) + len(m.TransactionCalls) + len(m.GoalCalls) +
		len(m.ProgressCalls) + len(m.DeleteCalls) + len(m.SummaryCalls) +
		m.HistoryCalls + m.GoalsCalls
}

// Register implements service.BudgetAPI.
func (m *MockClient) Register(ctx context.Context, req service.RegisterRequest) (*model.Session, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, req)
	}
	return &model.Session{UserID: "user-1", Email: req.Email, Name: req.Name}, nil
}

// Login implements service.BudgetAPI.
func (m *MockClient) Login(ctx context.Context, req service.LoginRequest) (*model.Session, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, req)
	}
	return &model.Session{UserID: "user-1", Email: req.Email}, nil
}

// PredictAllocation implements service.BudgetAPI.
func (m *MockClient) PredictAllocation(ctx context.Context, req service.AllocationRequest) (*service.AllocationResponse, error) {
	m.mu.Lock()
	m.AllocationCalls = append(m.AllocationCalls, req)
	m.mu.Unlock()

	if m.PredictAllocationFn != nil {
		return m.PredictAllocationFn(ctx, req)
	}
	return &service.AllocationResponse{Salary: req.Amount, PredictedAllocation: map[string]float64{}}, nil
}

// AddTransaction implements service.BudgetAPI.
func (m *MockClient) AddTransaction(ctx context.Context, req service.TransactionRequest) (*service.TransactionReceipt, error) {
	m.mu.Lock()
	m.TransactionCalls = append(m.TransactionCalls, req)
	m.mu.Unlock()

	if m.AddTransactionFn != nil {
		return m.AddTransactionFn(ctx, req)
	}
	return &service.TransactionReceipt{ID: "remote-txn", Status: "success"}, nil
}

// TransactionHistory implements service.BudgetAPI.
func (m *MockClient) TransactionHistory(ctx context.Context, userID string) ([]service.TransactionRecord, error) {
	m.mu.Lock()
	m.HistoryCalls++
	m.mu.Unlock()

	if m.TransactionHistoryFn != nil {
		return m.TransactionHistoryFn(ctx, userID)
	}
	return []service.TransactionRecord{}, nil
}

// CategoryTransactions implements service.BudgetAPI.
func (m *MockClient) CategoryTransactions(ctx context.Context, userID, code string) ([]service.TransactionRecord, error) {
	if m.CategoryTransactionsFn != nil {
		return m.CategoryTransactionsFn(ctx, userID, code)
	}
	return []service.TransactionRecord{}, nil
}

// DashboardSummary implements service.BudgetAPI.
func (m *MockClient) DashboardSummary(ctx context.Context, userID, month string) (*service.DashboardSummary, error) {
	m.mu.Lock()
	m.SummaryCalls = append(m.SummaryCalls, SummaryCall{UserID: userID, Month: month})
	m.mu.Unlock()

	if m.DashboardSummaryFn != nil {
		return m.DashboardSummaryFn(ctx, userID, month)
	}
	return &service.DashboardSummary{Month: month}, nil
}

// CreateGoal implements service.BudgetAPI.
func (m *MockClient) CreateGoal(ctx context.Context, req service.GoalRequest) (*service.GoalPlan, error) {
	m.mu.Lock()
	m.GoalCalls = append(m.GoalCalls, req)
	m.mu.Unlock()

	if m.CreateGoalFn != nil {
		return m.CreateGoalFn(ctx, req)
	}
	return &service.GoalPlan{GoalID: "goal-1"}, nil
}

// Goals implements service.BudgetAPI.
func (m *MockClient) Goals(ctx context.Context, userID string) ([]service.GoalRecord, error) {
	m.mu.Lock()
	m.GoalsCalls++
	m.mu.Unlock()

	if m.GoalsFn != nil {
		return m.GoalsFn(ctx, userID)
	}
	return []service.GoalRecord{}, nil
}

// UpdateGoalProgress implements service.BudgetAPI.
func (m *MockClient) UpdateGoalProgress(ctx context.Context, goalID string, amount float64) (*service.GoalProgress, error) {
	m.mu.Lock()
	m.ProgressCalls = append(m.ProgressCalls, ProgressCall{GoalID: goalID, Amount: amount})
	m.mu.Unlock()

	if m.UpdateGoalProgressFn != nil {
		return m.UpdateGoalProgressFn(ctx, goalID, amount)
	}
	return &service.GoalProgress{GoalID: goalID, CurrentAmount: amount}, nil
}

// DeleteGoal implements service.BudgetAPI.
func (m *MockClient) DeleteGoal(ctx context.Context, goalID string) (*service.DeleteResult, error) {
	m.mu.Lock()
	m.DeleteCalls = append(m.DeleteCalls, goalID)
	m.mu.Unlock()

	if m.DeleteGoalFn != nil {
		return m.DeleteGoalFn(ctx, goalID)
	}
	return &service.DeleteResult{Status: "success", Message: "Goal deleted"}, nil
}

// MonthlyReview implements service.BudgetAPI.
func (m *MockClient) MonthlyReview(ctx context.Context, userID string, year, month int) (*model.MonthlyReview, error) {
	if m.MonthlyReviewFn != nil {
		return m.MonthlyReviewFn(ctx, userID, year, month)
	}
	return &model.MonthlyReview{Year: year, Month: month}, nil
}

var _ service.BudgetAPI = (*MockClient)(nil)
