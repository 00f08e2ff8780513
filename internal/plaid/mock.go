package plaid

import (
	"context"
	"sync"
	"time"

	"github.com/Veraticus/finpilot/internal/importer"
)

// MockClient is a mock implementation of TransactionFetcher for testing.
type MockClient struct {
	GetTransactionsFn func(ctx context.Context, startDate, endDate time.Time) ([]importer.Draft, error)
	GetAccountsFn     func(ctx context.Context) ([]string, error)

	GetTransactionsCalls []GetTransactionsCall
	GetAccountsCalls     int
	mu                   sync.Mutex
}

// GetTransactionsCall records the parameters of a GetTransactions call.
type GetTransactionsCall struct {
	StartDate time.Time
	EndDate   time.Time
}

// NewMockClient creates a new mock Plaid client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// GetTransactions implements TransactionFetcher.
func (m *MockClient) GetTransactions(ctx context.Context, startDate, endDate time.Time) ([]importer.Draft, error) {
	m.mu.Lock()
	m.GetTransactionsCalls = append(m.GetTransactionsCalls, GetTransactionsCall{StartDate: startDate, EndDate: endDate})
	fn := m.GetTransactionsFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, startDate, endDate)
	}
	return []importer.Draft{}, nil
}

// GetAccounts implements TransactionFetcher.
func (m *MockClient) GetAccounts(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	m.GetAccountsCalls++
	fn := m.GetAccountsFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return []string{}, nil
}

// Reset clears all call tracking.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetTransactionsCalls = nil
	m.GetAccountsCalls = 0
}

var _ TransactionFetcher = (*MockClient)(nil)
