// Package testutil provides shared fixtures for tests that need a migrated
// database or a signed-in user.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/finpilot/internal/api"
	"github.com/Veraticus/finpilot/internal/model"
	"github.com/Veraticus/finpilot/internal/service"
	"github.com/Veraticus/finpilot/internal/storage"
)

// UserID is the id of the Session fixture.
const UserID = "user-42"

// SetupTestDB creates a migrated database in a temp dir. It is closed when
// the test ends.
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "finpilot.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return store
}

// Session returns a valid signed-in session.
func Session() *model.Session {
	return &model.Session{
		UserID:    UserID,
		Email:     "ada@example.com",
		Name:      "Ada",
		CreatedAt: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

// SeedSession stores Session() in store and returns it.
func SeedSession(t *testing.T, store *storage.SQLiteStorage) *model.Session {
	t.Helper()
	s := Session()
	if err := store.SaveSession(context.Background(), s); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	return s
}

// MockAPI returns a mock budget service that authenticates as Session() and
// reports a small dashboard.
func MockAPI() *api.MockClient {
	m := api.NewMockClient()
	m.LoginFn = func(context.Context, service.LoginRequest) (*model.Session, error) {
		return Session(), nil
	}
	m.RegisterFn = func(_ context.Context, req service.RegisterRequest) (*model.Session, error) {
		s := Session()
		s.Name, s.Email = req.Name, req.Email
		return s, nil
	}
	m.DashboardSummaryFn = func(context.Context, string, string) (*service.DashboardSummary, error) {
		return &service.DashboardSummary{
			TotalBudget: 2100,
			TotalSpent:  1620,
			Breakdown: []service.CategorySummary{
				{Category: "food", Allocated: 600, Spent: 120, Remaining: 480},
				{Category: "rent", Allocated: 1500, Spent: 1500},
			},
		}, nil
	}
	return m
}
