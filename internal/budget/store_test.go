package budget

import (
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/finpilot/internal/model"
	"github.com/Veraticus/finpilot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_Defaults(t *testing.T) {
	s := NewStore()
	st := s.Snapshot()

	assert.Equal(t, model.DefaultCategories(), st.Categories)
	assert.Empty(t, st.Transactions)
	assert.Empty(t, st.Goals)
	assert.Zero(t, st.TotalBudget())
	assert.Zero(t, st.TotalSpent())
	assert.False(t, st.Busy)
}

func TestStore_SnapshotIsIsolated(t *testing.T) {
	s := NewStore()
	deadline := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Apply(func(st State) State {
		return applyNewGoal(st, model.SavingsGoal{ID: "g-1", Deadline: &deadline})
	})

	snap := s.Snapshot()
	snap.Categories[0].Spent = 999
	*snap.Goals[0].Deadline = time.Time{}

	fresh := s.Snapshot()
	assert.Zero(t, fresh.Categories[0].Spent)
	assert.Equal(t, deadline, *fresh.Goals[0].Deadline)
}

func TestStore_SubscribeAndUnsubscribe(t *testing.T) {
	s := NewStore()

	var seen []State
	unsubscribe := s.Subscribe(func(st State) { seen = append(seen, st) })

	s.Apply(func(st State) State {
		st.Salary = 1000
		return st
	})
	require.Len(t, seen, 1)
	assert.Equal(t, 1000.0, seen[0].Salary)

	unsubscribe()
	s.Apply(func(st State) State {
		st.Salary = 2000
		return st
	})
	assert.Len(t, seen, 1)
}

func TestStore_BusyTracking(t *testing.T) {
	s := NewStore()

	var flips []bool
	s.Subscribe(func(st State) { flips = append(flips, st.Busy) })

	doneA := s.track()
	doneB := s.track()
	assert.True(t, s.Busy())

	doneA()
	doneA()
	assert.True(t, s.Busy(), "a second call of the same done func is a no-op")

	doneB()
	assert.False(t, s.Busy())
	assert.Equal(t, []bool{true, false}, flips, "observers only hear about flips")
}

func TestStore_Reset(t *testing.T) {
	s := NewStore()
	s.Apply(func(st State) State {
		return applyTransaction(st, model.Transaction{ID: "t", CategoryID: model.CategoryFood, Amount: 10, Kind: model.KindExpense})
	})

	s.Reset()

	assert.Equal(t, DefaultState(), s.Snapshot())
}

func TestStore_ConcurrentApply(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			done := s.track()
			defer done()
			s.Apply(func(st State) State {
				return applyTransaction(st, model.Transaction{CategoryID: model.CategoryHousing, Amount: 2, Kind: model.KindExpense})
			})
		}()
	}
	wg.Wait()

	st := s.Snapshot()
	assert.Equal(t, 100.0, st.TotalSpent())
	assert.Len(t, st.Transactions, 50)
	assert.False(t, st.Busy)
}

func TestState_Totals(t *testing.T) {
	st := DefaultState()
	st = applyPrediction(st, 3000, &service.AllocationResponse{PredictedAllocation: map[string]float64{
		"rent": 1000.1, "food": 500.2, "misc": 100.3,
	}})
	st = applyTransaction(st, model.Transaction{CategoryID: model.CategoryFood, Amount: 0.1, Kind: model.KindExpense})
	st = applyTransaction(st, model.Transaction{CategoryID: model.CategoryFood, Amount: 0.2, Kind: model.KindExpense})

	assert.Equal(t, 1800.0, st.TotalBudget())
	assert.Equal(t, 0.3, st.TotalSpent())
	assert.Equal(t, 1799.7, st.TotalRemaining())
}
