// Package budget holds the client-side mirror of the user's remote budget
// state and the operations that keep it in sync.
package budget

import (
	"sync"

	"github.com/Veraticus/finpilot/internal/model"
	"github.com/Veraticus/finpilot/internal/money"
)

// State is an immutable snapshot of the store.
type State struct {
	Categories   []model.BudgetCategory
	Transactions []model.Transaction
	Goals        []model.SavingsGoal
	Salary       float64
	Busy         bool
}

// DefaultState is the state of a freshly created store.
func DefaultState() State {
	return State{
		Categories:   model.DefaultCategories(),
		Transactions: []model.Transaction{},
		Goals:        []model.SavingsGoal{},
	}
}

// TotalBudget is the sum of all allocations.
func (s State) TotalBudget() float64 {
	values := make([]float64, len(s.Categories))
	for i, c := range s.Categories {
		values[i] = c.Allocated
	}
	return money.Sum(values...)
}

// TotalSpent is the sum of all category spending.
func (s State) TotalSpent() float64 {
	values := make([]float64, len(s.Categories))
	for i, c := range s.Categories {
		values[i] = c.Spent
	}
	return money.Sum(values...)
}

// TotalRemaining is TotalBudget minus TotalSpent.
func (s State) TotalRemaining() float64 {
	return money.Sum(s.TotalBudget(), -s.TotalSpent())
}

// Category returns the category with the given id.
func (s State) Category(id string) (model.BudgetCategory, bool) {
	idx := model.FindCategory(s.Categories, id)
	if idx < 0 {
		return model.BudgetCategory{}, false
	}
	return s.Categories[idx], true
}

// Goal returns the goal with the given id.
func (s State) Goal(id string) (model.SavingsGoal, bool) {
	for _, g := range s.Goals {
		if g.ID == id {
			return g, true
		}
	}
	return model.SavingsGoal{}, false
}

func (s State) clone() State {
	out := s
	out.Categories = append([]model.BudgetCategory(nil), s.Categories...)
	out.Transactions = append([]model.Transaction(nil), s.Transactions...)
	out.Goals = make([]model.SavingsGoal, len(s.Goals))
	for i, g := range s.Goals {
		if g.Deadline != nil {
			d := *g.Deadline
			g.Deadline = &d
		}
		out.Goals[i] = g
	}
	return out
}

// Store is the session-scoped domain store. Mutations go through pure
// transition functions; the lock only covers applying them, never a remote
// call.
type Store struct {
	observers    map[int]func(State)
	state        State
	busy         int
	nextObserver int
	mu           sync.RWMutex
}

// NewStore creates a store seeded with the default categories.
func NewStore() *Store {
	return &Store{
		state:     DefaultState(),
		observers: make(map[int]func(State)),
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	out := s.state.clone()
	out.Busy = s.busy > 0
	return out
}

// Busy reports whether any tracked operation is in flight. Advisory only.
func (s *Store) Busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy > 0
}

// Subscribe registers fn to be called with a snapshot after every change.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextObserver
	s.nextObserver++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// Apply runs a transition against the current state and notifies observers.
func (s *Store) Apply(transition func(State) State) {
	s.mu.Lock()
	s.state = transition(s.state.clone())
	snap, observers := s.snapshotLocked(), s.observersLocked()
	s.mu.Unlock()

	notify(observers, snap)
}

// Reset restores the default state, as on logout.
func (s *Store) Reset() {
	s.Apply(func(State) State { return DefaultState() })
}

// track marks an operation in flight; the returned func must be deferred.
func (s *Store) track() func() {
	s.setBusy(1)
	var once sync.Once
	return func() { once.Do(func() { s.setBusy(-1) }) }
}

func (s *Store) setBusy(delta int) {
	s.mu.Lock()
	before := s.busy > 0
	s.busy += delta
	if s.busy < 0 {
		s.busy = 0
	}
	changed := before != (s.busy > 0)
	snap, observers := s.snapshotLocked(), s.observersLocked()
	s.mu.Unlock()

	if changed {
		notify(observers, snap)
	}
}

func (s *Store) observersLocked() []func(State) {
	out := make([]func(State), 0, len(s.observers))
	for _, fn := range s.observers {
		out = append(out, fn)
	}
	return out
}

func notify(observers []func(State), snap State) {
	for _, fn := range observers {
		fn(snap.clone())
	}
}
