package budget

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/finpilot/internal/common"
	"github.com/Veraticus/finpilot/internal/model"
	"github.com/Veraticus/finpilot/internal/service"
	"github.com/Veraticus/finpilot/internal/vocab"
	"golang.org/x/sync/errgroup"
)

// Notification texts shown to the user.
const (
	msgLoginRequired     = "Please login to use this feature"
	msgInvalidCategory   = "Invalid category"
	msgPredictOK         = "Budget predicted successfully!"
	msgPredictFailed     = "Failed to predict budget"
	msgTransactionOK     = "Transaction added successfully!"
	msgTransactionFailed = "Failed to add transaction"
	msgGoalOK            = "Goal created successfully!"
	msgGoalFailed        = "Failed to create goal"
	msgProgressOK        = "Goal progress updated!"
	msgProgressFailed    = "Failed to update goal progress"
	msgDeleteOK          = "Goal deleted!"
	msgDeleteFailed      = "Failed to delete goal"
)

const (
	monthLayout = "2006-01"
	dayLayout   = "2006-01-02"

	// defaultGoalMonths is used when a goal has no deadline.
	defaultGoalMonths = 12
	goalMonth         = 30 * 24 * time.Hour
)

// Engine runs the synchronization operations for one authenticated session.
// Every write performs its remote call first and touches the store only in
// the success path; no call is retried.
type Engine struct {
	api       service.BudgetAPI
	notifier  service.Notifier
	store     *Store
	logger    *slog.Logger
	now       func() time.Time
	session   *model.Session
	activated string
	mu        sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithNotifier sets the sink for user-facing notifications.
func WithNotifier(n service.Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger overrides the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithStore uses an existing store instead of a fresh one.
func WithStore(s *Store) Option {
	return func(e *Engine) { e.store = s }
}

// NewEngine creates an engine with no active session.
func NewEngine(api service.BudgetAPI, opts ...Option) *Engine {
	e := &Engine{
		api:      api,
		notifier: nopNotifier{},
		now:      time.Now,
		logger:   common.ComponentLogger("budget"),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = NewStore()
	}
	return e
}

// Store returns the engine's domain store.
func (e *Engine) Store() *Store { return e.store }

// Session returns a copy of the active session, or nil.
func (e *Engine) Session() *model.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return nil
	}
	s := *e.session
	return &s
}

// Activate makes session the active one and runs the initial load, once per
// session. Dashboard and goals are fetched concurrently. Switching to another
// user resets the store first, so nothing of the previous user survives a
// failed load.
func (e *Engine) Activate(ctx context.Context, session *model.Session) error {
	if !session.Valid() {
		return common.ErrUnauthenticated
	}

	e.mu.Lock()
	s := *session
	e.session = &s
	if e.activated == s.UserID {
		e.mu.Unlock()
		return nil
	}
	previous := e.activated
	e.activated = s.UserID
	e.mu.Unlock()

	if previous != "" {
		e.store.Reset()
		e.logger.Info("Session switched", "from_user_id", previous, "user_id", s.UserID)
	} else {
		e.logger.Info("Session activated", "user_id", s.UserID)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return e.LoadDashboardData(gctx) })
	g.Go(func() error { return e.LoadGoals(gctx) })
	return g.Wait()
}

// Logout clears the session and resets the store to defaults.
func (e *Engine) Logout() {
	e.mu.Lock()
	e.session = nil
	e.activated = ""
	e.mu.Unlock()

	e.store.Reset()
	e.logger.Info("Session ended")
}

func (e *Engine) requireSession() (*model.Session, error) {
	s := e.Session()
	if !s.Valid() {
		e.notifier.Error(msgLoginRequired)
		return nil, common.NewUserError(msgLoginRequired, common.ErrUnauthenticated)
	}
	return s, nil
}

// fail logs a write failure, raises the notification and returns the
// user-facing error.
func (e *Engine) fail(op, message string, err error) error {
	e.logger.Error("Operation failed", "op", op, "error", err)
	e.notifier.Error(message)
	return common.NewUserError(message, err)
}

// LoadDashboardData reloads the month's category breakdown and the full
// transaction history. Remote failures are logged and swallowed: a new user
// legitimately has no data yet.
func (e *Engine) LoadDashboardData(ctx context.Context) error {
	s, err := e.requireSession()
	if err != nil {
		return err
	}

	done := e.store.track()
	defer done()

	month := e.now().Format(monthLayout)
	summary, err := e.api.DashboardSummary(ctx, s.UserID, month)
	if err != nil {
		e.logger.Error("Failed to load dashboard data", "month", month, "error", err)
		return nil
	}
	e.store.Apply(func(st State) State { return applyDashboard(st, summary) })

	history, err := e.api.TransactionHistory(ctx, s.UserID)
	if err != nil {
		e.logger.Error("Failed to load transaction history", "error", err)
		return nil
	}
	e.store.Apply(func(st State) State { return applyHistory(st, history) })

	e.logger.Debug("Dashboard loaded",
		"month", month,
		"breakdown", len(summary.Breakdown),
		"transactions", len(history))
	return nil
}

// LoadGoals replaces the goal list. Remote failures are logged and swallowed.
func (e *Engine) LoadGoals(ctx context.Context) error {
	s, err := e.requireSession()
	if err != nil {
		return err
	}

	records, err := e.api.Goals(ctx, s.UserID)
	if err != nil {
		e.logger.Error("Failed to load goals", "error", err)
		return nil
	}
	e.store.Apply(func(st State) State { return applyGoals(st, records) })
	return nil
}

// PredictBudget asks the predictor to allocate salary across the categories
// for the current month. On failure the store is unchanged and the previous
// categories are returned alongside the error.
func (e *Engine) PredictBudget(ctx context.Context, salary float64) ([]model.BudgetCategory, error) {
	previous := e.store.Snapshot().Categories

	s, err := e.requireSession()
	if err != nil {
		return previous, err
	}
	if salary <= 0 || math.IsNaN(salary) || math.IsInf(salary, 0) {
		return previous, e.fail("predict budget", msgPredictFailed,
			fmt.Errorf("%w: salary must be greater than zero", common.ErrInvalidAmount))
	}

	done := e.store.track()
	defer done()

	resp, err := e.api.PredictAllocation(ctx, service.AllocationRequest{
		UserID: s.UserID,
		Amount: salary,
		Month:  e.now().Format(monthLayout),
	})
	if err != nil {
		return previous, e.fail("predict budget", msgPredictFailed, err)
	}

	var next []model.BudgetCategory
	e.store.Apply(func(st State) State {
		st = applyPrediction(st, salary, resp)
		next = append([]model.BudgetCategory(nil), st.Categories...)
		return st
	})
	e.notifier.Success(msgPredictOK)
	return next, nil
}

// AddTransaction records a transaction remotely and, only once the service
// accepts it, prepends it locally and counts expenses against the category.
func (e *Engine) AddTransaction(ctx context.Context, categoryID string, amount float64, kind model.TransactionKind, description string) error {
	s, err := e.requireSession()
	if err != nil {
		return err
	}

	cat, ok := e.store.Snapshot().Category(categoryID)
	if !ok {
		e.notifier.Error(msgInvalidCategory)
		return common.NewUserError(msgInvalidCategory, fmt.Errorf("%w: %q", common.ErrInvalidCategory, categoryID))
	}
	code, err := vocab.ToServiceCode(cat.Name)
	if err != nil {
		e.notifier.Error(msgInvalidCategory)
		return common.NewUserError(msgInvalidCategory, fmt.Errorf("%w: %v", common.ErrInvalidCategory, err))
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return e.fail("add transaction", msgTransactionFailed,
			fmt.Errorf("%w: amount must be greater than zero", common.ErrInvalidAmount))
	}
	if !kind.Valid() {
		return e.fail("add transaction", msgTransactionFailed,
			fmt.Errorf("%w: transaction kind %q", common.ErrInvalidInput, kind))
	}
	if strings.TrimSpace(description) == "" {
		description = model.DefaultDescription
	}

	done := e.store.track()
	defer done()

	now := e.now()
	_, err = e.api.AddTransaction(ctx, service.TransactionRequest{
		UserID:      s.UserID,
		Amount:      amount,
		Type:        wireKind(kind),
		Category:    code,
		Date:        now.Format(dayLayout),
		Description: description,
	})
	if err != nil {
		return e.fail("add transaction", msgTransactionFailed, err)
	}

	txn := model.Transaction{
		ID:          model.LocalTransactionID(now),
		CategoryID:  categoryID,
		Amount:      amount,
		Kind:        kind,
		Description: description,
		Date:        now,
	}
	e.store.Apply(func(st State) State { return applyTransaction(st, txn) })
	e.notifier.Success(msgTransactionOK)
	return nil
}

func wireKind(kind model.TransactionKind) string {
	if kind == model.KindExpense {
		return "debit"
	}
	return "credit"
}

// GoalInput describes a goal to create.
type GoalInput struct {
	Deadline     *time.Time
	Name         string
	Icon         string
	TargetAmount float64
}

// AddGoal creates a goal with the remote planner and appends it locally with
// the planner's id and advice.
func (e *Engine) AddGoal(ctx context.Context, in GoalInput) error {
	s, err := e.requireSession()
	if err != nil {
		return err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return e.fail("create goal", msgGoalFailed, fmt.Errorf("%w: goal name is required", common.ErrInvalidInput))
	}
	if in.TargetAmount <= 0 || math.IsNaN(in.TargetAmount) || math.IsInf(in.TargetAmount, 0) {
		return e.fail("create goal", msgGoalFailed, fmt.Errorf("%w: target must be greater than zero", common.ErrInvalidAmount))
	}

	now := e.now()
	if in.Deadline != nil && in.Deadline.Before(now) {
		return e.fail("create goal", msgGoalFailed, common.ErrInvalidDeadline)
	}

	icon := in.Icon
	if icon == "" {
		icon = model.DefaultGoalIcon
	}
	color := model.GoalColor(len(e.store.Snapshot().Goals))

	var deadline *string
	if in.Deadline != nil {
		d := in.Deadline.Format(dayLayout)
		deadline = &d
	}

	done := e.store.track()
	defer done()

	plan, err := e.api.CreateGoal(ctx, service.GoalRequest{
		UserID:         s.UserID,
		TargetAmount:   in.TargetAmount,
		DurationMonths: GoalDurationMonths(now, in.Deadline),
		Name:           name,
		Icon:           icon,
		Deadline:       deadline,
		CurrentAmount:  0,
		Color:          color,
	})
	if err != nil {
		return e.fail("create goal", msgGoalFailed, err)
	}

	goal := model.SavingsGoal{
		ID:             plan.GoalID,
		Name:           name,
		TargetAmount:   in.TargetAmount,
		CurrentAmount:  0,
		Deadline:       in.Deadline,
		Icon:           icon,
		Color:          color,
		Suggestion:     plan.Suggestion,
		MonthlyAmount:  plan.MonthlyAmount,
		ExpectedReturn: plan.ExpectedReturn,
	}
	e.store.Apply(func(st State) State { return applyNewGoal(st, goal) })
	e.notifier.Success(msgGoalOK)
	return nil
}

// GoalDurationMonths counts 30-day months from now until deadline, rounding
// up, with a floor of one. Goals without a deadline default to twelve.
func GoalDurationMonths(now time.Time, deadline *time.Time) int {
	if deadline == nil {
		return defaultGoalMonths
	}
	months := int(math.Ceil(float64(deadline.Sub(now)) / float64(goalMonth)))
	if months < 1 {
		return 1
	}
	return months
}

// UpdateGoalProgress contributes amount to a goal and adopts the amount the
// service reports, which may differ from the local sum.
func (e *Engine) UpdateGoalProgress(ctx context.Context, goalID string, amount float64) error {
	if _, err := e.requireSession(); err != nil {
		return err
	}

	progress, err := e.api.UpdateGoalProgress(ctx, goalID, amount)
	if err != nil {
		return e.fail("update goal", msgProgressFailed, err)
	}

	e.store.Apply(func(st State) State { return applyGoalProgress(st, goalID, progress.CurrentAmount) })
	e.notifier.Success(msgProgressOK)
	return nil
}

// DeleteGoal deletes a goal remotely, then locally.
func (e *Engine) DeleteGoal(ctx context.Context, goalID string) error {
	if _, err := e.requireSession(); err != nil {
		return err
	}

	if _, err := e.api.DeleteGoal(ctx, goalID); err != nil {
		return e.fail("delete goal", msgDeleteFailed, err)
	}

	e.store.Apply(func(st State) State { return applyGoalDeletion(st, goalID) })
	e.notifier.Success(msgDeleteOK)
	return nil
}

// CategoryTransactions fetches a category's transactions without touching
// the store.
func (e *Engine) CategoryTransactions(ctx context.Context, categoryID string) ([]model.Transaction, error) {
	s, err := e.requireSession()
	if err != nil {
		return nil, err
	}

	code, err := vocab.CodeForCategoryID(categoryID)
	if err != nil {
		return nil, err
	}

	records, err := e.api.CategoryTransactions(ctx, s.UserID, code)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s transactions: %w", code, err)
	}

	txns := make([]model.Transaction, 0, len(records))
	for _, r := range records {
		txns = append(txns, transactionFromRecord(r))
	}
	return txns, nil
}

// MonthlyReview passes the month-in-review summary through untouched.
func (e *Engine) MonthlyReview(ctx context.Context, year, month int) (*model.MonthlyReview, error) {
	s, err := e.requireSession()
	if err != nil {
		return nil, err
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d", common.ErrInvalidInput, month)
	}

	review, err := e.api.MonthlyReview(ctx, s.UserID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly review: %w", err)
	}
	return review, nil
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}
