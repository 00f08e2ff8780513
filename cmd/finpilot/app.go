package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/finpilot/internal/api"
	"github.com/Veraticus/finpilot/internal/budget"
	"github.com/Veraticus/finpilot/internal/cli"
	"github.com/Veraticus/finpilot/internal/common"
	"github.com/Veraticus/finpilot/internal/model"
	"github.com/Veraticus/finpilot/internal/service"
	"github.com/Veraticus/finpilot/internal/storage"
)

// app is the per-command wiring of storage, the remote client and the engine.
type app struct {
	storage  *storage.SQLiteStorage
	client   service.BudgetAPI
	notifier *cli.Notifier
	engine   *budget.Engine
}

// openApp opens local storage and builds an engine whose notifications are
// printed to out, journaled, and forwarded to any extra notifiers.
func openApp(ctx context.Context, out io.Writer, extra ...service.Notifier) (*app, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, err
	}

	client, err := api.NewClient(api.Config{
		BaseURL: appCfg.API.URL,
		Timeout: appCfg.API.Timeout,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	notifier := cli.NewNotifier(out, store)
	var sink service.Notifier = notifier
	if len(extra) > 0 {
		sink = fanout(append([]service.Notifier{notifier}, extra...))
	}

	return &app{
		storage:  store,
		client:   client,
		notifier: notifier,
		engine:   budget.NewEngine(client, budget.WithNotifier(sink), budget.WithLogger(common.ComponentLogger("budget"))),
	}, nil
}

func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(appCfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

func (a *app) Close() {
	if err := a.storage.Close(); err != nil {
		slog.Warn("Failed to close database", "error", err)
	}
}

// signIn restores the saved session and runs the initial data load.
func (a *app) signIn(ctx context.Context) (*model.Session, error) {
	session, err := a.storage.LoadSession(ctx)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NewUserError("Please login first: finpilot login", common.ErrUnauthenticated)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	a.notifier.SetUser(session.UserID)
	if err := a.engine.Activate(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// startSession stores a freshly authenticated session and activates it.
func (a *app) startSession(ctx context.Context, session *model.Session) error {
	if err := a.storage.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	a.notifier.SetUser(session.UserID)
	return a.engine.Activate(ctx, session)
}

// endSession forgets the saved session and resets the engine's store.
func (a *app) endSession(ctx context.Context) error {
	if err := a.storage.DeleteSession(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	a.engine.Logout()
	a.notifier.SetUser("")
	return nil
}

// fanout delivers each notification to every notifier in order.
type fanout []service.Notifier

func (f fanout) Success(message string) {
	for _, n := range f {
		n.Success(message)
	}
}

func (f fanout) Error(message string) {
	for _, n := range f {
		n.Error(message)
	}
}

var _ service.Notifier = fanout(nil)
