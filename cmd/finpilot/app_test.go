package main

import (
	"context"
	"io"
	"testing"

	"github.com/Veraticus/finpilot/internal/budget"
	"github.com/Veraticus/finpilot/internal/cli"
	"github.com/Veraticus/finpilot/internal/common"
	"github.com/Veraticus/finpilot/internal/model"
	"github.com/Veraticus/finpilot/internal/service"
	"github.com/Veraticus/finpilot/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T) *app {
	t.Helper()
	store := testutil.SetupTestDB(t)
	client := testutil.MockAPI()
	notifier := cli.NewNotifier(io.Discard, store)
	return &app{
		storage:  store,
		client:   client,
		notifier: notifier,
		engine:   budget.NewEngine(client, budget.WithNotifier(notifier)),
	}
}

func TestSignIn_RequiresSavedSession(t *testing.T) {
	a := testApp(t)

	_, err := a.signIn(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
	assert.Equal(t, "Please login first: finpilot login", common.UserMessage(err))
}

func TestSignIn_RestoresSessionAndLoads(t *testing.T) {
	a := testApp(t)
	ctx := context.Background()
	testutil.SeedSession(t, a.storage)

	session, err := a.signIn(ctx)
	require.NoError(t, err)
	assert.Equal(t, testutil.UserID, session.UserID)
	assert.Equal(t, testutil.UserID, a.engine.Session().UserID)

	st := a.engine.Store().Snapshot()
	assert.InDelta(t, 2100, st.TotalBudget(), 1e-9)
	food := st.Categories[model.FindCategory(st.Categories, model.CategoryFood)]
	assert.InDelta(t, 120, food.Spent, 1e-9)
}

func TestStartSession_SavesAndJournalsWithUser(t *testing.T) {
	a := testApp(t)
	ctx := context.Background()

	session, err := a.client.Login(ctx, service.LoginRequest{Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, a.startSession(ctx, session))

	saved, err := a.storage.LoadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, testutil.UserID, saved.UserID)

	require.NoError(t, a.engine.AddTransaction(ctx, model.CategoryFood, 12.5, model.KindExpense, "lunch"))

	entries, err := a.storage.RecentNotifications(ctx, 10)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, service.LevelSuccess, entries[0].Level)
	assert.Equal(t, testutil.UserID, entries[0].UserID)
}

func TestEndSession_ForgetsSessionAndResetsStore(t *testing.T) {
	a := testApp(t)
	ctx := context.Background()
	testutil.SeedSession(t, a.storage)

	_, err := a.signIn(ctx)
	require.NoError(t, err)
	require.NotZero(t, a.engine.Store().Snapshot().TotalBudget())

	require.NoError(t, a.endSession(ctx))

	_, err = a.storage.LoadSession(ctx)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Nil(t, a.engine.Session())
	assert.Equal(t, budget.DefaultState(), a.engine.Store().Snapshot())

	_, err = a.signIn(ctx)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}
