package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/finpilot/internal/classification"
	"github.com/Veraticus/finpilot/internal/common"
	"github.com/Veraticus/finpilot/internal/importer"
	"github.com/Veraticus/finpilot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) Success(m string) { r.messages = append(r.messages, "ok:"+m) }
func (r *recordingNotifier) Error(m string)   { r.messages = append(r.messages, "err:"+m) }

func TestFanout(t *testing.T) {
	a, b := &recordingNotifier{}, &recordingNotifier{}
	f := fanout{a, b}

	f.Success("saved")
	f.Error("failed")

	assert.Equal(t, []string{"ok:saved", "err:failed"}, a.messages)
	assert.Equal(t, a.messages, b.messages)
}

func TestReported(t *testing.T) {
	assert.NoError(t, reported(nil))

	base := common.NewUserError("Failed to add transaction", errors.New("boom"))
	err := reported(base)

	var r *reportedError
	require.ErrorAs(t, err, &r)
	assert.Equal(t, "Failed to add transaction", common.UserMessage(err))
}

func TestParseDeadline(t *testing.T) {
	d, err := parseDeadline("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = parseDeadline(" 2026-12-31 ")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.December, d.Month())
	assert.Equal(t, 31, d.Day())
	assert.Equal(t, 23, d.Hour())

	_, err = parseDeadline("12/31/2026")
	assert.Error(t, err)
}

func TestCategoryID(t *testing.T) {
	id, err := categoryID(" food ")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryFood, id)

	_, err = categoryID("Yachts")
	require.Error(t, err)
	assert.Contains(t, common.UserMessage(err), "Choose one of: Housing, Food")
	assert.ErrorIs(t, err, common.ErrUnknownCategory)
}

func TestCollectDrafts(t *testing.T) {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	first := importer.SourceFunc(func(context.Context) ([]importer.Draft, error) {
		return []importer.Draft{
			{ExternalID: "a", Amount: 10, Kind: model.KindExpense, Date: day},
			{ExternalID: "b", Amount: 20, Kind: model.KindExpense, Date: day},
		}, nil
	})
	second := importer.SourceFunc(func(context.Context) ([]importer.Draft, error) {
		return []importer.Draft{
			{ExternalID: "b", Amount: 20, Kind: model.KindExpense, Date: day},
			{Amount: 5, Kind: model.KindIncome, Date: day},
		}, nil
	})
	broken := importer.SourceFunc(func(context.Context) ([]importer.Draft, error) {
		return nil, errors.New("unreadable")
	})

	drafts, err := collectDrafts(context.Background(), []importer.Source{first, second, broken})
	require.NoError(t, err)
	require.Len(t, drafts, 3)
	assert.Equal(t, "a", drafts[0].ExternalID)
	assert.Equal(t, "b", drafts[1].ExternalID)
	assert.Empty(t, drafts[2].ExternalID)

	_, err = collectDrafts(context.Background(), []importer.Source{broken})
	assert.EqualError(t, err, "unreadable")
}

func TestExpandFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"jan.qfx", "feb.qfx", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0600))
	}

	files, err := expandFiles([]string{filepath.Join(dir, "*.qfx")})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{filepath.Join(dir, "jan.qfx"), filepath.Join(dir, "feb.qfx")}, files)

	_, err = expandFiles([]string{filepath.Join(dir, "*.ofx")})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestPrintDrafts(t *testing.T) {
	var buf bytes.Buffer
	drafts := []importer.Draft{
		{Date: time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC), Kind: model.KindExpense, Amount: 1234.5, Description: "Whole Foods"},
		{Date: time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC), Kind: model.KindExpense, Amount: 12, Description: "Corner kiosk"},
	}

	printDrafts(&buf, drafts, nil, model.CategoryUtilities)
	out := buf.String()
	assert.Contains(t, out, "2026-09-03")
	assert.Contains(t, out, "expense")
	assert.Contains(t, out, "$1,234.50")
	assert.Contains(t, out, "Whole Foods")
	assert.Contains(t, out, "Utilities"+strings.Repeat(" ", 5)+"Whole Foods")

	c, err := classification.New(classification.DefaultRules())
	require.NoError(t, err)

	buf.Reset()
	printDrafts(&buf, drafts, c, model.CategoryUtilities)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Food"+strings.Repeat(" ", 10)+"Whole Foods")
	assert.Contains(t, lines[1], "Utilities"+strings.Repeat(" ", 5)+"Corner kiosk")
}

func TestRootCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"login"}, {"register"}, {"logout"}, {"whoami"},
		{"dashboard"}, {"predict"}, {"tx", "add"}, {"tx", "category"},
		{"goals", "add"}, {"goals", "progress"}, {"goals", "delete"},
		{"review"}, {"import", "ofx"}, {"import", "plaid"}, {"import", "simplefin"},
		{"export", "sheets"}, {"notifications"}, {"version"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestParseSince(t *testing.T) {
	now := time.Date(2026, 9, 17, 15, 4, 0, 0, time.Local)

	since, err := parseSince("", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local), since)

	since, err = parseSince("ALL", now)
	require.NoError(t, err)
	assert.True(t, since.IsZero())

	since, err = parseSince(" 2026-08-15 ", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.Local), since)

	_, err = parseSince("last week", now)
	require.Error(t, err)
	assert.Contains(t, common.UserMessage(err), "--since")
}

func TestDraftsSince(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)
	drafts := []importer.Draft{
		{ExternalID: "aug", Date: start.AddDate(0, 0, -1)},
		{ExternalID: "first", Date: start},
		{ExternalID: "mid", Date: start.AddDate(0, 0, 14)},
	}

	assert.Len(t, draftsSince(append([]importer.Draft(nil), drafts...), time.Time{}), 3)

	kept := draftsSince(append([]importer.Draft(nil), drafts...), start)
	require.Len(t, kept, 2)
	assert.Equal(t, "first", kept[0].ExternalID)
	assert.Equal(t, "mid", kept[1].ExternalID)
}
