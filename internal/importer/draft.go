// Package importer replays bank statement lines through the budget engine.
package importer

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/Veraticus/finpilot/internal/model"
)

// Draft is a statement line waiting to be recorded. Amount is always
// positive; Kind carries the direction.
type Draft struct {
	Date        time.Time
	Description string
	Kind        model.TransactionKind
	ExternalID  string
	Amount      float64
}

// Source yields drafts for an import run.
type Source interface {
	Drafts(ctx context.Context) ([]Draft, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]Draft, error)

// Drafts implements Source.
func (f SourceFunc) Drafts(ctx context.Context) ([]Draft, error) { return f(ctx) }

// FromSignedAmount builds a draft from a signed statement amount. With
// debitPositive set, positive amounts are money leaving the account (the
// Plaid convention); otherwise negative amounts are (the OFX convention).
// A zero amount yields ok=false.
func FromSignedAmount(date time.Time, description string, amount float64, debitPositive bool) (Draft, bool) {
	if amount == 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Draft{}, false
	}

	expense := amount < 0
	if debitPositive {
		expense = amount > 0
	}

	d := Draft{Date: date, Description: description, Amount: math.Abs(amount), Kind: model.KindIncome}
	if expense {
		d.Kind = model.KindExpense
	}
	return d, true
}

// Label is the description recorded for a draft. The engine stamps
// transactions with the time they were sent, so the statement date is kept
// in the description.
func (d Draft) Label() string {
	desc := d.Description
	if desc == "" {
		desc = model.DefaultDescription
	}
	if d.Date.IsZero() {
		return desc
	}
	return fmt.Sprintf("%s %s", d.Date.Format("2006-01-02"), desc)
}
