package plaid

import (
	"context"
	"time"

	"github.com/Veraticus/finpilot/internal/importer"
)

// TransactionFetcher fetches bank-feed lines as import drafts.
type TransactionFetcher interface {
	GetTransactions(ctx context.Context, startDate, endDate time.Time) ([]importer.Draft, error)
	GetAccounts(ctx context.Context) ([]string, error)
}

var _ TransactionFetcher = (*Client)(nil)
