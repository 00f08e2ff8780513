// Package plaid fetches bank-feed transactions from Plaid as import drafts.
package plaid

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/finpilot/internal/common"
	"github.com/Veraticus/finpilot/internal/importer"
	"github.com/plaid/plaid-go/v20/plaid"
)

const (
	dateLayout = "2006-01-02"
	// Plaid's max page size.
	pageSize = int32(500)
)

var validEnvironments = map[string]bool{
	"sandbox":    true,
	"production": true,
}

// Config holds Plaid API configuration.
type Config struct {
	ClientID    string
	Secret      string
	Environment string // sandbox or production
	AccessToken string
}

// Validate ensures all required fields are present.
func (c *Config) Validate() error {
	if err := c.validateCredentials(); err != nil {
		return err
	}
	if c.AccessToken == "" {
		return errors.New("plaid access token is required")
	}
	return nil
}

func (c *Config) validateCredentials() error {
	if c.ClientID == "" {
		return errors.New("plaid client ID is required")
	}
	if c.Secret == "" {
		return errors.New("plaid secret is required")
	}
	if c.Environment == "" {
		return errors.New("plaid environment is required")
	}
	if !validEnvironments[c.Environment] {
		return errors.New("invalid Plaid environment: must be sandbox or production")
	}
	return nil
}

// Client implements TransactionFetcher.
type Client struct {
	client      *plaid.APIClient
	logger      *slog.Logger
	retryOpts   common.RetryOptions
	accessToken string
	environment string
}

// NewClient creates a Plaid client. The access token is checked when a
// fetch is made, not here.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.validateCredentials(); err != nil {
		return nil, err
	}

	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", cfg.ClientID)
	configuration.AddDefaultHeader("PLAID-SECRET", cfg.Secret)

	switch cfg.Environment {
	case "sandbox":
		configuration.UseEnvironment(plaid.Sandbox)
	case "production":
		configuration.UseEnvironment(plaid.Production)
	}

	return &Client{
		client:      plaid.NewAPIClient(configuration),
		accessToken: cfg.AccessToken,
		environment: cfg.Environment,
		logger:      slog.Default().With("component", "plaid"),
		retryOpts: common.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 1 * time.Second,
			MaxDelay:     30 * time.Second,
			Multiplier:   2.0,
		},
	}, nil
}

// GetTransactions fetches transactions posted between startDate and
// endDate and converts them to drafts. Zero-amount lines are dropped.
func (c *Client) GetTransactions(ctx context.Context, startDate, endDate time.Time) ([]importer.Draft, error) {
	if ctx == nil {
		return nil, errors.New("context cannot be nil")
	}
	if c.accessToken == "" {
		return nil, errors.New("plaid access token is required")
	}
	if startDate.After(endDate) {
		return nil, errors.New("start date must be before end date")
	}

	c.logger.Info("Fetching transactions from Plaid",
		"start_date", startDate.Format(dateLayout),
		"end_date", endDate.Format(dateLayout))

	var all []plaid.Transaction
	offset := int32(0)

	for {
		var page []plaid.Transaction

		retryErr := common.WithRetry(ctx, func() error {
			request := plaid.NewTransactionsGetRequest(
				c.accessToken,
				startDate.Format(dateLayout),
				endDate.Format(dateLayout),
			)
			request.SetOptions(plaid.TransactionsGetRequestOptions{
				Count:  plaid.PtrInt32(pageSize),
				Offset: plaid.PtrInt32(offset),
			})

			resp, _, err := c.client.PlaidApi.TransactionsGet(ctx).TransactionsGetRequest(*request).Execute()
			if err != nil {
				return c.classify("fetch transactions", err)
			}

			page = resp.GetTransactions()
			c.logger.Debug("Fetched transaction batch",
				"count", len(page),
				"offset", offset,
				"total", resp.GetTotalTransactions())
			return nil
		}, c.retryOpts)
		if retryErr != nil {
			return nil, retryErr
		}

		all = append(all, page...)
		if len(page) < int(pageSize) {
			break
		}
		offset += pageSize
	}

	c.logger.Info("Fetched all transactions", "count", len(all))

	drafts := make([]importer.Draft, 0, len(all))
	for _, pt := range all {
		merchant := pt.GetMerchantName()
		if merchant == "" {
			merchant = pt.GetName()
		}
		d, ok := c.toDraft(pt.GetTransactionId(), pt.GetDate(), merchant, pt.GetAmount())
		if !ok {
			continue
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

// GetAccounts fetches account IDs from Plaid.
func (c *Client) GetAccounts(ctx context.Context) ([]string, error) {
	if ctx == nil {
		return nil, errors.New("context cannot be nil")
	}

	var accounts []plaid.AccountBase
	retryErr := common.WithRetry(ctx, func() error {
		request := plaid.NewAccountsGetRequest(c.accessToken)
		resp, _, err := c.client.PlaidApi.AccountsGet(ctx).AccountsGetRequest(*request).Execute()
		if err != nil {
			return c.classify("fetch accounts", err)
		}
		accounts = resp.GetAccounts()
		return nil
	}, c.retryOpts)
	if retryErr != nil {
		return nil, retryErr
	}

	ids := make([]string, 0, len(accounts))
	for _, account := range accounts {
		ids = append(ids, account.GetAccountId())
	}
	return ids, nil
}

// Source adapts the client to an importer source over a date range.
func (c *Client) Source(startDate, endDate time.Time) importer.Source {
	return importer.SourceFunc(func(ctx context.Context) ([]importer.Draft, error) {
		return c.GetTransactions(ctx, startDate, endDate)
	})
}

// classify turns a Plaid API failure into an error, marking rate limits
// as retryable.
func (c *Client) classify(op string, err error) error {
	if plaidError := extractPlaidError(err); plaidError != nil {
		if plaidError.ErrorCode == "RATE_LIMIT_EXCEEDED" {
			c.logger.Warn("Rate limit hit, will retry", "error", plaidError.ErrorMessage)
			return &common.RetryableError{Err: fmt.Errorf("%w: %s", common.ErrRateLimit, plaidError.ErrorMessage), Retryable: true}
		}
		return fmt.Errorf("plaid API error: %s - %s", plaidError.ErrorCode, plaidError.ErrorMessage)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// toDraft converts one Plaid line. Plaid reports money leaving the account
// as a positive amount.
func (c *Client) toDraft(id, date, merchant string, amount float64) (importer.Draft, bool) {
	posted, err := time.Parse(dateLayout, date)
	if err != nil {
		c.logger.Error("Failed to parse transaction date", "date", date, "error", err)
		posted = time.Now()
	}

	d, ok := importer.FromSignedAmount(posted, cleanMerchantName(merchant), amount, true)
	if !ok {
		return importer.Draft{}, false
	}
	d.ExternalID = id
	return d, true
}

var merchantSuffixes = []string{" Llc", " Inc", " Corp", " Corporation", " Company", " Co", " Ltd", " Limited"}

// cleanMerchantName title-cases a merchant name, drops a trailing
// transaction number and strips company suffixes.
func cleanMerchantName(name string) string {
	words := strings.Fields(strings.ToLower(name))
	for i, word := range words {
		runes := []rune(word)
		for j := range runes {
			if j == 0 || !isLetter(runes[j-1]) {
				runes[j] = toUpper(runes[j])
			}
		}
		words[i] = string(runes)
	}

	// Long digit runs at the end are processor reference numbers.
	if n := len(words); n > 1 && len(words[n-1]) > 5 && isAllDigits(words[n-1]) {
		words = words[:n-1]
	}
	name = strings.Join(words, " ")

	for trimmed := true; trimmed; {
		trimmed = false
		for _, suffix := range merchantSuffixes {
			if strings.HasSuffix(name, suffix) {
				name = strings.TrimSuffix(name, suffix)
				trimmed = true
			}
		}
	}
	return strings.TrimSpace(name)
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 32
	}
	return r
}

// extractPlaidError attempts to extract a Plaid error from a generic error.
func extractPlaidError(err error) *plaid.PlaidError {
	plaidErr, convErr := plaid.ToPlaidError(err)
	if convErr != nil {
		return nil
	}
	return &plaidErr
}
