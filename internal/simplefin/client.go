// Package simplefin fetches bank transactions from a SimpleFIN bridge as
// import drafts.
package simplefin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/Veraticus/finpilot/internal/common"
	"github.com/Veraticus/finpilot/internal/importer"
	"github.com/shopspring/decimal"
)

const defaultTimeout = 30 * time.Second

// Client reads accounts from a claimed SimpleFIN access URL.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	accessURL  string
}

type accountSet struct {
	Errors   []string  `json:"errors"`
	Accounts []account `json:"accounts"`
}

type account struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Currency     string        `json:"currency"`
	Balance      string        `json:"balance"`
	Transactions []transaction `json:"transactions"`
}

type transaction struct {
	ID          string `json:"id"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Payee       string `json:"payee"`
	Posted      int64  `json:"posted"`
	Pending     bool   `json:"pending"`
}

// NewClient creates a client for accessURL. The URL carries its own basic
// auth credentials.
func NewClient(accessURL string, timeout time.Duration) (*Client, error) {
	if err := validateURL(accessURL); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		accessURL:  strings.TrimRight(accessURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     common.ComponentLogger("simplefin"),
	}, nil
}

func validateURL(raw string) error {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return fmt.Errorf("%w: SimpleFIN URL must be http(s)", common.ErrInvalidConfig)
	}
	if _, err := url.Parse(raw); err != nil {
		return fmt.Errorf("%w: SimpleFIN URL: %w", common.ErrInvalidConfig, err)
	}
	return nil
}

// GetTransactions returns posted transactions between startDate and endDate
// across all accounts. Negative amounts are expenses.
func (c *Client) GetTransactions(ctx context.Context, startDate, endDate time.Time) ([]importer.Draft, error) {
	if startDate.After(endDate) {
		return nil, fmt.Errorf("%w: start date after end date", common.ErrInvalidInput)
	}

	q := url.Values{}
	q.Set("start-date", strconv.FormatInt(startDate.Unix(), 10))
	// end-date is exclusive
	q.Set("end-date", strconv.FormatInt(endDate.AddDate(0, 0, 1).Unix(), 10))

	c.logger.Debug("Requesting SimpleFIN transactions",
		"start_date", startDate.Format("2006-01-02"),
		"end_date", endDate.Format("2006-01-02"))

	set, err := c.accounts(ctx, q)
	if err != nil {
		return nil, err
	}

	var drafts []importer.Draft
	for _, acct := range set.Accounts {
		for _, tx := range acct.Transactions {
			if tx.Pending {
				continue
			}

			date := time.Unix(tx.Posted, 0)
			if date.Before(startDate) || date.After(endDate) {
				continue
			}

			amount, err := parseAmount(tx.Amount)
			if err != nil {
				return nil, fmt.Errorf("failed to parse amount %q: %w", tx.Amount, err)
			}

			d, ok := importer.FromSignedAmount(date, describe(tx), amount, false)
			if !ok {
				continue
			}
			d.ExternalID = acct.ID + "_" + tx.ID
			drafts = append(drafts, d)
		}
	}

	c.logger.Info("Fetched SimpleFIN transactions", "accounts", len(set.Accounts), "drafts", len(drafts))
	return drafts, nil
}

// GetAccounts returns the account ids behind the access URL.
func (c *Client) GetAccounts(ctx context.Context) ([]string, error) {
	q := url.Values{}
	q.Set("balances-only", "1")

	set, err := c.accounts(ctx, q)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(set.Accounts))
	for _, acct := range set.Accounts {
		ids = append(ids, acct.ID)
	}
	return ids, nil
}

// Source returns an importer source over the given date range.
func (c *Client) Source(startDate, endDate time.Time) importer.Source {
	return importer.SourceFunc(func(ctx context.Context) ([]importer.Draft, error) {
		return c.GetTransactions(ctx, startDate, endDate)
	})
}

func (c *Client) accounts(ctx context.Context, q url.Values) (*accountSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.accessURL+"/accounts?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, common.NewRemoteError("fetch SimpleFIN accounts", 0, "", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, common.NewRemoteError("fetch SimpleFIN accounts", resp.StatusCode,
			fmt.Sprintf("SimpleFIN API error: %d - %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	var set accountSet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	for _, msg := range set.Errors {
		c.logger.Warn("SimpleFIN reported a problem", "message", msg)
	}
	return &set, nil
}

// parseAmount reads SimpleFIN's decimal amount strings, e.g. "-33.29".
func parseAmount(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return d.Round(2).InexactFloat64(), nil
}

func describe(tx transaction) string {
	if payee := normalizeMerchant(tx.Payee); payee != "" {
		return payee
	}
	return strings.TrimSpace(tx.Description)
}

var merchantSuffixes = []string{" LLC", " INC", " CORP", " CO"}

func normalizeMerchant(raw string) string {
	merchant := strings.TrimSpace(raw)
	upper := strings.ToUpper(merchant)
	for _, suffix := range merchantSuffixes {
		if strings.HasSuffix(upper, suffix) {
			merchant = strings.TrimSpace(merchant[:len(merchant)-len(suffix)])
			break
		}
	}
	return titleCase(merchant)
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
