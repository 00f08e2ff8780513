// Package api provides an HTTP client for the remote budget service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/finpilot/internal/common"
	"github.com/Veraticus/finpilot/internal/model"
	"github.com/Veraticus/finpilot/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8000"

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 4 << 20

// Config holds budget service client configuration.
type Config struct {
	BaseURL string
	// Timeout of zero leaves the transport default in place.
	Timeout time.Duration
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: budget service URL is required", common.ErrInvalidConfig)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: invalid budget service URL %q", common.ErrInvalidConfig, c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout cannot be negative", common.ErrInvalidConfig)
	}
	return nil
}

// Client implements service.BudgetAPI over HTTP+JSON.
type Client struct {
	httpClient *http.Client
	validate   *validator.Validate
	logger     *slog.Logger
	baseURL    string
}

// NewClient creates a budget service client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		validate:   newValidator(),
		logger:     common.ComponentLogger("api"),
	}, nil
}

// errorBody is the service's error envelope.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// do sends a request and decodes a JSON response into out. Any transport
// failure, non-2xx status or undecodable body becomes a RemoteError.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("API call failed", "op", op, "path", path, "request_id", requestID, "error", err)
		return common.NewRemoteError(op, 0, "", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return common.NewRemoteError(op, resp.StatusCode, "", err)
	}

	c.logger.Debug("API call completed",
		"op", op,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := parseDetail(data)
		c.logger.Error("API call failed", "op", op, "path", path, "status", resp.StatusCode, "detail", detail)
		return common.NewRemoteError(op, resp.StatusCode, detail, nil)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return common.NewRemoteError(op, resp.StatusCode, "", fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

// parseDetail extracts the service's detail message. FastAPI-style
// validation failures send a list of objects with a msg field.
func parseDetail(data []byte) string {
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(body.Detail, &text); err == nil {
		return text
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}

func (c *Client) check(op string, req any) error {
	if err := c.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s: %s", ErrInvalidRequest, op, describe(verrs[0]))
		}
		return fmt.Errorf("%w: %s: %v", ErrInvalidRequest, op, err)
	}
	return nil
}

func userQuery(userID string) url.Values {
	q := url.Values{}
	q.Set("user_id", userID)
	return q
}

// authResponse is returned by both register and login.
type authResponse struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (r authResponse) session() *model.Session {
	return &model.Session{
		UserID:    r.UserID,
		Email:     r.Email,
		Name:      r.Name,
		CreatedAt: time.Now(),
	}
}

// Register creates an account and returns its session.
func (c *Client) Register(ctx context.Context, req service.RegisterRequest) (*model.Session, error) {
	if err := c.check("register", req); err != nil {
		return nil, err
	}
	var resp authResponse
	if err := c.do(ctx, "register", http.MethodPost, "/auth/register", nil, req, &resp); err != nil {
		return nil, err
	}
	return resp.session(), nil
}

// Login signs in and returns the session.
func (c *Client) Login(ctx context.Context, req service.LoginRequest) (*model.Session, error) {
	if err := c.check("login", req); err != nil {
		return nil, err
	}
	var resp authResponse
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return resp.session(), nil
}

// PredictAllocation sends a salary to the budget predictor.
func (c *Client) PredictAllocation(ctx context.Context, req service.AllocationRequest) (*service.AllocationResponse, error) {
	if err := c.check("salary", req); err != nil {
		return nil, err
	}
	var resp service.AllocationResponse
	if err := c.do(ctx, "predict budget", http.MethodPost, "/salary", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddTransaction records a transaction.
func (c *Client) AddTransaction(ctx context.Context, req service.TransactionRequest) (*service.TransactionReceipt, error) {
	if err := c.check("transaction", req); err != nil {
		return nil, err
	}
	var resp service.TransactionReceipt
	if err := c.do(ctx, "add transaction", http.MethodPost, "/transactions", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TransactionHistory lists all transactions of a user.
func (c *Client) TransactionHistory(ctx context.Context, userID string) ([]service.TransactionRecord, error) {
	var resp []service.TransactionRecord
	if err := c.do(ctx, "load history", http.MethodGet, "/dashboard/history", userQuery(userID), nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CategoryTransactions lists a user's transactions for one service code.
func (c *Client) CategoryTransactions(ctx context.Context, userID, code string) ([]service.TransactionRecord, error) {
	path := "/dashboard/category/" + url.PathEscape(code)
	var resp []service.TransactionRecord
	if err := c.do(ctx, "load category", http.MethodGet, path, userQuery(userID), nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// DashboardSummary returns the month's category breakdown.
func (c *Client) DashboardSummary(ctx context.Context, userID, month string) (*service.DashboardSummary, error) {
	q := userQuery(userID)
	q.Set("month", month)
	var resp service.DashboardSummary
	if err := c.do(ctx, "load dashboard", http.MethodGet, "/dashboard/summary", q, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateGoal asks the planner to create a goal.
func (c *Client) CreateGoal(ctx context.Context, req service.GoalRequest) (*service.GoalPlan, error) {
	if err := c.check("goal", req); err != nil {
		return nil, err
	}
	var resp service.GoalPlan
	if err := c.do(ctx, "create goal", http.MethodPost, "/savings/goal", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Goals lists a user's goals.
func (c *Client) Goals(ctx context.Context, userID string) ([]service.GoalRecord, error) {
	var resp []service.GoalRecord
	if err := c.do(ctx, "load goals", http.MethodGet, "/savings/goals", userQuery(userID), nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// UpdateGoalProgress contributes amount to a goal.
func (c *Client) UpdateGoalProgress(ctx context.Context, goalID string, amount float64) (*service.GoalProgress, error) {
	body := struct {
		Amount float64 `json:"amount"`
	}{Amount: amount}
	var resp service.GoalProgress
	if err := c.do(ctx, "update goal", http.MethodPut, "/savings/goal/"+url.PathEscape(goalID), nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteGoal removes a goal.
func (c *Client) DeleteGoal(ctx context.Context, goalID string) (*service.DeleteResult, error) {
	var resp service.DeleteResult
	if err := c.do(ctx, "delete goal", http.MethodDelete, "/savings/goal/"+url.PathEscape(goalID), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MonthlyReview fetches the month-in-review summary.
func (c *Client) MonthlyReview(ctx context.Context, userID string, year, month int) (*model.MonthlyReview, error) {
	q := userQuery(userID)
	q.Set("year", strconv.Itoa(year))
	q.Set("month", strconv.Itoa(month))
	var resp model.MonthlyReview
	if err := c.do(ctx, "load review", http.MethodGet, "/wrapped/summary", q, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

var _ service.BudgetAPI = (*Client)(nil)
