// Package api provides the typed HTTP client for the couple-budget service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bio70000-dotcom/couple-budget/internal/ledger"
)

const (
	// DefaultBaseURL is used when no server is configured.
	DefaultBaseURL = "http://localhost:8000"

	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

// ErrNoBudget indicates no budget has been set for the requested month.
var ErrNoBudget = errors.New("api: no budget set for this month")

// ServiceError is a non-2xx response from the service. Message is the
// response body when the service sent one, otherwise the HTTP status line.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// ExpenseFilter narrows a ListExpenses call. Zero values mean no filter.
type ExpenseFilter struct {
	UserID   int64
	Category string
}

// Client is a stateless client for the budget service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL.
// An empty URL falls back to DefaultBaseURL.
func NewClient(baseURL string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListUsers returns all household members.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	body, err := c.get(ctx, "/users", nil)
	if err != nil {
		return nil, err
	}

	var users []User
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("api: parsing users: %w", err)
	}
	return users, nil
}

// GetSummary fetches the server-computed aggregate for the month.
func (c *Client) GetSummary(ctx context.Context, m ledger.Month) (*Summary, error) {
	body, err := c.get(ctx, "/summary", monthQuery(m))
	if err != nil {
		return nil, err
	}

	var s Summary
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("api: parsing summary: %w", err)
	}
	return &s, nil
}

// ListExpenses returns the month's expenses, oldest first.
func (c *Client) ListExpenses(ctx context.Context, m ledger.Month, filter ExpenseFilter) ([]Expense, error) {
	q := monthQuery(m)
	if filter.UserID > 0 {
		q.Set("user_id", strconv.FormatInt(filter.UserID, 10))
	}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}

	body, err := c.get(ctx, "/expenses", q)
	if err != nil {
		return nil, err
	}

	var expenses []Expense
	if err := json.Unmarshal(body, &expenses); err != nil {
		return nil, fmt.Errorf("api: parsing expenses: %w", err)
	}
	return expenses, nil
}

// CreateExpense submits a new expense and returns the created record.
func (c *Client) CreateExpense(ctx context.Context, in ExpenseInput) (*Expense, error) {
	body, err := c.post(ctx, "/expenses", in)
	if err != nil {
		return nil, err
	}

	var e Expense
	if err := json.Unmarshal(body, &e); err != nil {
		return nil, fmt.Errorf("api: parsing created expense: %w", err)
	}
	return &e, nil
}

// UpsertBudget sets or replaces the month's budget. Repeated calls with the
// same amount are idempotent.
func (c *Client) UpsertBudget(ctx context.Context, m ledger.Month, amount int64) error {
	_, err := c.post(ctx, "/budget", Budget{Year: m.Year, Month: m.Month, Amount: amount})
	return err
}

// GetBudget fetches the month's budget. Returns ErrNoBudget when unset.
func (c *Client) GetBudget(ctx context.Context, m ledger.Month) (*Budget, error) {
	body, err := c.get(ctx, "/budget", monthQuery(m))
	if err != nil {
		var se *ServiceError
		if errors.As(err, &se) && se.Status == http.StatusNotFound {
			return nil, ErrNoBudget
		}
		return nil, err
	}

	var b Budget
	if err := json.Unmarshal(body, &b); err != nil {
		return nil, fmt.Errorf("api: parsing budget: %w", err)
	}
	return &b, nil
}

// DeleteExpense removes an expense by id.
func (c *Client) DeleteExpense(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/expenses/%d", id), nil, nil)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

// get performs a GET request and returns the response body.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// post performs a POST request with a JSON body.
func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("api: encoding request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("api: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do executes the request with the per-request timeout and returns the body.
// Non-2xx responses become a *ServiceError built from the body text, or the
// status line when the body is empty.
func (c *Client) do(req *http.Request) ([]byte, error) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()
	req = req.WithContext(ctx)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("api: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = resp.Status
		}
		return nil, &ServiceError{Status: resp.StatusCode, Message: msg}
	}

	return body, nil
}

func monthQuery(m ledger.Month) url.Values {
	q := url.Values{}
	q.Set("year", strconv.Itoa(m.Year))
	q.Set("month", strconv.Itoa(m.Month))
	return q
}
