// Package rest implements the bills ports against the backend REST API.
package rest

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
	"strings"
	"time"

	"bollette/internal/bills"
	"bollette/internal/core"
)

// Client talks to the bills backend. Every call carries the bearer
// credential; request timeouts are owned here, not by callers.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Ensure interface conformance
var (
	_ bills.Lister  = (*Client)(nil)
	_ bills.Creator = (*Client)(nil)
	_ bills.Updater = (*Client)(nil)
	_ bills.Deleter = (*Client)(nil)
)

// NewClient creates a REST client for the given base URL and bearer token.
func NewClient(baseURL, token string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("missing bills API base URL")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid bills API base URL: %w", err)
	}
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("missing bills API token")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		token:      token,
	}, nil
}

// billPayload is the wire shape of a bill. Amounts travel as decimal
// strings to keep cents exact.
type billPayload struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Amount    string    `json:"amount"`
	DueDate   string    `json:"dueDate"`
	Status    string    `json:"status"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

func toPayload(b core.Bill) billPayload {
	return billPayload{
		ID:       b.ID,
		Name:     b.Name,
		Amount:   b.Amount.Decimal(),
		DueDate:  b.DueDate.String(),
		Status:   string(b.Status),
		Category: string(b.Category),
	}
}

func fromPayload(p billPayload) (core.Bill, error) {
	cents, err := core.ParseDecimalToCents(p.Amount)
	if err != nil {
		return core.Bill{}, fmt.Errorf("amount %q: %w", p.Amount, err)
	}
	due, err := core.ParseDate(p.DueDate)
	if err != nil {
		return core.Bill{}, fmt.Errorf("due date %q: %w", p.DueDate, err)
	}
	status, err := core.ParseStatus(p.Status)
	if err != nil {
		return core.Bill{}, fmt.Errorf("status %q: %w", p.Status, err)
	}
	return core.Bill{
		ID:        p.ID,
		Name:      p.Name,
		Amount:    core.Money{Cents: cents},
		DueDate:   due,
		Status:    status,
		Category:  core.ParseCategory(p.Category),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}, nil
}

// ListBills implements bills.Lister.
func (c *Client) ListBills(ctx context.Context) ([]core.Bill, error) {
	var payloads []billPayload
	if err := c.do(ctx, http.MethodGet, "/bills", nil, &payloads); err != nil {
		return nil, err
	}
	out := make([]core.Bill, 0, len(payloads))
	for _, p := range payloads {
		b, err := fromPayload(p)
		if err != nil {
			return nil, fmt.Errorf("decode bill %q: %w", p.ID, err)
		}
		out = append(out, b)
	}
	return out, nil
}

// CreateBill implements bills.Creator.
func (c *Client) CreateBill(ctx context.Context, b core.Bill) (core.Bill, error) {
	var created billPayload
	if err := c.do(ctx, http.MethodPost, "/bills", toPayload(b), &created); err != nil {
		return core.Bill{}, err
	}
	out, err := fromPayload(created)
	if err != nil {
		return core.Bill{}, fmt.Errorf("decode created bill: %w", err)
	}
	slog.InfoContext(ctx, "Bill created",
		"bill_id", out.ID,
		"bill_name", out.Name,
		"amount_cents", out.Amount.Cents)
	return out, nil
}

// UpdateBill implements bills.Updater.
func (c *Client) UpdateBill(ctx context.Context, b core.Bill) (core.Bill, error) {
	if strings.TrimSpace(b.ID) == "" {
		return core.Bill{}, bills.ErrNotFound
	}
	var updated billPayload
	if err := c.do(ctx, http.MethodPut, "/bills/"+url.PathEscape(b.ID), toPayload(b), &updated); err != nil {
		return core.Bill{}, err
	}
	out, err := fromPayload(updated)
	if err != nil {
		return core.Bill{}, fmt.Errorf("decode updated bill: %w", err)
	}
	return out, nil
}

// DeleteBill implements bills.Deleter.
func (c *Client) DeleteBill(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return bills.ErrNotFound
	}
	return c.do(ctx, http.MethodDelete, "/bills/"+url.PathEscape(id), nil, nil)
}

// do performs one authenticated request and decodes the response into out
// when out is non-nil. Status codes map onto the shared error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s %s: %w", method, path, bills.ErrUnauthorized)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, bills.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("%s %s: unexpected status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
