// Package client talks to the StockGlass backend on behalf of the watch
// session: authentication, the remote portfolio and email notifications.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultTimeout bounds every request when the caller does not supply an
// http.Client.
const DefaultTimeout = 10 * time.Second

// User is the account returned by the auth endpoints.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the result of sign-up or sign-in.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Lot is a purchased lot as the backend reports it.
type Lot struct {
	ID               string           `json:"id"`
	UserID           string           `json:"userId"`
	StockID          int              `json:"stockId"`
	Symbol           string           `json:"symbol"`
	Name             string           `json:"name"`
	PurchasePrice    decimal.Decimal  `json:"purchasePrice"`
	Quantity         decimal.Decimal  `json:"quantity"`
	CurrentPrice     decimal.Decimal  `json:"currentPrice"`
	TargetPrice      *decimal.Decimal `json:"targetPrice"`
	PurchaseDate     time.Time        `json:"purchaseDate"`
	NotificationSent bool             `json:"notificationSent"`
}

// NewLot is the body of an add request.
type NewLot struct {
	StockID       int              `json:"stockId"`
	Symbol        string           `json:"symbol"`
	Name          string           `json:"name"`
	PurchasePrice decimal.Decimal  `json:"purchasePrice"`
	Quantity      decimal.Decimal  `json:"quantity"`
	CurrentPrice  decimal.Decimal  `json:"currentPrice"`
	TargetPrice   *decimal.Decimal `json:"targetPrice,omitempty"`
	PurchaseDate  *time.Time       `json:"purchaseDate,omitempty"`
}

// LotPatch is a partial update. Nil fields are left unchanged; ClearTarget
// sends an explicit null target.
type LotPatch struct {
	Quantity      *decimal.Decimal
	PurchasePrice *decimal.Decimal
	TargetPrice   *decimal.Decimal
	ClearTarget   bool
}

// MarshalJSON emits only the fields being changed.
func (p LotPatch) MarshalJSON() ([]byte, error) {
	body := map[string]any{}
	if p.Quantity != nil {
		body["quantity"] = p.Quantity
	}
	if p.PurchasePrice != nil {
		body["purchasePrice"] = p.PurchasePrice
	}
	switch {
	case p.ClearTarget:
		body["targetPrice"] = nil
	case p.TargetPrice != nil:
		body["targetPrice"] = p.TargetPrice
	}
	return json.Marshal(body)
}

// Summary is the portfolio roll-up.
type Summary struct {
	Lots          int             `json:"lots"`
	Invested      decimal.Decimal `json:"invested"`
	CurrentValue  decimal.Decimal `json:"currentValue"`
	ProfitLoss    decimal.Decimal `json:"profitLoss"`
	ProfitLossPct decimal.Decimal `json:"profitLossPct"`
}

// Email is a notification request.
type Email struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Client is a StockGlass API client. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a Client for baseURL, which includes the /api prefix. A nil
// httpClient gets one with DefaultTimeout.
func New(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		token:      token,
	}
}

// Token returns the bearer credential in use.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the bearer credential.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// SignUp registers a user and adopts the returned token.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, error) {
	return c.authenticate(ctx, "/signup", "signing up", email, password)
}

// SignIn logs in and adopts the returned token.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return c.authenticate(ctx, "/signin", "signing in", email, password)
}

func (c *Client) authenticate(ctx context.Context, path, op, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var s Session
	if err := c.do(ctx, http.MethodPost, path, op, body, &s); err != nil {
		return nil, err
	}
	c.SetToken(s.Token)
	return &s, nil
}

// CurrentUser returns the user the token belongs to.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/user", "fetching user", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns the caller's lots.
func (c *Client) List(ctx context.Context) ([]Lot, error) {
	var lots []Lot
	if err := c.do(ctx, http.MethodGet, "/portfolio", "listing portfolio", nil, &lots); err != nil {
		return nil, err
	}
	return lots, nil
}

// Add records a purchased lot.
func (c *Client) Add(ctx context.Context, lot NewLot) (*Lot, error) {
	var created Lot
	if err := c.do(ctx, http.MethodPost, "/portfolio", "adding lot", lot, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update applies patch to the lot with id.
func (c *Client) Update(ctx context.Context, id string, patch LotPatch) (*Lot, error) {
	var updated Lot
	if err := c.do(ctx, http.MethodPut, "/portfolio/"+url.PathEscape(id), "updating lot", patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Remove deletes the lot with id.
func (c *Client) Remove(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/portfolio/"+url.PathEscape(id), "removing lot", nil, nil)
}

// Summary returns the portfolio roll-up.
func (c *Client) Summary(ctx context.Context) (*Summary, error) {
	var s Summary
	if err := c.do(ctx, http.MethodGet, "/portfolio/summary", "fetching summary", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SendEmailNotification asks the backend to deliver an email.
func (c *Client) SendEmailNotification(ctx context.Context, email Email) error {
	return c.do(ctx, http.MethodPost, "/notify/email", "sending email notification", email, nil)
}

func (c *Client) do(ctx context.Context, method, path, op string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: %s: marshaling request: %w", ErrValidation, op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: %s: creating request: %w", ErrValidation, op, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrTransient, op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: %w", op, decodeAPIError(resp))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: decoding response: %w", ErrTransient, op, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil {
		apiErr.Code = body.Error.Code
		apiErr.Message = body.Error.Message
	}
	return apiErr
}
