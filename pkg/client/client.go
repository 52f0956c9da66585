// Package client is the Go API client used by the admin console and public
// form tooling. The bearer token lives only in process memory: it is set by
// Login, attached to every admin request, and wiped by Logout.
package client

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/eagd-org/donation-server/internal/domain"
)

// APIError is a non-2xx response from the donation API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Config tunes the client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Locale  string
}

// Client talks to the donation API. Safe for concurrent use.
type Client struct {
	http *resty.Client

	mu    sync.RWMutex
	token string
}

// New builds a client against the given base URL.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	http := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")
	if cfg.Locale != "" {
		http.SetHeader("X-Locale", cfg.Locale)
	}

	return &Client{http: http}
}

// Token returns the current in-memory bearer token, empty when logged out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

// Logout clears all session state. Nothing is persisted anywhere, so this is
// the whole teardown.
func (c *Client) Logout() {
	c.setToken("")
}

type errorBody struct {
	Error string `json:"error"`
}

func apiError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	msg := strings.TrimSpace(resp.String())
	if body, ok := resp.Error().(*errorBody); ok && body.Error != "" {
		msg = body.Error
	}
	return &APIError{Status: resp.StatusCode(), Message: msg}
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx).SetError(&errorBody{})
	if token := c.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// AdminInfo is the identity block returned by login and verify.
type AdminInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type loginResponse struct {
	Token string    `json:"token"`
	Admin AdminInfo `json:"admin"`
}

// Login authenticates and stores the issued token in memory.
func (c *Client) Login(ctx context.Context, username, password string) (*AdminInfo, error) {
	var out loginResponse
	resp, err := c.request(ctx).
		SetBody(map[string]string{"username": username, "password": password}).
		SetResult(&out).
		Post("/api/admin/login")
	if err != nil {
		return nil, fmt.Errorf("login request: %w", err)
	}
	if err := apiError(resp); err != nil {
		return nil, err
	}

	c.setToken(out.Token)
	return &out.Admin, nil
}

// Verify checks the held token against the server.
func (c *Client) Verify(ctx context.Context) (*AdminInfo, error) {
	var out struct {
		Admin AdminInfo `json:"admin"`
	}
	resp, err := c.request(ctx).SetResult(&out).Get("/api/admin/verify")
	if err != nil {
		return nil, fmt.Errorf("verify request: %w", err)
	}
	if err := apiError(resp); err != nil {
		return nil, err
	}
	return &out.Admin, nil
}

// Setup creates the first admin account.
func (c *Client) Setup(ctx context.Context, username, password, email string) (*AdminInfo, error) {
	var out struct {
		Admin AdminInfo `json:"admin"`
	}
	resp, err := c.request(ctx).
		SetBody(map[string]string{"username": username, "password": password, "email": email}).
		SetResult(&out).
		Post("/api/admin/setup")
	if err != nil {
		return nil, fmt.Errorf("setup request: %w", err)
	}
	if err := apiError(resp); err != nil {
		return nil, err
	}
	return &out.Admin, nil
}

// SubmitDonation posts a public donation pledge. The submission is validated
// locally first so a form can surface problems without a round trip; the
// server remains authoritative.
func (c *Client) SubmitDonation(ctx context.Context, submission DonationSubmission) (string, error) {
	if err := submission.Validate(); err != nil {
		return "", err
	}

	var out struct {
		DonationID string `json:"donation_id"`
	}
	resp, err := c.request(ctx).
		SetBody(submission).
		SetResult(&out).
		Post("/api/donations")
	if err != nil {
		return "", fmt.Errorf("submit donation request: %w", err)
	}
	if err := apiError(resp); err != nil {
		return "", err
	}
	return out.DonationID, nil
}

// ListOptions narrows a donation listing.
type ListOptions struct {
	Status    string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Pagination mirrors the server's pagination block.
type Pagination struct {
	Current int   `json:"current"`
	Pages   int64 `json:"pages"`
	Total   int64 `json:"total"`
}

// DonationPage is one page of records plus pagination math.
type DonationPage struct {
	Data       []domain.Donation `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// ListDonations fetches a page of donation records.
func (c *Client) ListDonations(ctx context.Context, opts ListOptions) (*DonationPage, error) {
	req := c.request(ctx)
	if opts.Status != "" {
		req.SetQueryParam("status", opts.Status)
	}
	if opts.Page > 0 {
		req.SetQueryParam("page", fmt.Sprint(opts.Page))
	}
	if opts.Limit > 0 {
		req.SetQueryParam("limit", fmt.Sprint(opts.Limit))
	}
	if opts.SortBy != "" {
		req.SetQueryParam("sortBy", opts.SortBy)
	}
	if opts.SortOrder != "" {
		req.SetQueryParam("sortOrder", opts.SortOrder)
	}

	var out DonationPage
	resp, err := req.SetResult(&out).Get("/api/donations")
	if err != nil {
		return nil, fmt.Errorf("list donations request: %w", err)
	}
	if err := apiError(resp); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDonation fetches a single record.
func (c *Client) GetDonation(ctx context.Context, id string) (*domain.Donation, error) {
	var out struct {
		Data domain.Donation `json:"data"`
	}
	resp, err := c.request(ctx).SetResult(&out).Get("/api/donations/" + id)
	if err != nil {
		return nil, fmt.Errorf("get donation request: %w", err)
	}
	if err := apiError(resp); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// DonationUpdate is a partial edit; nil fields are left untouched.
type DonationUpdate struct {
	Status     *string `json:"status,omitempty"`
	AdminNotes *string `json:"admin_notes,omitempty"`
	FullName   *string `json:"full_name,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Email      *string `json:"email,omitempty"`
	City       *string `json:"city,omitempty"`
	Address    *string `json:"address,omitempty"`
	Message    *string `json:"message,omitempty"`
}

// UpdateDonation merges the provided fields into the record.
func (c *Client) UpdateDonation(ctx context.Context, id string, update DonationUpdate) (*domain.Donation, error) {
	var out struct {
		Data domain.Donation `json:"data"`
	}
	resp, err := c.request(ctx).
		SetBody(update).
		SetResult(&out).
		Put("/api/donations/" + id)
	if err != nil {
		return nil, fmt.Errorf("update donation request: %w", err)
	}
	if err := apiError(resp); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// DeleteDonation removes the record.
func (c *Client) DeleteDonation(ctx context.Context, id string) error {
	resp, err := c.request(ctx).Delete("/api/donations/" + id)
	if err != nil {
		return fmt.Errorf("delete donation request: %w", err)
	}
	return apiError(resp)
}

// Stats fetches the status-count summary.
func (c *Client) Stats(ctx context.Context) (*domain.StatsSummary, error) {
	var out struct {
		Data domain.StatsSummary `json:"data"`
	}
	resp, err := c.request(ctx).SetResult(&out).Get("/api/donations/stats/summary")
	if err != nil {
		return nil, fmt.Errorf("stats request: %w", err)
	}
	if err := apiError(resp); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
