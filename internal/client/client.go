package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"

	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/catalog"
)

// Row is one projected model row keyed by role name.
type Row = map[string]any

// Config defines client behaviour.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	MinWait    time.Duration
	MaxWait    time.Duration
}

// DefaultConfig returns a client configuration for a local shell server.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "http://localhost:8000",
		Timeout:    10 * time.Second,
		MaxRetries: 3,
		MinWait:    200 * time.Millisecond,
		MaxWait:    2 * time.Second,
	}
}

// APIError is an error answered by the server.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shell api: %d %s", e.Status, e.Message)
}

// Client talks to the shell REST API.
type Client struct {
	resty *resty.Client
}

// New creates a client for cfg.
func New(cfg Config) *Client {
	r := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(cfg.MinWait).
		SetRetryMaxWaitTime(cfg.MaxWait).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "shellctl/1.0").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			switch r.StatusCode() {
			case http.StatusTooManyRequests, http.StatusBadGateway,
				http.StatusServiceUnavailable, http.StatusGatewayTimeout:
				return true
			}
			return false
		})
	return &Client{resty: r}
}

// do executes one request, decoding the success body into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any, params map[string]string) error {
	apiErr := &APIError{}
	req := c.resty.R().
		SetContext(ctx).
		SetError(apiErr).
		SetPathParams(params)
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		apiErr.Status = resp.StatusCode()
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode())
		}
		return apiErr
	}
	return nil
}

func appParam(appID string) map[string]string {
	return map[string]string{"appId": appID}
}

// Launcher lists launcher rows in display order.
func (c *Client) Launcher(ctx context.Context) ([]Row, error) {
	var out struct {
		Items []Row `json:"items"`
	}
	err := c.do(ctx, http.MethodGet, "/launcher", nil, &out, nil)
	return out.Items, err
}

// Pinned lists pinned application ids.
func (c *Client) Pinned(ctx context.Context) ([]string, error) {
	var out struct {
		Pinned []string `json:"pinned"`
	}
	err := c.do(ctx, http.MethodGet, "/launcher/pinned", nil, &out, nil)
	return out.Pinned, err
}

// Pin pins appID at index, or in place when index is negative.
func (c *Client) Pin(ctx context.Context, appID string, index int) error {
	var body any
	if index >= 0 {
		body = map[string]int{"index": index}
	}
	return c.do(ctx, http.MethodPost, "/launcher/{appId}/pin", body, nil, appParam(appID))
}

// Unpin clears the pinned flag of appID.
func (c *Client) Unpin(ctx context.Context, appID string) error {
	return c.do(ctx, http.MethodPost, "/launcher/{appId}/unpin", nil, nil, appParam(appID))
}

// Move moves the launcher row at from to to.
func (c *Client) Move(ctx context.Context, from, to int) error {
	return c.do(ctx, http.MethodPost, "/launcher/move", map[string]int{"from": from, "to": to}, nil, nil)
}

// Remove asks the launcher to drop appID.
func (c *Client) Remove(ctx context.Context, appID string) error {
	return c.do(ctx, http.MethodDelete, "/launcher/{appId}", nil, nil, appParam(appID))
}

// SetCount sets the badge of appID.
func (c *Client) SetCount(ctx context.Context, appID string, count int, visible bool) error {
	body := map[string]any{"count": count, "visible": visible}
	return c.do(ctx, http.MethodPut, "/launcher/{appId}/count", body, nil, appParam(appID))
}

// QuickList lists the quick-list actions of appID.
func (c *Client) QuickList(ctx context.Context, appID string) ([]Row, error) {
	var out struct {
		Actions []Row `json:"actions"`
	}
	err := c.do(ctx, http.MethodGet, "/launcher/{appId}/quicklist", nil, &out, appParam(appID))
	return out.Actions, err
}

// Invoke triggers quick-list action index of appID.
func (c *Client) Invoke(ctx context.Context, appID string, index int) error {
	params := map[string]string{"appId": appID, "index": strconv.Itoa(index)}
	return c.do(ctx, http.MethodPost, "/launcher/{appId}/quicklist/{index}", nil, nil, params)
}

// Categories lists category rows.
func (c *Client) Categories(ctx context.Context) ([]Row, error) {
	var out struct {
		Categories []Row `json:"categories"`
	}
	err := c.do(ctx, http.MethodGet, "/scopes/categories", nil, &out, nil)
	return out.Categories, err
}

// Results lists the results of the category at row.
func (c *Client) Results(ctx context.Context, row int) ([]Row, error) {
	var out struct {
		Results []Row `json:"results"`
	}
	params := map[string]string{"row": strconv.Itoa(row)}
	err := c.do(ctx, http.MethodGet, "/scopes/categories/{row}/results", nil, &out, params)
	return out.Results, err
}

// ResetCategories replaces every category with n synthesized ones.
func (c *Client) ResetCategories(ctx context.Context, n int) error {
	return c.do(ctx, http.MethodPost, "/scopes/categories/reset", map[string]int{"count": n}, nil, nil)
}

// Counters lists named count sources.
func (c *Client) Counters(ctx context.Context) (map[string]int, error) {
	var out struct {
		Counters map[string]int `json:"counters"`
	}
	err := c.do(ctx, http.MethodGet, "/scopes/counters", nil, &out, nil)
	return out.Counters, err
}

// SetCounter sets the named count source.
func (c *Client) SetCounter(ctx context.Context, name string, n int) error {
	params := map[string]string{"name": name}
	return c.do(ctx, http.MethodPut, "/scopes/counters/{name}", map[string]int{"count": n}, nil, params)
}

// Apps lists running applications.
func (c *Client) Apps(ctx context.Context) ([]app.Application, error) {
	var out struct {
		Apps []app.Application `json:"apps"`
	}
	err := c.do(ctx, http.MethodGet, "/apps", nil, &out, nil)
	return out.Apps, err
}

// Start launches appID.
func (c *Client) Start(ctx context.Context, appID string) error {
	return c.do(ctx, http.MethodPost, "/apps/{appId}/start", nil, nil, appParam(appID))
}

// SetState moves appID to state.
func (c *Client) SetState(ctx context.Context, appID string, state app.State) error {
	body := map[string]string{"state": string(state)}
	return c.do(ctx, http.MethodPut, "/apps/{appId}/state", body, nil, appParam(appID))
}

// Stop stops appID.
func (c *Client) Stop(ctx context.Context, appID string) error {
	return c.do(ctx, http.MethodDelete, "/apps/{appId}", nil, nil, appParam(appID))
}

// Search searches the application catalog.
func (c *Client) Search(ctx context.Context, query string) ([]catalog.Entry, error) {
	var out struct {
		Entries []catalog.Entry `json:"entries"`
	}
	apiErr := &APIError{}
	resp, err := c.resty.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		SetResult(&out).
		SetError(apiErr).
		Get("/catalog")
	if err != nil {
		return nil, fmt.Errorf("GET /catalog: %w", err)
	}
	if resp.IsError() {
		apiErr.Status = resp.StatusCode()
		return nil, apiErr
	}
	return out.Entries, nil
}

// ReloadCatalog reloads the server catalog and returns the entries loaded.
func (c *Client) ReloadCatalog(ctx context.Context) (int, error) {
	var out struct {
		Loaded int `json:"loaded"`
	}
	err := c.do(ctx, http.MethodPost, "/catalog/reload", nil, &out, nil)
	return out.Loaded, err
}
