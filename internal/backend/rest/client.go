// Package rest implements the api.Service interface against the todo
// service's HTTP contract. It is the only package that performs network
// calls; everything else goes through it.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"todocli/internal/api"
)

const (
	// apiPrefix is the version prefix for all service endpoints.
	apiPrefix = "/api/v1"

	// requestsPerSecond and requestBurst bound how fast the client hits
	// the service. A wait, not a retry or a timeout.
	requestsPerSecond = 10
	requestBurst      = 5
)

// Options configures a Client.
type Options struct {
	// BaseURL is the service root, e.g. http://localhost:8000.
	BaseURL string

	// Tokens is read on every outbound request. May be nil, in which
	// case no credential is ever attached.
	Tokens TokenReader

	// OnUnauthorized is called on any 401 response. Typically the
	// session manager's Invalidate.
	OnUnauthorized func()

	// HTTPClient supplies the underlying transport. Defaults to a plain
	// http.Client.
	HTTPClient *http.Client

	// Logger receives debug logs for every call. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Client implements api.Service over HTTP.
type Client struct {
	base    string
	http    *http.Client
	limiter *rate.Limiter
}

// New creates a Client. All requests pass through the intercepting
// transport, including the token exchange in Authenticate.
func New(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	inner := opts.HTTPClient
	if inner == nil {
		inner = &http.Client{}
	}
	base := inner.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	httpClient := &http.Client{
		Transport: &authTransport{
			base:           base,
			tokens:         opts.Tokens,
			onUnauthorized: opts.OnUnauthorized,
			logger:         logger,
		},
		Timeout: inner.Timeout,
	}

	return &Client{
		base:    strings.TrimRight(opts.BaseURL, "/"),
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
	}
}

// Register implements api.Service.
func (c *Client) Register(ctx context.Context, username, password string) (api.User, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}
	var user api.User
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &user, "registration failed"); err != nil {
		return api.User{}, err
	}
	return user, nil
}

// Authenticate implements api.Service. The login endpoint is an OAuth2
// password grant (form-encoded username and password, token in the
// response body), so the exchange goes through the oauth2 package,
// routed onto our intercepting client.
func (c *Client) Authenticate(ctx context.Context, username, password string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	conf := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.base + apiPrefix + "/auth/login",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	tok, err := conf.PasswordCredentialsToken(ctx, username, password)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.Response != nil {
			detail := "login failed"
			var ed errorDetail
			if json.Unmarshal(rerr.Body, &ed) == nil && ed.Detail != "" {
				detail = ed.Detail
			}
			return "", &api.Error{Status: rerr.Response.StatusCode, Detail: detail}
		}
		return "", netError("login", err)
	}
	return tok.AccessToken, nil
}

// ListTasks implements api.Service.
func (c *Client) ListTasks(ctx context.Context) ([]api.Task, error) {
	var tasks []api.Task
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &tasks, "failed to load tasks"); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask implements api.Service.
func (c *Client) GetTask(ctx context.Context, id int64) (api.Task, error) {
	var task api.Task
	path := fmt.Sprintf("/todos/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &task, "failed to load task"); err != nil {
		return api.Task{}, err
	}
	return task, nil
}

// CreateTask implements api.Service.
func (c *Client) CreateTask(ctx context.Context, fields api.TaskFields) (api.Task, error) {
	var task api.Task
	if err := c.do(ctx, http.MethodPost, "/todos", fields, &task, "failed to create task"); err != nil {
		return api.Task{}, err
	}
	return task, nil
}

// UpdateTask implements api.Service.
func (c *Client) UpdateTask(ctx context.Context, id int64, patch api.TaskPatch) (api.Task, error) {
	var task api.Task
	path := fmt.Sprintf("/todos/%d", id)
	if err := c.do(ctx, http.MethodPatch, path, patch, &task, "failed to update task"); err != nil {
		return api.Task{}, err
	}
	return task, nil
}

// DeleteTask implements api.Service.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/todos/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, "failed to delete task")
}

// do performs one JSON call against the service. body and out may be nil.
// Non-2xx responses become *api.Error with the given fallback detail.
func (c *Client) do(ctx context.Context, method, path string, body, out any, fallback string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+apiPrefix+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return netError(method+" "+path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp, fallback)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
