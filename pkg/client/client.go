package client

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

	"github.com/aretw0/conncheck/internal/logging"
	"github.com/aretw0/conncheck/pkg/domain"
	"github.com/aretw0/conncheck/pkg/ports"
)

// DefaultBaseURL is used when no backend origin is configured.
const DefaultBaseURL = "http://localhost:5000"

// maxErrorBody caps how much of a non-2xx body is kept in APIError.
const maxErrorBody = 512

// Client implements ports.Backend over HTTP.
type Client struct {
	baseURL   string
	http      *http.Client
	validator *Validator
	logger    *slog.Logger
}

// Ensure Client implements ports.Backend
var _ ports.Backend = (*Client)(nil)

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithValidator enables OpenAPI validation of successful responses.
func WithValidator(v *Validator) Option {
	return func(c *Client) {
		c.validator = v
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the backend at baseURL.
// The default http.Client has no timeout: calls wait on the network until ctx is done.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health calls GET /api/health.
func (c *Client) Health(ctx context.Context) (domain.Health, error) {
	var out domain.Health
	err := c.getJSON(ctx, "/api/health", nil, &out)
	return out, err
}

// Greeting calls GET /api/greeting. The name parameter is omitted when empty.
func (c *Client) Greeting(ctx context.Context, name string) (domain.Greeting, error) {
	var query url.Values
	if name != "" {
		query = url.Values{"name": {name}}
	}
	var out domain.Greeting
	err := c.getJSON(ctx, "/api/greeting", query, &out)
	return out, err
}

// ListTodos calls GET /api/todos.
func (c *Client) ListTodos(ctx context.Context) ([]domain.Todo, error) {
	out := []domain.Todo{}
	if err := c.getJSON(ctx, "/api/todos", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddTodo calls POST /api/todos with {"title": title}.
func (c *Client) AddTodo(ctx context.Context, title string) error {
	body, err := json.Marshal(domain.NewTodo{Title: title})
	if err != nil {
		return fmt.Errorf("failed to marshal todo: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, "/api/todos", nil, body)
	return err
}

// ToggleTodo calls PUT /api/todos/{id}/toggle.
func (c *Client) ToggleTodo(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodPut, "/api/todos/"+strconv.Itoa(id)+"/toggle", nil, nil)
	return err
}

// DeleteTodo calls DELETE /api/todos/{id}.
func (c *Client) DeleteTodo(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/todos/"+strconv.Itoa(id), nil, nil)
	return err
}

// Calculate calls GET /api/calculate?a=&b=&operation=.
func (c *Client) Calculate(ctx context.Context, a, b float64, op domain.Operation) (domain.Calculation, error) {
	query := url.Values{}
	query.Set("a", strconv.FormatFloat(a, 'f', -1, 64))
	query.Set("b", strconv.FormatFloat(b, 'f', -1, 64))
	query.Set("operation", string(op))

	var out domain.Calculation
	err := c.getJSON(ctx, "/api/calculate", query, &out)
	return out, err
}

// Random calls GET /api/random?min=&max=.
func (c *Client) Random(ctx context.Context, min, max int) (domain.RandomNumber, error) {
	query := url.Values{}
	query.Set("min", strconv.Itoa(min))
	query.Set("max", strconv.Itoa(max))

	var out domain.RandomNumber
	err := c.getJSON(ctx, "/api/random", query, &out)
	return out, err
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrMalformedResponse, path, err)
	}
	return nil
}

// do performs the request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("Backend request", "method", method, "url", target)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnreachable, unwrapURLError(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrBackendUnreachable, err)
	}

	c.logger.Debug("Backend response", "method", method, "url", target, "status", resp.StatusCode, "size", len(data))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.APIError{StatusCode: resp.StatusCode, Body: errorBody(data)}
	}

	if c.validator != nil && method == http.MethodGet {
		if err := c.validator.ValidateResponse(ctx, req, resp, data); err != nil {
			return nil, err
		}
	}

	return data, nil
}

// errorBody extracts {"error": "..."} when present, else a trimmed excerpt.
func errorBody(data []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	text := strings.TrimSpace(string(data))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody]
	}
	return text
}

func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
