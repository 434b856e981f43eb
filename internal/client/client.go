package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"vaults-mcp/internal/config"
	"vaults-mcp/pkg/logging"
)

const (
	// FunctionKeyHeader carries the function key on authenticated routes.
	FunctionKeyHeader = "x-functions-key"
	userAgentPrefix   = "Vaults-MCP-Server/"

	defaultTimeout = 30 * time.Second
	errorBodyLimit = 200
)

// Config is the immutable configuration of a Client.
type Config struct {
	BaseURL     string
	FunctionKey string
	Timeout     time.Duration
	MaxRetries  int // total attempts, 0 means a single attempt
	RetryDelay  time.Duration
	Version     string // reported in the User-Agent header
}

// ConfigFrom derives the client configuration from the application configuration.
func ConfigFrom(cfg config.Config) Config {
	return Config{
		BaseURL:     cfg.BaseURL,
		FunctionKey: cfg.FunctionKey,
		Timeout:     cfg.TimeoutDuration(),
		MaxRetries:  cfg.MaxRetries,
		RetryDelay:  cfg.RetryDelayDuration(),
		Version:     cfg.ServerVersion,
	}
}

// Request describes one backend call.
type Request struct {
	Method       string
	Path         string         // joined to the base URL as is
	Query        map[string]any // nil values are skipped
	Body         any            // JSON encoded when non-nil
	RequiresAuth bool           // send the function key when one is configured
}

// Client talks to the backend. It is safe for concurrent use.
type Client struct {
	cfg        Config
	baseURL    string
	transport  *http.Transport
	httpClient *http.Client
	policy     RetryPolicy

	closed    atomic.Bool
	closeOnce sync.Once
}

// New creates a client with its own connection pool.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	return &Client{
		cfg:       cfg,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		transport: transport,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		policy: RetryPolicy{
			Attempts:  cfg.MaxRetries,
			BaseDelay: cfg.RetryDelay,
			MaxDelay:  MaxRetryDelay,
		},
	}
}

// With creates a client, passes it to fn and closes it afterwards.
func With(cfg Config, fn func(*Client) error) error {
	c := New(cfg)
	defer c.Close()
	return fn(c)
}

// Close releases pooled connections. Calls after the first are no-ops.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.transport.CloseIdleConnections()
		logging.Debug("Client", "HTTP client closed")
	})
	return nil
}

// Closed reports whether Close has been called.
func (c *Client) Closed() bool {
	return c.closed.Load()
}

// HasFunctionKey reports whether authenticated routes will carry a key.
func (c *Client) HasFunctionKey() bool {
	return c.cfg.FunctionKey != ""
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query map[string]any, requiresAuth bool) (any, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query, RequiresAuth: requiresAuth})
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, query map[string]any, requiresAuth bool) (any, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Query: query, Body: body, RequiresAuth: requiresAuth})
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any, requiresAuth bool) (any, error) {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body, RequiresAuth: requiresAuth})
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, query map[string]any, requiresAuth bool) (any, error) {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path, Query: query, RequiresAuth: requiresAuth})
}

// Do performs the request with retries. The result is the decoded JSON value, with numbers
// kept as json.Number. Every failure is a *Error.
func (c *Client) Do(ctx context.Context, req Request) (any, error) {
	if c.closed.Load() {
		return nil, &Error{Kind: KindNetwork, Message: "Network error: " + ErrClosed.Error(), Err: ErrClosed}
	}

	var payload []byte
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &Error{Kind: KindAPI, Message: fmt.Sprintf("Failed to encode request body: %v", err), Err: err}
		}
		payload = data
	}

	target, err := c.buildURL(req.Path, req.Query)
	if err != nil {
		return nil, &Error{Kind: KindAPI, Message: fmt.Sprintf("Invalid request URL: %v", err), Err: err}
	}

	attempts := c.policy.MaxAttempts()
	var lastErr *Error

	for attempt := 1; attempt <= attempts; attempt++ {
		result, cerr := c.attempt(ctx, req, target, payload)
		if cerr == nil {
			return result, nil
		}
		lastErr = cerr

		if !cerr.Retryable() || ctx.Err() != nil || attempt == attempts {
			break
		}

		delay := c.policy.Delay(attempt)
		logging.Warn("Client", "Request failed (attempt %d/%d), retrying in %s: %s", attempt, attempts, delay, cerr.Message)
		if waitErr := c.policy.Wait(ctx, attempt); waitErr != nil {
			return nil, networkError(waitErr)
		}
	}

	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(lastErr, ctxErr) {
		return nil, networkError(ctxErr)
	}
	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, req Request, target string, payload []byte) (any, *Error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, &Error{Kind: KindAPI, Message: fmt.Sprintf("Invalid request: %v", err), Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgentPrefix+c.cfg.Version)
	if req.RequiresAuth && c.cfg.FunctionKey != "" {
		httpReq.Header.Set(FunctionKeyHeader, c.cfg.FunctionKey)
	}

	logging.Debug("Client", "%s %s", req.Method, target)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.classifyTransportError(ctx, err)
	}

	return handleResponse(resp, data)
}

func (c *Client) classifyTransportError(ctx context.Context, err error) *Error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return networkError(ctxErr)
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return timeoutError(c.cfg.Timeout, err)
	}
	return networkError(err)
}

func (c *Client) buildURL(path string, query map[string]any) (string, error) {
	raw := c.baseURL + path
	if len(query) == 0 {
		return raw, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	values := u.Query()
	for key, value := range query {
		if value == nil {
			continue
		}
		values.Set(key, formatQueryValue(value))
	}
	u.RawQuery = values.Encode()
	return u.String(), nil
}

func formatQueryValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func handleResponse(resp *http.Response, data []byte) (any, *Error) {
	status := resp.StatusCode
	html := isHTML(resp.Header.Get("Content-Type"))

	if status >= 400 {
		return nil, errorFromResponse(resp, data, html)
	}
	if status < 200 || status >= 300 {
		return nil, newHTTPError(KindAPI, status, fmt.Sprintf("HTTP %d", status), nil)
	}

	if len(data) == 0 {
		return map[string]any{}, nil
	}
	if html {
		return nil, newHTTPError(KindServer, status, fmt.Sprintf("Received HTML response instead of JSON (HTTP %d)", status), nil)
	}

	result, err := decodeJSON(data)
	if err != nil {
		return nil, &Error{
			Kind:       KindAPI,
			StatusCode: status,
			Message:    fmt.Sprintf("Failed to parse JSON response (HTTP %d): %v", status, err),
			Err:        err,
		}
	}
	return result, nil
}

func errorFromResponse(resp *http.Response, data []byte, html bool) *Error {
	status := resp.StatusCode

	var message string
	var details any
	switch {
	case html:
		message = fmt.Sprintf("Received HTML error page instead of JSON (HTTP %d)", status)
		details = "The server returned an HTML error page, likely due to an unhandled exception"
	default:
		message, details = parseErrorBody(status, data)
	}

	switch {
	case status == http.StatusUnauthorized:
		return newHTTPError(KindAuthentication, status, message, details)
	case status == http.StatusTooManyRequests:
		e := newHTTPError(KindRateLimit, status, message, details)
		e.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
		return e
	case status >= 500:
		return newHTTPError(KindServer, status, message, details)
	default:
		return newHTTPError(KindAPI, status, message, details)
	}
}

// parseErrorBody reads the backend's {"error": ..., "details": ...} envelope.
func parseErrorBody(status int, data []byte) (string, any) {
	decoded, err := decodeJSON(data)
	if obj, ok := decoded.(map[string]any); err == nil && ok {
		message := fmt.Sprintf("HTTP %d", status)
		if v, present := obj["error"]; present && v != nil {
			message = fmt.Sprint(v)
		}
		return message, obj["details"]
	}

	text := []rune(string(data))
	if len(text) > errorBodyLimit {
		text = text[:errorBodyLimit]
	}
	return fmt.Sprintf("HTTP %d: %s...", status, string(text)), nil
}

// parseRetryAfter accepts delta-seconds or an HTTP date.
func parseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var result any
	if err := dec.Decode(&result); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("invalid character after top-level value")
	}
	return result, nil
}

func isHTML(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "text/html")
}
