// Package apiclient is the HTTP client for the launch API.
//
// A [Client] issues GET requests against a base URL with a fixed header set
// and decodes JSON responses. Failures are classified into the error types
// of pkg/errors:
//
//   - no response, or a body that is not valid JSON: [errors.ConnectionError]
//   - a non-2xx status: [errors.HTTPError] carrying the status
//   - a decoded value whose Validate method fails: [errors.ValidationError]
//
// The client does not retry and does not cache; see pkg/httputil and
// pkg/cache.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/launchdeck/pkg/buildinfo"
	"github.com/matzehuels/launchdeck/pkg/errors"
	"github.com/matzehuels/launchdeck/pkg/observability"
)

// DefaultTimeout bounds a single request when no http.Client is supplied.
const DefaultTimeout = 10 * time.Second

// maxErrorBody is how much of a non-2xx body is kept on the HTTPError.
const maxErrorBody = 512

// Validator is implemented by response types that can check their own shape.
type Validator interface {
	Validate() error
}

// Client provides GET access to the launch API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *log.Logger
	hooks   observability.HTTPHooks
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

// WithLogger sets the logger used for request tracing at debug level.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHooks sets the HTTP hooks. By default the process-wide hooks are used.
func WithHooks(h observability.HTTPHooks) Option {
	return func(c *Client) {
		if h != nil {
			c.hooks = h
		}
	}
}

// New creates a Client for baseURL. When apiKey is non-empty every request
// carries it as a bearer token.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// Get requests path with the given query parameters and decodes the JSON
// body into v. If v implements [Validator], the decoded value is validated
// and a failure is returned as an [errors.ValidationError].
func (c *Client) Get(ctx context.Context, path string, query url.Values, v any) error {
	target := c.url(path, query)

	body, err := c.doRequest(ctx, target)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return &errors.ConnectionError{URL: target, Err: fmt.Errorf("decode response: %w", err)}
	}

	if val, ok := v.(Validator); ok {
		if err := val.Validate(); err != nil {
			return asValidation(err)
		}
	}
	return nil
}

func (c *Client) url(path string, query url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) headers() map[string]string {
	h := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
	if c.apiKey != "" {
		h["Authorization"] = "Bearer " + c.apiKey
	}
	return h
}

func (c *Client) doRequest(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &errors.ConnectionError{URL: target, Err: err}
	}
	for k, v := range c.headers() {
		req.Header.Set(k, v)
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	id := uuid.NewString()
	host, path := req.URL.Host, req.URL.Path
	hooks := c.hookset()
	hooks.OnRequest(ctx, req.Method, host, path)
	c.logger.Debug("request", "id", id, "method", req.Method, "url", target)

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		c.logger.Debug("request failed", "id", id, "err", err, "elapsed", elapsed)
		return nil, &errors.ConnectionError{URL: target, Err: err}
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, elapsed)
	c.logger.Debug("response", "id", id, "status", resp.StatusCode, "elapsed", elapsed)

	if err := checkStatus(resp, target); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func (c *Client) hookset() observability.HTTPHooks {
	if c.hooks != nil {
		return c.hooks
	}
	return observability.HTTP()
}

func checkStatus(resp *http.Response, target string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &errors.HTTPError{Status: resp.StatusCode, URL: target, Body: body}
}

func asValidation(err error) error {
	if errors.Is(err, errors.ErrCodeValidation) {
		return err
	}
	return &errors.ValidationError{Reason: err.Error()}
}
