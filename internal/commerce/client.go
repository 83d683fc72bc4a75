// Package commerce is a small client for the shop's Store API. It provides
// the search functions that back the storefront's listings.
package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	headerAccessKey    = "sw-access-key"
	headerContextToken = "sw-context-token"

	// maxErrorBody bounds how much of an error response is kept.
	maxErrorBody = 64 << 10
)

// Config configures a Client.
type Config struct {
	BaseURL      string
	AccessKey    string
	ContextToken string
	APIVersion   string
	Timeout      time.Duration
	RPS          float64 // requests per second; zero or less disables limiting
	Burst        int
}

// RequestObserver is notified after every Store API call. code is zero when
// no response was received.
type RequestObserver interface {
	ObserveRequest(endpoint string, code int, d time.Duration)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. The configured timeout is not
// applied to it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithObserver reports every request to o.
func WithObserver(o RequestObserver) Option {
	return func(c *Client) { c.observer = o }
}

// Client talks to the Store API.
type Client struct {
	baseURL      string
	accessKey    string
	contextToken string
	legacy       bool
	http         *http.Client
	limiter      *rate.Limiter
	observer     RequestObserver
}

// New creates a Client for cfg.
func New(cfg Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	c := &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		accessKey:    cfg.AccessKey,
		contextToken: cfg.ContextToken,
		legacy:       LegacySortings(cfg.APIVersion),
		http:         &http.Client{Timeout: timeout},
		limiter:      rate.NewLimiter(limit, burst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is returned for non-2xx responses.
type APIError struct {
	Endpoint   string
	StatusCode int
	Errors     []ErrorDetail
	Body       []byte
}

// ErrorDetail is one entry of the Store API's "errors" array.
type ErrorDetail struct {
	Status string `json:"status"`
	Code   string `json:"code"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	msg := http.StatusText(e.StatusCode)
	if len(e.Errors) > 0 {
		d := e.Errors[0]
		msg = d.Detail
		if msg == "" {
			msg = d.Title
		}
	}
	return fmt.Sprintf("commerce: %s returned %d: %s", e.Endpoint, e.StatusCode, msg)
}

// post sends body to path and decodes the JSON response into out.
func (c *Client) post(ctx context.Context, endpoint, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("commerce: %s: rate limit: %w", endpoint, err)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("commerce: %s: encode request: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("commerce: %s: create request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerAccessKey, c.accessKey)
	if c.contextToken != "" {
		req.Header.Set(headerContextToken, c.contextToken)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(endpoint, 0, start)
		return fmt.Errorf("commerce: %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()
	c.observe(endpoint, resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: raw}
		var envelope struct {
			Errors []ErrorDetail `json:"errors"`
		}
		if json.Unmarshal(raw, &envelope) == nil {
			apiErr.Errors = envelope.Errors
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("commerce: %s: decode response: %w", endpoint, err)
	}
	return nil
}

func (c *Client) observe(endpoint string, code int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveRequest(endpoint, code, time.Since(start))
	}
}
