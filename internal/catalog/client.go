// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/lumiere/internal/metrics"
)

// maxErrorBodySize bounds how much of a failed response is kept for the error.
const maxErrorBodySize = 64 * 1024

// maxResponseSize bounds a successful response body.
const maxResponseSize = 16 << 20

// ErrNotFound is returned when the catalog answers 404.
var ErrNotFound = errors.New("catalog: not found")

// StatusError is returned for non-2xx responses other than 404.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog %s: HTTP %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// Fetcher performs one GET against a catalog endpoint and returns the raw body.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string, params url.Values) ([]byte, error)
}

// ClientConfig configures the HTTP transport.
type ClientConfig struct {
	// BaseURL of the catalog API. Default: https://api.themoviedb.org/3.
	BaseURL string

	// APIKey is sent as the api_key query parameter.
	APIKey string

	// ReadToken, when set, is sent as a v4 bearer token instead of APIKey.
	ReadToken string

	// Timeout per HTTP request. Default: 30s.
	Timeout time.Duration

	// RequestsPerSecond throttles outbound calls. Default: 10.
	RequestsPerSecond float64

	// Burst is the token bucket size. Default: 1.
	Burst int

	// MaxRetries on HTTP 429. Default: 5.
	MaxRetries int

	// RetryBaseDelay is the first backoff step, doubled per attempt. Default: 1s.
	RetryBaseDelay time.Duration
}

func (c *ClientConfig) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.themoviedb.org/3"
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = 10
	}
	if c.Burst <= 0 {
		c.Burst = 1
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	} else if c.MaxRetries == 0 {
		c.MaxRetries = 5
	}
	if c.RetryBaseDelay <= 0 {
		c.RetryBaseDelay = time.Second
	}
}

// Client is the HTTP transport to the catalog API. It is safe for concurrent use.
type Client struct {
	baseURL        string
	apiKey         string
	readToken      string
	client         *http.Client
	limiter        *rate.Limiter
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewClient creates a catalog HTTP client.
func NewClient(cfg ClientConfig) *Client {
	cfg.applyDefaults()
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:         cfg.APIKey,
		readToken:      cfg.ReadToken,
		client:         &http.Client{Timeout: cfg.Timeout},
		limiter:        rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
	}
}

// Fetch implements Fetcher.
func (c *Client) Fetch(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	reqURL := c.buildURL(endpoint, params)
	label := endpointLabel(endpoint)
	start := time.Now()

	resp, err := c.doRequestWithRateLimit(ctx, reqURL, label)
	if err != nil {
		metrics.RecordCatalogRequest(label, 0, time.Since(start), err)
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	metrics.RecordCatalogRequest(label, resp.StatusCode, time.Since(start), nil)

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", endpoint, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(readBodyForError(resp.Body)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}
	return body, nil
}

func (c *Client) buildURL(endpoint string, params url.Values) string {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	if c.readToken == "" && c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}
	u := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if encoded := q.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

// doRequestWithRateLimit waits on the outbound limiter and retries HTTP 429
// with exponential backoff: base, 2*base, 4*base... A Retry-After header in
// seconds overrides the computed delay.
func (c *Client) doRequestWithRateLimit(ctx context.Context, reqURL, label string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		waitStart := time.Now()
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
		metrics.CatalogRateLimitWait.Observe(time.Since(waitStart).Seconds())

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.readToken != "" {
			req.Header.Set("Authorization", "Bearer "+c.readToken)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		_ = resp.Body.Close()
		metrics.RecordCatalogRateLimited(label)

		if attempt == c.maxRetries {
			lastErr = fmt.Errorf("rate limit exceeded after %d retries (HTTP 429)", c.maxRetries)
			break
		}

		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := strconv.Atoi(strings.TrimSpace(retryAfter)); err == nil && seconds >= 0 {
				delay = time.Duration(seconds) * time.Second
			}
		}

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

// readBodyForError reads at most maxErrorBodySize bytes of a failed response.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// endpointLabel collapses numeric path segments so metrics stay low-cardinality:
// "movie/550/similar" -> "movie_id_similar".
func endpointLabel(endpoint string) string {
	parts := strings.Split(strings.Trim(endpoint, "/"), "/")
	for i, p := range parts {
		if _, err := strconv.Atoi(p); err == nil {
			parts[i] = "id"
		}
	}
	return strings.Join(parts, "_")
}

var _ Fetcher = (*Client)(nil)
