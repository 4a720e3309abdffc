package fetcher

import (
	"context"
	"log/slog"
	"time"

	"resty.dev/v3"

	"quotefetcher/internal/ratelimit"
)

const (
	// Default retry configuration
	defaultRetryCount       = 3
	defaultRetryWaitTime    = 1 * time.Second
	defaultRetryMaxWaitTime = 10 * time.Second
	defaultTimeout          = 15 * time.Second
	maxRedirects            = 10

	// DefaultUserAgent is sent when no user agent is configured.
	// The quote site serves a consent wall to clients without a browser-like agent.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"
)

// ClientConfig controls how the HTTP client talks to the quote site
type ClientConfig struct {
	BaseURL          string
	UserAgent        string
	Timeout          time.Duration
	RetryCount       int
	RetryWaitTime    time.Duration
	RetryMaxWaitTime time.Duration
}

func (c ClientConfig) withDefaults() ClientConfig {
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.RetryCount < 0 {
		c.RetryCount = defaultRetryCount
	}
	if c.RetryWaitTime <= 0 {
		c.RetryWaitTime = defaultRetryWaitTime
	}
	if c.RetryMaxWaitTime <= 0 {
		c.RetryMaxWaitTime = defaultRetryMaxWaitTime
	}
	return c
}

// NewHTTPClient creates a new HTTP client with retry logic and exponential backoff
func NewHTTPClient(cfg ClientConfig) *resty.Client {
	cfg = cfg.withDefaults()

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "text/html,application/xhtml+xml").
		SetHeader("User-Agent", cfg.UserAgent).
		SetTimeout(cfg.Timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects)).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWaitTime).
		SetRetryMaxWaitTime(cfg.RetryMaxWaitTime).
		AddRetryConditions(retryCondition).
		AddRetryHooks(retryHook)

	return client
}

// retryCondition determines whether a request should be retried based on the response and error
func retryCondition(r *resty.Response, err error) bool {
	// Retry on network errors
	if err != nil {
		return true
	}

	// Retry on server errors (5xx)
	if r.StatusCode() >= 500 {
		return true
	}

	// Retry on rate limit (429)
	if r.StatusCode() == 429 {
		return true
	}

	// Retry on request timeout (408)
	if r.StatusCode() == 408 {
		return true
	}

	return false
}

// retryHook logs retry attempts for observability
func retryHook(r *resty.Response, err error) {
	if r == nil || r.Request == nil {
		slog.Debug("retrying request due to error", "error", err)
		return
	}

	if err != nil {
		slog.Debug("retrying request due to error",
			"url", r.Request.URL,
			"attempt", r.Request.Attempt,
			"error", err.Error())
		return
	}

	slog.Debug("retrying request due to status code",
		"url", r.Request.URL,
		"attempt", r.Request.Attempt,
		"status_code", r.StatusCode())
}

// HTTPFetcher retrieves quote pages over HTTP
type HTTPFetcher struct {
	client  *resty.Client
	limiter *ratelimit.Limiter
}

// NewHTTPFetcher creates a fetcher for the quote site.
// limiter may be nil, in which case requests are not paced.
func NewHTTPFetcher(cfg ClientConfig, limiter *ratelimit.Limiter) *HTTPFetcher {
	return &HTTPFetcher{
		client:  NewHTTPClient(cfg),
		limiter: limiter,
	}
}

// Get retrieves the page at path, following redirects
func (f *HTTPFetcher) Get(ctx context.Context, path string) (*Page, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, ratelimit.SourceYahoo); err != nil {
			return nil, ClassifyTransportError(err)
		}
	}

	resp, err := f.client.R().
		SetContext(ctx).
		Get(path)

	if err != nil {
		return nil, ClassifyTransportError(err)
	}

	page := &Page{
		Body:       resp.String(),
		URL:        resp.Request.URL,
		StatusCode: resp.StatusCode(),
	}

	// http.Response.Request is the last request of a redirect chain
	if raw := resp.RawResponse; raw != nil && raw.Request != nil && raw.Request.URL != nil {
		page.URL = raw.Request.URL.String()
	}

	slog.Debug("fetched page",
		"path", path,
		"url", page.URL,
		"status_code", page.StatusCode,
		"bytes", len(page.Body))

	return page, nil
}
