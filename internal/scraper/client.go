package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/octobees/faculty-hub/api/internal/config"
)

const (
	defaultFetchTimeout = 10 * time.Second
	maxPageBytes        = 2 << 20
	browserUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// ErrInvalidURL is returned for URLs that are not absolute http(s) URLs.
var ErrInvalidURL = errors.New("invalid profile url")

// HTTPClient abstracts HTTP requests to simplify testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// PageClient downloads and parses external profile pages. All strategies share
// one client so the outbound throttle applies across sources.
type PageClient struct {
	httpClient HTTPClient
	limiter    *rate.Limiter
	timeout    time.Duration
}

// PageClientOption configures optional dependencies.
type PageClientOption func(*PageClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPClient) PageClientOption {
	return func(c *PageClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewPageClient builds a client with the given per-fetch timeout and outbound
// rate limit. A zero rate limit disables throttling.
func NewPageClient(timeout time.Duration, limit config.RateLimitConfig, opts ...PageClientOption) *PageClient {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	c := &PageClient{
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
		limiter:    newLimiter(limit),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newLimiter(cfg config.RateLimitConfig) *rate.Limiter {
	if cfg.Requests <= 0 || cfg.Interval <= 0 {
		return nil
	}
	perRequest := cfg.Interval / time.Duration(cfg.Requests)
	if perRequest <= 0 {
		perRequest = time.Second
	}
	return rate.NewLimiter(rate.Every(perRequest), cfg.Requests)
}

// Document fetches rawURL and parses it as HTML.
func (c *PageClient) Document(ctx context.Context, rawURL string) (*goquery.Document, error) {
	target, err := validateURL(rawURL)
	if err != nil {
		return nil, err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for fetch slot: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch page: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return doc, nil
}

func validateURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}
	return u.String(), nil
}
