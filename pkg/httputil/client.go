package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dailywall/pkg/cache"
	"github.com/matzehuels/dailywall/pkg/errors"
	"github.com/matzehuels/dailywall/pkg/observability"
)

const (
	// DefaultTimeout bounds a single request including the body read.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBodySize caps response bodies. Concept art originals can be
	// large, so the limit is generous.
	DefaultMaxBodySize = 64 << 20
)

// Client performs GET requests against source websites.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	headers map[string]string
	maxBody int64
	logger  *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.headers["User-Agent"] = ua }
}

// WithHeader adds a default header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// WithMaxBodySize sets the maximum accepted response body size in bytes.
func WithMaxBodySize(n int64) Option {
	return func(c *Client) { c.maxBody = n }
}

// WithHTTPClient replaces the underlying http.Client. The configured timeout
// of the replacement is kept.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for debug output about requests.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Client. A nil cache disables caching.
func NewClient(c cache.Cache, opts ...Option) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	client := &Client{
		http:    &http.Client{Timeout: DefaultTimeout},
		cache:   c,
		headers: map[string]string{},
		maxBody: DefaultMaxBodySize,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Get fetches url and returns the full response body.
// Network failures and non-200 responses are FETCH_FAILED errors.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFetch, err, "build request for %s", url)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, errors.Wrap(errors.ErrCodeFetch, err, "GET %s", url)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFetch, err, "GET %s", url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFetch, err, "read body of %s", url)
	}
	if int64(len(body)) > c.maxBody {
		return nil, errors.New(errors.ErrCodeFetch, "body of %s exceeds %d bytes", url, c.maxBody)
	}

	c.logger.Debug("fetched", "url", url, "bytes", len(body), "duration", time.Since(start).Round(time.Millisecond))
	return body, nil
}

// GetCached is like Get but serves and stores the body through the page
// cache. Cache read and write failures are logged and otherwise ignored;
// only the fetch itself can fail the call.
func (c *Client) GetCached(ctx context.Context, url string, ttl time.Duration) ([]byte, error) {
	hooks := observability.Cache()
	key := cache.PageKey(url)
	data, hit, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache read failed", "url", url, "err", err)
	}
	if hit {
		hooks.OnCacheHit(ctx, "page")
		c.logger.Debug("cache hit", "url", url)
		return data, nil
	}
	hooks.OnCacheMiss(ctx, "page")

	body, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, body, ttl); err != nil {
		c.logger.Warn("cache write failed", "url", url, "err", err)
	} else {
		hooks.OnCacheSet(ctx, "page", len(body))
	}
	return body, nil
}

func checkStatus(code int) error {
	if code == http.StatusOK {
		return nil
	}
	return fmt.Errorf("unexpected status %d %s", code, http.StatusText(code))
}
