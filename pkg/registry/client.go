// Package registry provides shared HTTP functionality for package registry
// API clients: response caching, retry with backoff, and common headers.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/JonnieCache/cargo-open/pkg/cache"
	"github.com/JonnieCache/cargo-open/pkg/observability"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a crate or resource doesn't exist in the registry.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// Client is the HTTP layer shared by registry integrations. Responses are
// cached through a [cache.Cache] backend and transient failures are retried
// with backoff before they surface to the caller.
type Client struct {
	http    *http.Client
	store   cache.Cache
	prefix  string
	ttl     time.Duration
	headers map[string]string
}

// NewClient creates a Client backed by the given cache.
// Cache keys are namespaced with prefix and stored with ttl. Headers are
// applied to all requests made through this client; pass nil if none are
// needed.
func NewClient(store cache.Cache, prefix string, ttl time.Duration, headers map[string]string) *Client {
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		store:   store,
		prefix:  prefix,
		ttl:     ttl,
		headers: headers,
	}
}

// Cached serves v from the cache when a fresh entry exists, otherwise runs
// fetch (with retries) to populate v and stores the JSON-encoded result.
// refresh=true skips the cache read but still writes the new entry back.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	key = c.prefix + key

	if !refresh {
		if data, hit, _ := c.store.Get(ctx, key); hit {
			if err := json.Unmarshal(data, v); err == nil {
				return nil
			}
			// Undecodable entry: fall through and refetch
			_ = c.store.Delete(ctx, key)
		}
	}
	if err := cache.Retry(ctx, fetch); err != nil {
		return err
	}
	if data, err := json.Marshal(v); err == nil {
		_ = c.store.Set(ctx, key, data, c.ttl)
	}
	return nil
}

// Get issues a GET request for url and JSON-decodes the body into v.
// It applies the client's default headers; retries are handled by the
// caller via [Cached] or [cache.Retry].
func (c *Client) Get(ctx context.Context, url string, v any) error {
	body, err := c.doRequest(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

func (c *Client) doRequest(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	observability.HTTP().OnRequest(ctx, http.MethodGet, url)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, url, err)
		return nil, cache.Transient(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	observability.HTTP().OnResponse(ctx, http.MethodGet, url, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

// checkStatus maps response codes onto the package errors: 404 becomes
// [ErrNotFound], 5xx a transient [ErrNetwork] worth retrying, and any other
// non-200 a permanent [ErrNetwork].
func checkStatus(code int) error {
	if code == http.StatusOK {
		return nil
	}
	if code == http.StatusNotFound {
		return ErrNotFound
	}
	err := fmt.Errorf("%w: status %d", ErrNetwork, code)
	if code >= 500 {
		return cache.Transient(err)
	}
	return err
}
