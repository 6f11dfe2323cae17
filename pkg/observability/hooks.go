// Package observability provides hooks for cache and HTTP instrumentation.
//
// Hook interfaces default to no-ops, and main swaps in real implementations
// at startup. The cache backends and the registry client emit events
// unconditionally; without registered hooks the calls do nothing. The
// --verbose flag installs log-backed hooks so cache hits and crates.io
// traffic show up in debug output:
//
//	observability.SetCacheHooks(hooks)
//	observability.SetHTTPHooks(hooks)
//
// and on the emitting side:
//
//	observability.Cache().OnCacheHit(ctx, key)
//	observability.HTTP().OnRequest(ctx, method, url)
package observability

import (
	"context"
	"sync"
	"time"
)

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records that key was served from the cache.
	OnCacheHit(ctx context.Context, key string)

	// OnCacheMiss records that key was absent or expired.
	OnCacheMiss(ctx context.Context, key string)

	// OnCacheSet records a write of size bytes under key.
	OnCacheSet(ctx context.Context, key string, size int)
}

// HTTPHooks receives events from the registry HTTP client.
type HTTPHooks interface {
	// OnRequest records an outgoing request.
	OnRequest(ctx context.Context, method, url string)

	// OnResponse records the response status and round-trip time.
	OnResponse(ctx context.Context, method, url string, statusCode int, duration time.Duration)

	// OnError records a failed request (network failure, timeout).
	OnError(ctx context.Context, method, url string, err error)
}

// NoopCacheHooks ignores all cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(ctx context.Context, key string)           {}
func (NoopCacheHooks) OnCacheMiss(ctx context.Context, key string)          {}
func (NoopCacheHooks) OnCacheSet(ctx context.Context, key string, size int) {}

// NoopHTTPHooks ignores all HTTP events.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(ctx context.Context, method, url string)                                          {}
func (NoopHTTPHooks) OnResponse(ctx context.Context, method, url string, statusCode int, duration time.Duration) {}
func (NoopHTTPHooks) OnError(ctx context.Context, method, url string, err error)                                 {}

// The process-wide registry. Writes happen once during startup, reads on
// every instrumented operation.
var registry = struct {
	sync.RWMutex
	cache CacheHooks
	http  HTTPHooks
}{cache: NoopCacheHooks{}, http: NoopHTTPHooks{}}

// SetCacheHooks registers h for cache events. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	registry.cache = h
	registry.Unlock()
}

// SetHTTPHooks registers h for HTTP events. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	registry.http = h
	registry.Unlock()
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.cache
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.http
}

// Reset restores the no-op defaults. Tests use it to unregister hooks.
func Reset() {
	registry.Lock()
	registry.cache = NoopCacheHooks{}
	registry.http = NoopHTTPHooks{}
	registry.Unlock()
}
