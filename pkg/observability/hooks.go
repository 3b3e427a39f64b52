// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries in this module report what they do through hook interfaces with
// no-op defaults. Binaries register real implementations at startup; the
// mmcf CLI registers hooks that log stage timings at debug level.
//
// # Usage
//
// Register hooks at application startup. Embedding [Noop] keeps an
// implementation small:
//
//	type cacheCounter struct {
//	    observability.Noop
//	    hits atomic.Int64
//	}
//
//	func (c *cacheCounter) OnCacheHit(context.Context, string) { c.hits.Add(1) }
//
//	observability.SetCacheHooks(&cacheCounter{})
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnNormalizeStart(ctx, policy)
//	// ... aggregate ...
//	observability.Pipeline().OnNormalizeComplete(ctx, policy, nodes, arcs, duration, err)
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the conversion pipeline.
type PipelineHooks interface {
	// Load events: decoding the input document.
	OnLoadStart(ctx context.Context, size int)
	OnLoadComplete(ctx context.Context, nodes, arcs int, duration time.Duration, err error)

	// Normalize events: validation and aggregation.
	OnNormalizeStart(ctx context.Context, policy string)
	OnNormalizeComplete(ctx context.Context, policy string, nodes, arcs int, duration time.Duration, err error)

	// Build events: constraint construction.
	OnBuildStart(ctx context.Context, model string)
	OnBuildComplete(ctx context.Context, model string, variables, constraints int, duration time.Duration)

	// Export events: encoding the model or network.
	OnExportStart(ctx context.Context, format string)
	OnExportComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementation
// =============================================================================

// Noop implements every hook interface and does nothing. Embed it to
// implement only the events you care about.
type Noop struct{}

func (Noop) OnLoadStart(context.Context, int)                                            {}
func (Noop) OnLoadComplete(context.Context, int, int, time.Duration, error)              {}
func (Noop) OnNormalizeStart(context.Context, string)                                    {}
func (Noop) OnNormalizeComplete(context.Context, string, int, int, time.Duration, error) {}
func (Noop) OnBuildStart(context.Context, string)                                        {}
func (Noop) OnBuildComplete(context.Context, string, int, int, time.Duration)            {}
func (Noop) OnExportStart(context.Context, string)                                       {}
func (Noop) OnExportComplete(context.Context, string, int, time.Duration, error)         {}
func (Noop) OnCacheHit(context.Context, string)                                          {}
func (Noop) OnCacheMiss(context.Context, string)                                         {}
func (Noop) OnCacheSet(context.Context, string, int)                                     {}
func (Noop) OnRequest(context.Context, string, string)                                   {}
func (Noop) OnResponse(context.Context, string, string, int, time.Duration)              {}

var (
	_ PipelineHooks = Noop{}
	_ CacheHooks    = Noop{}
	_ HTTPHooks     = Noop{}
)

// =============================================================================
// Global Hook Registry
// =============================================================================

// hookSet is replaced as a whole on every registration, so readers never
// take a lock.
type hookSet struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var (
	current atomic.Pointer[hookSet]
	writeMu sync.Mutex
)

func init() { Reset() }

// update applies fn to a copy of the registered hooks and publishes it.
func update(fn func(*hookSet)) {
	writeMu.Lock()
	defer writeMu.Unlock()
	next := *current.Load()
	fn(&next)
	current.Store(&next)
}

// SetPipelineHooks registers pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(s *hookSet) { s.pipeline = h })
	}
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(s *hookSet) { s.cache = h })
	}
}

// SetHTTPHooks registers HTTP server hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(s *hookSet) { s.http = h })
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return current.Load().pipeline }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return current.Load().cache }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return current.Load().http }

// Reset restores all hooks to [Noop].
func Reset() {
	writeMu.Lock()
	defer writeMu.Unlock()
	current.Store(&hookSet{pipeline: Noop{}, cache: Noop{}, http: Noop{}})
}
