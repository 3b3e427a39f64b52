package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

// recorder collects event names in order.
type recorder struct {
	Noop
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) OnNormalizeStart(_ context.Context, policy string) { r.add("normalize:" + policy) }
func (r *recorder) OnCacheMiss(_ context.Context, key string)         { r.add("miss:" + key) }
func (r *recorder) OnRequest(_ context.Context, method, path string)  { r.add(method + " " + path) }

func TestNoopDefaults(t *testing.T) {
	Reset()
	ctx := context.Background()

	Pipeline().OnLoadComplete(ctx, 4, 3, time.Millisecond, nil)
	Pipeline().OnExportComplete(ctx, "lp", 2048, time.Millisecond, nil)
	Cache().OnCacheSet(ctx, "artifact", 1024)
	HTTP().OnResponse(ctx, "POST", "/v1/convert", 200, time.Second)

	if _, ok := Pipeline().(Noop); !ok {
		t.Errorf("Pipeline() = %T, want Noop", Pipeline())
	}
}

func TestRegisterAndReset(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	ctx := context.Background()

	r := &recorder{}
	SetPipelineHooks(r)
	SetCacheHooks(r)
	SetHTTPHooks(r)

	Pipeline().OnNormalizeStart(ctx, "cap")
	Pipeline().OnBuildStart(ctx, "mmcf") // not overridden
	Cache().OnCacheMiss(ctx, "network")
	HTTP().OnRequest(ctx, "POST", "/v1/inspect")

	want := []string{"normalize:cap", "miss:network", "POST /v1/inspect"}
	if len(r.events) != len(want) {
		t.Fatalf("events = %v, want %v", r.events, want)
	}
	for i := range want {
		if r.events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, r.events[i], want[i])
		}
	}

	Reset()
	Pipeline().OnNormalizeStart(ctx, "fail")
	if len(r.events) != len(want) {
		t.Error("hooks still called after Reset")
	}
}

func TestSetNilIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	r := &recorder{}
	SetCacheHooks(r)
	SetCacheHooks(nil)
	SetPipelineHooks(nil)

	if Cache() != CacheHooks(r) {
		t.Error("SetCacheHooks(nil) replaced the registered hooks")
	}
	if _, ok := Pipeline().(Noop); !ok {
		t.Error("SetPipelineHooks(nil) should leave the default in place")
	}
}

func TestConcurrentAccess(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				SetCacheHooks(&recorder{})
				return
			}
			Cache().OnCacheHit(ctx, "artifact")
		}()
	}
	wg.Wait()
}
