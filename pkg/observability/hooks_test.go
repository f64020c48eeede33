package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "stats")
	c.OnCacheMiss(ctx, "series")
	c.OnCacheSet(ctx, "launches")
	c.OnCacheCoalesced(ctx, "launches")

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "localhost:3000", "/statistics")
	h.OnResponse(ctx, "GET", "localhost:3000", "/statistics", 200, time.Second)
	h.OnError(ctx, "GET", "localhost:3000", "/statistics", nil)

	r := NoopRetryHooks{}
	r.OnRetry(ctx, 1, time.Second, errors.New("boom"))
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	assert.IsType(t, NoopCacheHooks{}, Cache(), "Cache() should default to NoopCacheHooks")
	assert.IsType(t, NoopHTTPHooks{}, HTTP(), "HTTP() should default to NoopHTTPHooks")
	assert.IsType(t, NoopRetryHooks{}, Retry(), "Retry() should default to NoopRetryHooks")

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	assert.Same(t, customCache, Cache())

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	assert.Same(t, customHTTP, HTTP())

	customRetry := &testRetryHooks{}
	SetRetryHooks(customRetry)
	assert.Same(t, customRetry, Retry())

	Reset()
	assert.IsType(t, NoopCacheHooks{}, Cache(), "Reset() should restore NoopCacheHooks")
	assert.IsType(t, NoopRetryHooks{}, Retry(), "Reset() should restore NoopRetryHooks")
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	custom := &testCacheHooks{}
	SetCacheHooks(custom)
	SetCacheHooks(nil)

	assert.Same(t, custom, Cache(), "SetCacheHooks(nil) should be ignored")
}

// Test implementations
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
type testRetryHooks struct{ NoopRetryHooks }
