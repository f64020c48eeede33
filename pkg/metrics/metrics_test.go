package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/launchdeck/pkg/observability"
)

func TestCacheCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())
	ctx := context.Background()

	m.OnCacheHit(ctx, "stats")
	m.OnCacheHit(ctx, "stats")
	m.OnCacheMiss(ctx, "stats")
	m.OnCacheSet(ctx, "series")
	m.OnCacheCoalesced(ctx, "launches")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheOps.WithLabelValues("hit", "stats")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheOps.WithLabelValues("miss", "stats")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheOps.WithLabelValues("store", "series")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheOps.WithLabelValues("coalesced", "launches")))
}

func TestHTTPAndRetryCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())
	ctx := context.Background()

	m.OnRequest(ctx, "GET", "localhost", "/statistics")
	m.OnResponse(ctx, "GET", "localhost", "/statistics", 200, 20*time.Millisecond)
	m.OnResponse(ctx, "GET", "localhost", "/statistics", 503, 5*time.Millisecond)
	m.OnError(ctx, "GET", "localhost", "/health", errors.New("refused"))
	m.OnRetry(ctx, 1, time.Second, errors.New("refused"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/statistics", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/statistics", "503")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPErrors.WithLabelValues("/health")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Retries))
}

func TestLaunchIDsShareOneSeries(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	ctx := context.Background()

	for _, id := range []string{"5eb87cd9ffd86e000604b32a", "5eb87ce0ffd86e000604b32b", "abc"} {
		m.OnResponse(ctx, "GET", "localhost", "/launches/"+id, 200, time.Millisecond)
	}
	m.OnError(ctx, "GET", "localhost", "/launches/xyz", errors.New("refused"))
	m.OnResponse(ctx, "GET", "localhost", "/launches/upcoming", 200, time.Millisecond)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/launches/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPErrors.WithLabelValues("/launches/:id")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/launches/upcoming", "200")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.HTTPRequests))
	assert.Equal(t, 2, testutil.CollectAndCount(m.HTTPDuration))
}

func TestRouteLabel(t *testing.T) {
	tests := map[string]string{
		"/launches":               "/launches",
		"/launches/":              "/launches/",
		"/launches/upcoming":      "/launches/upcoming",
		"/launches/past":          "/launches/past",
		"/launches/search":        "/launches/search",
		"/launches/42":            "/launches/:id",
		"/api/v4/launches/abc123": "/api/v4/launches/:id",
		"/launches-by-year":       "/launches-by-year",
		"/statistics":             "/statistics",
		"/health":                 "/health",
	}
	for in, want := range tests {
		assert.Equal(t, want, routeLabel(in), in)
	}
}

func TestInstall(t *testing.T) {
	t.Cleanup(observability.Reset)

	m := New(prometheus.NewRegistry())
	m.Install()

	observability.Cache().OnCacheMiss(context.Background(), "stats")
	observability.Retry().OnRetry(context.Background(), 2, time.Second, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheOps.WithLabelValues("miss", "stats")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Retries))
}

func TestSummary(t *testing.T) {
	m := New(prometheus.NewRegistry())
	ctx := context.Background()

	m.OnCacheHit(ctx, "stats")
	m.OnResponse(ctx, "GET", "localhost", "/statistics", 200, time.Millisecond)
	m.OnResponse(ctx, "GET", "localhost", "/statistics", 200, time.Millisecond)

	samples, err := m.Summary()
	require.NoError(t, err)

	byKey := map[string]float64{}
	for _, s := range samples {
		byKey[s.Name+"{"+s.Labels+"}"] = s.Value
	}
	assert.Equal(t, 1.0, byKey["launchdeck_cache_operations_total{key_type=stats,op=hit}"])
	assert.Equal(t, 2.0, byKey["launchdeck_http_requests_total{path=/statistics,status=200}"])
	assert.Equal(t, 2.0, byKey["launchdeck_http_request_duration_seconds{path=/statistics}"])
	assert.Equal(t, 0.0, byKey["launchdeck_retries_total{}"])
}
