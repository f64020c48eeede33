// Package metrics implements the observability hooks with Prometheus collectors.
//
// Collectors are registered on a caller-supplied registry so that tests and
// the CLI never touch the global default registry.
package metrics

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/launchdeck/pkg/observability"
)

const namespace = "launchdeck"

// Metrics holds the collectors and satisfies the cache, HTTP and retry hook
// interfaces.
type Metrics struct {
	CacheOps     *prometheus.CounterVec
	HTTPRequests *prometheus.CounterVec
	HTTPErrors   *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	Retries      prometheus.Counter

	reg prometheus.Gatherer
}

var (
	_ observability.CacheHooks = (*Metrics)(nil)
	_ observability.HTTPHooks  = (*Metrics)(nil)
	_ observability.RetryHooks = (*Metrics)(nil)
)

// New creates the collectors and registers them on reg.
// It panics if registration fails, like prometheus.MustRegister.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		CacheOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_operations_total",
				Help:      "Cache operations",
			},
			[]string{"op", "key_type"}, // hit|miss|store|coalesced
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Responses received from the launch API",
			},
			[]string{"path", "status"},
		),
		HTTPErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_connection_errors_total",
				Help:      "Requests that failed without a response",
			},
			[]string{"path"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Latency of launch API requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"path"},
		),
		Retries: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "retries_total",
				Help:      "Failed attempts that were retried",
			},
		),
		reg: reg,
	}
	reg.MustRegister(m.CacheOps, m.HTTPRequests, m.HTTPErrors, m.HTTPDuration, m.Retries)
	return m
}

// Install registers m as the process-wide cache, HTTP and retry hooks.
func (m *Metrics) Install() {
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
	observability.SetRetryHooks(m)
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.CacheOps.WithLabelValues("hit", keyType).Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.CacheOps.WithLabelValues("miss", keyType).Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string) {
	m.CacheOps.WithLabelValues("store", keyType).Inc()
}

func (m *Metrics) OnCacheCoalesced(_ context.Context, keyType string) {
	m.CacheOps.WithLabelValues("coalesced", keyType).Inc()
}

func (m *Metrics) OnRequest(context.Context, string, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, _, _, path string, statusCode int, d time.Duration) {
	route := routeLabel(path)
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(statusCode)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(d.Seconds())
}

func (m *Metrics) OnError(_ context.Context, _, _, path string, _ error) {
	m.HTTPErrors.WithLabelValues(routeLabel(path)).Inc()
}

// fixedLaunchRoutes are the /launches/ children that are not launch IDs.
var fixedLaunchRoutes = map[string]bool{"upcoming": true, "past": true, "search": true}

// routeLabel collapses launch IDs in path to ":id" so the path label stays
// bounded. Any base path in front of /launches is kept.
func routeLabel(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "launches" && parts[i+1] != "" && !fixedLaunchRoutes[parts[i+1]] {
			parts[i+1] = ":id"
		}
	}
	return strings.Join(parts, "/")
}

func (m *Metrics) OnRetry(context.Context, int, time.Duration, error) {
	m.Retries.Inc()
}

// Sample is one counter value flattened for display.
type Sample struct {
	Name   string
	Labels string
	Value  float64
}

// Summary gathers every counter and histogram count from the registry.
// Histograms are reported as their sample count.
func (m *Metrics) Summary() ([]Sample, error) {
	families, err := m.reg.Gather()
	if err != nil {
		return nil, err
	}

	var out []Sample
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			var labels []string
			for _, lp := range metric.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			sort.Strings(labels)

			s := Sample{Name: mf.GetName(), Labels: strings.Join(labels, ",")}
			switch {
			case metric.GetCounter() != nil:
				s.Value = metric.GetCounter().GetValue()
			case metric.GetHistogram() != nil:
				s.Value = float64(metric.GetHistogram().GetSampleCount())
			default:
				continue
			}
			out = append(out, s)
		}
	}
	return out, nil
}
