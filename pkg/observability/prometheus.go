package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus implements all hook interfaces with Prometheus collectors.
type Prometheus struct {
	mapTotal      *prometheus.CounterVec
	mapDuration   prometheus.Histogram
	mapInstances  prometheus.Histogram
	edgesDropped  prometheus.Counter
	renderTotal   *prometheus.CounterVec
	renderLatency prometheus.Histogram
	cacheEvents   *prometheus.CounterVec
	cacheBytes    prometheus.Counter
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	httpErrors    *prometheus.CounterVec
}

// NewPrometheus creates the collectors and registers them with reg.
// It panics if a collector is already registered, like MustRegister.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		mapTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assetmap_map_total",
				Help: "Number of mapping passes by outcome.",
			},
			[]string{"outcome"},
		),
		mapDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "assetmap_map_duration_seconds",
				Help:    "Time taken by one mapping pass.",
				Buckets: prometheus.DefBuckets,
			},
		),
		mapInstances: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "assetmap_map_instances",
				Help:    "Display instances produced per mapping pass.",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		edgesDropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "assetmap_edges_dropped_total",
				Help: "Source edges dropped because an endpoint was unknown.",
			},
		),
		renderTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assetmap_render_total",
				Help: "Number of render runs by outcome.",
			},
			[]string{"outcome"},
		),
		renderLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "assetmap_render_duration_seconds",
				Help:    "Time taken to render all requested formats.",
				Buckets: prometheus.DefBuckets,
			},
		),
		cacheEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assetmap_cache_events_total",
				Help: "Artifact cache events by format and event (hit, miss, set).",
			},
			[]string{"format", "event"},
		),
		cacheBytes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "assetmap_cache_written_bytes_total",
				Help: "Bytes written to the artifact cache.",
			},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assetmap_http_requests_total",
				Help: "HTTP requests by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assetmap_http_request_duration_seconds",
				Help:    "HTTP request latency by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		httpErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assetmap_http_errors_total",
				Help: "HTTP requests that failed with a server error.",
			},
			[]string{"method", "route"},
		),
	}

	reg.MustRegister(
		p.mapTotal,
		p.mapDuration,
		p.mapInstances,
		p.edgesDropped,
		p.renderTotal,
		p.renderLatency,
		p.cacheEvents,
		p.cacheBytes,
		p.httpRequests,
		p.httpDuration,
		p.httpErrors,
	)
	return p
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// OnMapStart implements PipelineHooks.
func (p *Prometheus) OnMapStart(context.Context, int, int) {}

// OnMapComplete implements PipelineHooks.
func (p *Prometheus) OnMapComplete(_ context.Context, s MapSummary, d time.Duration, err error) {
	p.mapTotal.WithLabelValues(outcome(err)).Inc()
	p.mapDuration.Observe(d.Seconds())
	if err == nil {
		p.mapInstances.Observe(float64(s.Instances))
	}
}

// OnEdgeDropped implements PipelineHooks.
func (p *Prometheus) OnEdgeDropped(context.Context, string, []string) {
	p.edgesDropped.Inc()
}

// OnRenderStart implements PipelineHooks.
func (p *Prometheus) OnRenderStart(context.Context, []string) {}

// OnRenderComplete implements PipelineHooks.
func (p *Prometheus) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	p.renderTotal.WithLabelValues(outcome(err)).Inc()
	p.renderLatency.Observe(d.Seconds())
}

// OnCacheHit implements CacheHooks.
func (p *Prometheus) OnCacheHit(_ context.Context, format string) {
	p.cacheEvents.WithLabelValues(format, "hit").Inc()
}

// OnCacheMiss implements CacheHooks.
func (p *Prometheus) OnCacheMiss(_ context.Context, format string) {
	p.cacheEvents.WithLabelValues(format, "miss").Inc()
}

// OnCacheSet implements CacheHooks.
func (p *Prometheus) OnCacheSet(_ context.Context, format string, size int) {
	p.cacheEvents.WithLabelValues(format, "set").Inc()
	p.cacheBytes.Add(float64(size))
}

// OnRequest implements HTTPHooks.
func (p *Prometheus) OnRequest(context.Context, string, string) {}

// OnResponse implements HTTPHooks.
func (p *Prometheus) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// OnError implements HTTPHooks.
func (p *Prometheus) OnError(_ context.Context, method, route string, _ error) {
	p.httpErrors.WithLabelValues(method, route).Inc()
}

var (
	_ PipelineHooks = (*Prometheus)(nil)
	_ CacheHooks    = (*Prometheus)(nil)
	_ HTTPHooks     = (*Prometheus)(nil)
)
