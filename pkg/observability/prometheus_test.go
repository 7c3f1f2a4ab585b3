package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusHooks(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)

	p.OnMapStart(ctx, 3, 2)
	p.OnMapComplete(ctx, MapSummary{Instances: 3, Compounds: 2, Edges: 2}, 5*time.Millisecond, nil)
	p.OnMapComplete(ctx, MapSummary{}, time.Millisecond, errors.New("boom"))
	p.OnEdgeDropped(ctx, "e9", []string{"X"})
	p.OnEdgeDropped(ctx, "e10", []string{"Y", "Z"})

	if got := testutil.ToFloat64(p.mapTotal.WithLabelValues("ok")); got != 1 {
		t.Errorf("map ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(p.mapTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("map error = %v, want 1", got)
	}
	if got := testutil.ToFloat64(p.edgesDropped); got != 2 {
		t.Errorf("edges dropped = %v, want 2", got)
	}

	p.OnCacheMiss(ctx, "svg")
	p.OnCacheSet(ctx, "svg", 100)
	p.OnCacheHit(ctx, "svg")
	p.OnCacheHit(ctx, "svg")

	if got := testutil.ToFloat64(p.cacheEvents.WithLabelValues("svg", "hit")); got != 2 {
		t.Errorf("cache hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(p.cacheBytes); got != 100 {
		t.Errorf("cache bytes = %v, want 100", got)
	}

	p.OnRequest(ctx, "POST", "/v1/map")
	p.OnResponse(ctx, "POST", "/v1/map", 200, time.Millisecond)
	p.OnError(ctx, "POST", "/v1/render", errors.New("render failed"))

	if got := testutil.ToFloat64(p.httpRequests.WithLabelValues("POST", "/v1/map", "200")); got != 1 {
		t.Errorf("http requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(p.httpErrors.WithLabelValues("POST", "/v1/render")); got != 1 {
		t.Errorf("http errors = %v, want 1", got)
	}

	// Every collector is registered.
	n, err := testutil.GatherAndCount(reg)
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if n == 0 {
		t.Error("registry should expose metrics")
	}
}

func TestPrometheusDoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheus(reg)

	defer func() {
		if recover() == nil {
			t.Error("registering twice should panic")
		}
	}()
	NewPrometheus(reg)
}
