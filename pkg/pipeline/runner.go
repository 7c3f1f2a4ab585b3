package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/assetmap/pkg/cache"
	"github.com/matzehuels/assetmap/pkg/graph"
	"github.com/matzehuels/assetmap/pkg/inventory"
	"github.com/matzehuels/assetmap/pkg/mapping"
	"github.com/matzehuels/assetmap/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete map → export → render pipeline.
func (r *Runner) Execute(ctx context.Context, inv inventory.Inventory, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Map
	mapStart := time.Now()
	res, err := r.Map(ctx, inv, opts)
	if err != nil {
		return nil, err
	}
	result.Mapping = res
	result.Stats.Stats = res.Stats()
	result.Stats.MapTime = time.Since(mapStart)

	r.Logger.Info("mapped inventory",
		"nodes", result.Stats.Nodes,
		"instances", result.Stats.Instances,
		"compounds", result.Stats.Compounds,
		"edges", result.Stats.Edges,
		"dropped", result.Stats.Dropped,
		"duration", result.Stats.MapTime)

	// Stage 2: Export
	result.Elements = graph.FromResult(res)
	result.ContentHash, err = ContentHash(res)
	if err != nil {
		return nil, fmt.Errorf("hash mapping: %w", err)
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, info, err := r.RenderWithCacheInfo(ctx, result.Elements, result.ContentHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo = info
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", info.Hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Map validates the inventory and runs one mapping pass, reporting the
// pass to the registered pipeline hooks.
func (r *Runner) Map(ctx context.Context, inv inventory.Inventory, opts Options) (*mapping.Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForMap(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnMapStart(ctx, len(inv.Nodes), len(inv.Edges))

	start := time.Now()
	res, err := mapping.New(opts.MapperOptions()).Map(inv.Nodes, inv.Edges)
	if err != nil {
		hooks.OnMapComplete(ctx, observability.MapSummary{}, time.Since(start), err)
		return nil, err
	}

	for _, w := range res.Warnings {
		hooks.OnEdgeDropped(ctx, w.EdgeID, w.Missing)
	}
	hooks.OnMapComplete(ctx, observability.MapSummary{
		Instances: len(res.Instances),
		Compounds: len(res.Compounds),
		Edges:     len(res.Edges),
		Dropped:   len(res.Warnings),
		Conflicts: len(res.Conflicts),
	}, time.Since(start), nil)

	return res, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns which
// formats were served from the cache. contentHash is the [ContentHash] of
// the mapping the elements were exported from.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, elems []graph.Element, contentHash string, opts Options) (map[string][]byte, CacheInfo, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, CacheInfo{}, err
	}

	hooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	var info CacheInfo
	var missing []string
	cacheable := 0

	for _, format := range opts.Formats {
		if !Cacheable(format) {
			missing = append(missing, format)
			continue
		}
		cacheable++
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(contentHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				r.Logger.Warn("cache read failed", "format", format, "error", err)
			}
			if err == nil && hit {
				hooks.OnCacheHit(ctx, format)
				artifacts[format] = data
				info.Hits = append(info.Hits, format)
				continue
			}
		}
		hooks.OnCacheMiss(ctx, format)
		missing = append(missing, format)
	}
	info.RenderHit = cacheable > 0 && len(info.Hits) == cacheable

	if len(missing) == 0 {
		return artifacts, info, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing

	pipelineHooks := observability.Pipeline()
	pipelineHooks.OnRenderStart(ctx, missing)
	start := time.Now()
	rendered, err := Render(ctx, elems, renderOpts)
	pipelineHooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, CacheInfo{}, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		if !Cacheable(format) {
			continue
		}
		key := r.Keyer.ArtifactKey(contentHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		hooks.OnCacheSet(ctx, format, len(data))
	}

	return artifacts, info, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// content is the pass-independent description hashed by ContentHash.
type content struct {
	Shape          mapping.Shape `json:"shape"`
	Labels         []string      `json:"labels"`
	Classification []string      `json:"classification"`
	EdgeLabels     []string      `json:"edge_labels"`
}

// ContentHash hashes everything that affects a rendered picture except
// generated identifiers: the structural shape, display labels,
// classifications and relationship labels.
func ContentHash(res *mapping.Result) (string, error) {
	c := content{
		Shape:          res.Shape(),
		Labels:         make([]string, len(res.Instances)),
		Classification: make([]string, len(res.Instances)),
		EdgeLabels:     make([]string, len(res.Edges)),
	}
	for i, in := range res.Instances {
		c.Labels[i] = in.Label
		c.Classification[i] = in.Classification
	}
	for i, e := range res.Edges {
		c.EdgeLabels[i] = e.Label
	}
	return cache.HashJSON(c)
}
