// Package pipeline provides the map → export → render pipeline for assetmap.
//
// The CLI and the HTTP API both drive the mapping engine through this
// package, so validation, logging, hooks and artifact caching behave the
// same at every entry point.
//
// # Stages
//
//  1. Map: validate the inventory and build the compound graph ([mapping])
//  2. Export: flatten the result into render-ready elements ([graph])
//  3. Render: produce json, dot, svg, pdf or png artifacts
//
// Only rendered pictures are cached. The mapping always runs, because every
// pass mints fresh identifiers; json artifacts are never cached for the
// same reason.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, inv, pipeline.Options{
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/assetmap/pkg/cache"
	"github.com/matzehuels/assetmap/pkg/errors"
	"github.com/matzehuels/assetmap/pkg/graph"
	"github.com/matzehuels/assetmap/pkg/mapping"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultRankDir is the default Graphviz rank direction.
	DefaultRankDir = "TB"

	// DefaultScale is the default PNG zoom factor.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPDF:  true,
	FormatPNG:  true,
}

// ValidRankDirs is the set of supported Graphviz rank directions.
var ValidRankDirs = map[string]bool{
	"TB": true,
	"LR": true,
	"BT": true,
	"RL": true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Mapping options
	Routing string `json:"routing,omitempty"`
	Pass    string `json:"pass,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	RankDir  string   `json:"rank_dir,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Refresh  bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	TTL    time.Duration `json:"-"`
	Logger *log.Logger   `json:"-"`

	routing   mapping.Routing
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Mapping is the compound graph of this pass.
	Mapping *mapping.Result

	// Elements is the flattened, render-ready form of Mapping.
	Elements []graph.Element

	// ContentHash identifies the pass-independent content of Mapping.
	ContentHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains counts and timing information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	mapping.Stats
	MapTime    time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for rendered artifacts.
type CacheInfo struct {
	Hits      []string // formats served from cache
	RenderHit bool     // every cacheable format came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, dot, svg, pdf, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRankDir checks that a rank direction is valid.
func ValidateRankDir(dir string) error {
	if !ValidRankDirs[dir] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid rank_dir: %q (must be one of: TB, LR, BT, RL)", dir)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForMap(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForMap parses the routing strategy.
func (o *Options) ValidateForMap() error {
	r, err := mapping.ParseRouting(o.Routing)
	if err != nil {
		return err
	}
	o.routing = r
	o.Routing = r.String()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.RankDir == "" {
		o.RankDir = DefaultRankDir
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.TTL == 0 {
		o.TTL = cache.TTLArtifact
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	o.Formats = dedupeFormats(o.Formats)
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "scale must be positive")
	}
	return ValidateRankDir(o.RankDir)
}

// MapperOptions returns the mapping engine options.
func (o *Options) MapperOptions() mapping.Options {
	return mapping.Options{
		Routing: o.routing,
		Pass:    o.Pass,
		Logger:  o.Logger,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:   format,
		Routing:  o.Routing,
		Detailed: o.Detailed,
		RankDir:  o.RankDir,
		Pass:     o.Pass,
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// Cacheable reports whether artifacts of the format may be cached.
// JSON carries the identifiers of one pass and is always regenerated.
func Cacheable(format string) bool {
	return format != FormatJSON
}

func dedupeFormats(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := formats[:0:0]
	for _, f := range formats {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
