// Package cache stores rendered artifacts keyed by graph shape.
//
// Mapping results are never cached: identifiers are minted per pass, so only
// pass-independent outputs (DOT, SVG, PDF, PNG) are stored. Keys are derived
// from the identifier-free shape of a result plus the render options.
//
// Backends:
//   - [FileCache]: local directory, used by the CLI
//   - [RedisCache]: shared cache for server deployments
//   - [MongoCache]: document store with a TTL index
//   - [NullCache]: disables caching
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	// A missing or expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of a rendered artifact.
	ArtifactKey(shapeHash string, opts ArtifactKeyOpts) string
}

// TTLArtifact is the default lifetime of a rendered artifact.
const TTLArtifact = 24 * time.Hour

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Routing  string  `json:"routing"`
	Detailed bool    `json:"detailed"`
	RankDir  string  `json:"rank_dir"`
	Scale    float64 `json:"scale,omitempty"`
	// Pass is set only when the caller pins identifiers, so that pinned
	// runs never receive artifacts carrying another pass's identifiers.
	Pass string `json:"pass,omitempty"`
}

// DefaultKeyer produces "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey generates a key for artifact caching.
func (DefaultKeyer) ArtifactKey(shapeHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", shapeHash, opts)
}
