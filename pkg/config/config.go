// Package config loads the assetmap TOML configuration file.
//
// A missing file is not an error; every field has a default:
//
//	[server]
//	addr = ":8080"
//	read_timeout = "10s"
//
//	[cache]
//	backend = "file"    # file | redis | mongo | none
//	dir = ""            # defaults to $XDG_CACHE_HOME/assetmap
//	redis_addr = "localhost:6379"
//	mongo_uri = "mongodb://localhost:27017"
//	mongo_database = "assetmap"
//	ttl = "24h"
//
//	[mapping]
//	routing = "first"   # first | all-pairs
package config

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/assetmap/pkg/cache"
	"github.com/matzehuels/assetmap/pkg/errors"
	"github.com/matzehuels/assetmap/pkg/mapping"
)

// AppName names the XDG cache and config subdirectories.
const AppName = "assetmap"

// Config is the full configuration file.
type Config struct {
	Server  Server  `toml:"server"`
	Cache   Cache   `toml:"cache"`
	Mapping Mapping `toml:"mapping"`
}

// Server configures the HTTP API.
type Server struct {
	Addr        string   `toml:"addr"`
	ReadTimeout Duration `toml:"read_timeout"`
}

// Cache selects the artifact cache backend.
type Cache struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
	TTL           Duration `toml:"ttl"`
}

// Mapping configures the mapping engine.
type Mapping struct {
	Routing string `toml:"routing"`
}

// Duration is a time.Duration that decodes from strings like "10s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: Server{
			Addr:        ":8080",
			ReadTimeout: Duration{10 * time.Second},
		},
		Cache: Cache{
			Backend:       cache.BackendFile,
			RedisAddr:     "localhost:6379",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: AppName,
			TTL:           Duration{24 * time.Hour},
		},
		Mapping: Mapping{
			Routing: mapping.RouteFirstInstance.String(),
		},
	}
}

// Load reads the file at path on top of the defaults.
// An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q in %s", undecoded[0].String(), path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr must not be empty")
	}
	if c.Server.ReadTimeout.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.read_timeout must not be negative")
	}
	if !slices.Contains(cache.Backends, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend %q is not one of %v", c.Cache.Backend, cache.Backends)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if _, err := mapping.ParseRouting(c.Mapping.Routing); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "mapping.routing")
	}
	return nil
}

// CacheSettings converts the cache section for [cache.Open].
// An empty directory resolves to [CacheDir].
func (c *Config) CacheSettings() (cache.Settings, error) {
	dir := c.Cache.Dir
	if dir == "" && c.Cache.Backend == cache.BackendFile {
		d, err := CacheDir()
		if err != nil {
			return cache.Settings{}, err
		}
		dir = d
	}
	return cache.Settings{
		Backend:       c.Cache.Backend,
		Dir:           dir,
		RedisAddr:     c.Cache.RedisAddr,
		MongoURI:      c.Cache.MongoURI,
		MongoDatabase: c.Cache.MongoDatabase,
	}, nil
}

// Routing returns the parsed routing strategy.
func (c *Config) Routing() mapping.Routing {
	r, _ := mapping.ParseRouting(c.Mapping.Routing)
	return r
}

// =============================================================================
// Paths
// =============================================================================

// CacheDir returns the cache directory using XDG standard (~/.cache/assetmap/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// DefaultPath returns the default config file location
// (~/.config/assetmap/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}
