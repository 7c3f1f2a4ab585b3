package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Backends lists the valid backend names.
var Backends = []string{BackendFile, BackendRedis, BackendMongo, BackendNone}

// Settings selects and configures a cache backend.
type Settings struct {
	Backend       string
	Dir           string
	RedisAddr     string
	MongoURI      string
	MongoDatabase string
}

// Open creates the backend named by s.Backend. An empty backend means "file".
func Open(ctx context.Context, s Settings) (Cache, error) {
	switch s.Backend {
	case BackendFile, "":
		c, err := NewFileCache(s.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, s.RedisAddr)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendMongo:
		c, err := NewMongoCache(ctx, s.MongoURI, s.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, s.Backend)
}
