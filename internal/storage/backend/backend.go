// Package backend picks a storage.Backend from a --config value.
package backend

import (
	"fmt"
	"strings"

	"github.com/julianstephens/dayone/internal/constants"
	"github.com/julianstephens/dayone/internal/storage"
	"github.com/julianstephens/dayone/internal/storage/postgres"
	"github.com/julianstephens/dayone/internal/storage/redis"
	"github.com/julianstephens/dayone/internal/storage/sqlite"
	"github.com/julianstephens/dayone/internal/utils"
)

// Kind names a backend family
type Kind string

const (
	KindPostgres Kind = "postgres"
	KindRedis    Kind = "redis"
	KindMemory   Kind = "memory"
	KindSQLite   Kind = "sqlite"
	KindFile     Kind = "file"
)

// Detect classifies a config value.
func Detect(config string) Kind {
	switch {
	case postgres.IsURL(config), strings.Contains(config, "host="):
		return KindPostgres
	case strings.HasPrefix(config, constants.SchemeRedis), strings.HasPrefix(config, constants.SchemeRediss):
		return KindRedis
	case strings.HasPrefix(config, constants.SchemeMemory):
		return KindMemory
	case strings.HasSuffix(config, constants.SuffixSQLite):
		return KindSQLite
	default:
		return KindFile
	}
}

// Options carries secrets that never appear in the config value itself
type Options struct {
	RedisPassword string
}

// New returns the backend for config without connecting to it.
func New(config string, opts Options) (storage.Backend, error) {
	config = strings.TrimSpace(config)
	if config == "" {
		return nil, fmt.Errorf("empty storage config")
	}

	switch Detect(config) {
	case KindPostgres:
		return postgres.New(config), nil
	case KindRedis:
		return redis.NewStore(config, opts.RedisPassword), nil
	case KindMemory:
		return storage.NewMemoryBackend(), nil
	case KindSQLite:
		path, err := utils.ExpandPath(config)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", config, err)
		}
		return sqlite.NewStore(path), nil
	default:
		dir, err := utils.ExpandPath(config)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", config, err)
		}
		return storage.NewFileBackend(dir), nil
	}
}
