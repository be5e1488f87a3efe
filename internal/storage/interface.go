package storage

import "context"

// Backend is a durable key/value store the snapshot is written to
type Backend interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Values. Get returns ErrNotFound for a missing key.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by backends with a versioned schema
type Migrator interface {
	// Migrate applies pending migrations and returns how many ran.
	Migrate(ctx context.Context, logFn func(string)) (int, error)
	// SchemaVersion returns the applied and the latest known schema version.
	SchemaVersion(ctx context.Context) (current, latest int, err error)
}
