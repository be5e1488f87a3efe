package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/julianstephens/dayone/internal/constants"
	"github.com/julianstephens/dayone/internal/logger"
	"github.com/julianstephens/dayone/internal/models"
)

// writeAttempts is the initial write plus one retry
const writeAttempts = 2

// Adapter reads and writes the single persisted snapshot through a Backend.
// After a write fails twice in a row it stops touching the backend and keeps
// the latest snapshot in memory for the rest of the session.
type Adapter struct {
	mu       sync.Mutex
	backend  Backend
	key      string
	dayCount int
	degraded bool
	memory   []byte
}

// Option configures an Adapter
type Option func(*Adapter)

// WithKey stores the snapshot under key instead of constants.SnapshotKey.
func WithKey(key string) Option {
	return func(a *Adapter) { a.key = key }
}

// WithDayCount validates loaded snapshots against a program of n days.
func WithDayCount(n int) Option {
	return func(a *Adapter) { a.dayCount = n }
}

// NewAdapter wraps backend.
func NewAdapter(backend Backend, opts ...Option) *Adapter {
	a := &Adapter{
		backend:  backend,
		key:      constants.SnapshotKey,
		dayCount: 5,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Key returns the key the snapshot is stored under.
func (a *Adapter) Key() string { return a.key }

// Degraded reports whether the adapter has fallen back to memory.
func (a *Adapter) Degraded() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.degraded
}

// Decode parses and validates a stored snapshot for a program of dayCount days.
func Decode(data []byte, dayCount int) (*models.PersistedSnapshot, error) {
	var snap models.PersistedSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if err := snap.Validate(dayCount); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Encode serializes a snapshot in its stored form.
func Encode(snap models.PersistedSnapshot) ([]byte, error) {
	return json.Marshal(snap)
}

// Load returns the stored snapshot, or nil when nothing is stored. A value that
// does not decode returns nil and a *CorruptStateError.
func (a *Adapter) Load(ctx context.Context) (*models.PersistedSnapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var data []byte
	if a.degraded {
		if a.memory == nil {
			return nil, nil
		}
		data = a.memory
	} else {
		raw, err := a.backend.Get(ctx, a.key)
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot: %w", err)
		}
		data = raw
	}

	snap, err := Decode(data, a.dayCount)
	if err != nil {
		return nil, &CorruptStateError{Key: a.key, Err: err}
	}
	return snap, nil
}

// Save writes the full snapshot with a single backend call, retrying once.
// The first failure that exhausts the retry is returned as a
// *PersistenceWriteError; later saves stay in memory and return nil.
func (a *Adapter) Save(ctx context.Context, snap models.PersistedSnapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.degraded {
		a.memory = data
		return nil
	}

	var lastErr error
	for attempt := 1; attempt <= writeAttempts; attempt++ {
		if lastErr = a.backend.Set(ctx, a.key, data); lastErr == nil {
			return nil
		}
		logger.Debug("Snapshot write failed", "attempt", attempt, "error", lastErr)
		if ctx.Err() != nil {
			break
		}
	}

	a.degraded = true
	a.memory = data
	logger.Warn("Storage rejected snapshot writes, keeping progress in memory for this session",
		"backend", a.backend.GetConfigPath(), "error", lastErr)
	return &PersistenceWriteError{Key: a.key, Attempts: writeAttempts, Err: lastErr}
}

// Clear removes the stored snapshot. A degraded adapter still deletes the last
// snapshot the backend accepted; a failure there is logged, not returned.
func (a *Adapter) Clear(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.memory = nil
	err := a.backend.Delete(ctx, a.key)
	if err == nil || errors.Is(err, ErrNotFound) {
		return nil
	}
	if a.degraded {
		logger.Warn("Failed to clear stored snapshot on degraded backend",
			"backend", a.backend.GetConfigPath(), "error", err)
		return nil
	}
	return fmt.Errorf("failed to clear snapshot: %w", err)
}
