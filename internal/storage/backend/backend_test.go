package backend

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/dayone/internal/storage"
	"github.com/julianstephens/dayone/internal/storage/postgres"
	"github.com/julianstephens/dayone/internal/storage/redis"
	"github.com/julianstephens/dayone/internal/storage/sqlite"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		config string
		want   Kind
	}{
		{"postgres://onboard@localhost/hr", KindPostgres},
		{"postgresql://onboard@localhost/hr", KindPostgres},
		{"host=localhost dbname=hr", KindPostgres},
		{"redis://localhost:6379/0", KindRedis},
		{"rediss://cache:6380", KindRedis},
		{"memory:", KindMemory},
		{"~/.config/dayone/dayone.db", KindSQLite},
		{"/tmp/dayone-state", KindFile},
	}
	for _, tt := range tests {
		if got := Detect(tt.config); got != tt.want {
			t.Errorf("Detect(%q) = %s, want %s", tt.config, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		config string
		check  func(storage.Backend) bool
	}{
		{"postgres", "postgres://onboard@localhost/hr", func(b storage.Backend) bool { _, ok := b.(*postgres.Store); return ok }},
		{"redis", "redis://localhost:6379", func(b storage.Backend) bool { _, ok := b.(*redis.Store); return ok }},
		{"memory", "memory:", func(b storage.Backend) bool { _, ok := b.(*storage.MemoryBackend); return ok }},
		{"sqlite", filepath.Join(dir, "x.db"), func(b storage.Backend) bool { _, ok := b.(*sqlite.Store); return ok }},
		{"file", filepath.Join(dir, "state"), func(b storage.Backend) bool { _, ok := b.(*storage.FileBackend); return ok }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(tt.config, Options{})
			if err != nil {
				t.Fatalf("New(%q) error: %v", tt.config, err)
			}
			if !tt.check(b) {
				t.Errorf("New(%q) returned %T", tt.config, b)
			}
		})
	}

	if _, err := New("  ", Options{}); err == nil {
		t.Error("expected error for empty config")
	}
}
