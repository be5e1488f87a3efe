package system

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/julianstephens/dayone/internal/cli"
	"github.com/julianstephens/dayone/internal/curriculum"
	"github.com/julianstephens/dayone/internal/models"
	"github.com/julianstephens/dayone/internal/storage"
	"github.com/julianstephens/dayone/internal/storage/sqlite"
)

func setupTestContext(t *testing.T) (*cli.Context, *sqlite.Store, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)

	ctx := cli.NewContext(store, curriculum.Default(), cli.Settings{})
	ctx.Notifier = nil

	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return ctx, store, dbPath
}

func setupInitializedContext(t *testing.T) (*cli.Context, *sqlite.Store) {
	t.Helper()
	ctx, store, _ := setupTestContext(t)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	return ctx, store
}

// onboardingSnapshot is a user on day 2 with day 1 complete.
func onboardingSnapshot() models.PersistedSnapshot {
	snap := models.DefaultSnapshot()
	snap.AppState = models.AppStateOnboarding
	snap.User.Name = "Ada"
	snap.User.Role = "engineer"
	snap.User.OnboardingDay = 2
	snap.User.DayProgress[1] = models.DayProgressRecord{
		Day:                 1,
		Completed:           true,
		CompletedAt:         "2026-01-05T09:00:00Z",
		UnlockedViaOverride: true,
		Tasks: []models.TaskMarker{
			{ID: "m1", ModuleID: "welcome-video", CompletedAt: "2026-01-05T09:00:00Z", Source: models.TaskSourceOverride},
		},
	}
	return snap
}

func saveSnapshot(t *testing.T, store *storage.Adapter, snap models.PersistedSnapshot) {
	t.Helper()
	if err := store.Save(context.Background(), snap); err != nil {
		t.Fatalf("failed to save snapshot: %v", err)
	}
}

func loadSnapshot(t *testing.T, store *storage.Adapter) *models.PersistedSnapshot {
	t.Helper()
	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("failed to load snapshot: %v", err)
	}
	return snap
}
