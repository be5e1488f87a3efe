package system

import (
	"context"
	"testing"

	"github.com/julianstephens/dayone/internal/cli"
	"github.com/julianstephens/dayone/internal/curriculum"
	"github.com/julianstephens/dayone/internal/storage"
)

func TestMigrateCmd_UpToDate(t *testing.T) {
	ctx, store := setupInitializedContext(t)

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	current, latest, err := store.SchemaVersion(context.Background())
	if err != nil {
		t.Fatalf("failed to read schema version: %v", err)
	}
	if current != latest {
		t.Errorf("schema version = %d, want %d", current, latest)
	}
}

func TestMigrateCmd_AppliesPending(t *testing.T) {
	ctx, store := setupInitializedContext(t)
	saveSnapshot(t, ctx.Store, onboardingSnapshot())

	if _, err := store.GetDB().Exec("DELETE FROM schema_version"); err != nil {
		t.Fatalf("failed to delete schema version: %v", err)
	}

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if err := checkMigrationsComplete(ctx); err != nil {
		t.Errorf("migrations still incomplete: %v", err)
	}
	if loadSnapshot(t, ctx.Store) == nil {
		t.Error("re-running migrations lost stored progress")
	}
}

func TestMigrateCmd_NoSchema(t *testing.T) {
	ctx := cli.NewContext(storage.NewMemoryBackend(), curriculum.Default(), cli.Settings{})

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Errorf("migrate on a schemaless backend should be a no-op: %v", err)
	}
}
