package system

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/dayone/internal/models"
	"github.com/julianstephens/dayone/internal/storage"
)

func TestExportImportRoundTrip(t *testing.T) {
	ctx, _ := setupInitializedContext(t)
	saveSnapshot(t, ctx.Store, onboardingSnapshot())

	file := filepath.Join(t.TempDir(), "progress.json")
	if err := (&ExportCmd{File: file}).Run(ctx); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	info, err := os.Stat(file)
	if err != nil {
		t.Fatalf("export file missing: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("export file perm = %o, want 600", perm)
	}

	dest, _ := setupInitializedContext(t)
	if err := (&ImportCmd{File: file}).Run(dest); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	snap := loadSnapshot(t, dest.Store)
	if snap == nil {
		t.Fatal("import did not persist the snapshot")
	}
	if snap.AppState != models.AppStateOnboarding || snap.User.Name != "Ada" || snap.User.OnboardingDay != 2 {
		t.Errorf("imported snapshot = %s %+v", snap.AppState, snap.User)
	}
	if !snap.User.DayProgress[1].Completed {
		t.Error("day 1 completion lost in round trip")
	}
}

func TestExportFreshStore(t *testing.T) {
	ctx, _ := setupInitializedContext(t)

	file := filepath.Join(t.TempDir(), "progress.json")
	if err := (&ExportCmd{File: file}).Run(ctx); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	snap, err := storage.Decode(data, ctx.Curriculum.DayCount())
	if err != nil {
		t.Fatalf("export is not a valid snapshot: %v", err)
	}
	if snap.AppState != models.AppStateRoleSelection {
		t.Errorf("appState = %s, want ROLE_SELECTION", snap.AppState)
	}
}

func TestImportRejectsInvalidSnapshots(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "{"},
		{"unknown state", `{"appState":"LOBBY","user":{"onboardingDay":1,"onboardingComplete":false,"dayProgress":{}}}`},
		{"day out of range", `{"appState":"ONBOARDING","user":{"onboardingDay":9,"onboardingComplete":false,"dayProgress":{}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupInitializedContext(t)
			saveSnapshot(t, ctx.Store, onboardingSnapshot())

			file := filepath.Join(t.TempDir(), "bad.json")
			if err := os.WriteFile(file, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("failed to write file: %v", err)
			}

			err := (&ImportCmd{File: file}).Run(ctx)
			if err == nil || !strings.Contains(err.Error(), "invalid snapshot") {
				t.Errorf("error = %v, want invalid snapshot", err)
			}

			snap := loadSnapshot(t, ctx.Store)
			if snap == nil || snap.User.Name != "Ada" {
				t.Error("rejected import changed stored progress")
			}
		})
	}
}

func TestImportMissingFile(t *testing.T) {
	ctx, _ := setupInitializedContext(t)

	err := (&ImportCmd{File: filepath.Join(t.TempDir(), "missing.json")}).Run(ctx)
	if err == nil {
		t.Error("import of a missing file should fail")
	}
}
