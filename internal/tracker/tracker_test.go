package tracker

import (
	"errors"
	"testing"

	"github.com/julianstephens/dayone/internal/models"
)

func TestNew_Threshold(t *testing.T) {
	ids := []string{"a", "b", "c"}
	tests := []struct {
		name      string
		threshold int
		want      int
	}{
		{"zero means all", 0, 3},
		{"negative means all", -1, 3},
		{"partial", 2, 2},
		{"above total clamps", 5, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(1, ids, tt.threshold)
			if tr.Threshold() != tt.want {
				t.Errorf("threshold = %d, want %d", tr.Threshold(), tt.want)
			}
			if tr.Total() != 3 {
				t.Errorf("total = %d, want 3", tr.Total())
			}
		})
	}
}

func TestMarkComplete(t *testing.T) {
	tr := New(2, []string{"a", "b"}, 0)
	var fired []int
	tr.OnSatisfied(func(day int) { fired = append(fired, day) })

	count, err := tr.MarkComplete("a")
	if err != nil || count != 1 {
		t.Fatalf("MarkComplete(a) = %d, %v", count, err)
	}
	if tr.IsSatisfied() || len(fired) != 0 {
		t.Fatal("satisfied after one of two modules")
	}

	count, err = tr.MarkComplete("a")
	if err != nil || count != 1 {
		t.Errorf("repeat MarkComplete(a) = %d, %v, want 1, nil", count, err)
	}

	count, _ = tr.MarkComplete("b")
	if count != 2 || !tr.IsSatisfied() {
		t.Errorf("count = %d satisfied = %v", count, tr.IsSatisfied())
	}
	if len(fired) != 1 || fired[0] != 2 {
		t.Errorf("fired = %v, want [2]", fired)
	}

	tr.MarkComplete("b")
	if len(fired) != 1 {
		t.Errorf("satisfied signal fired %d times", len(fired))
	}
}

func TestMarkComplete_UnknownModule(t *testing.T) {
	tr := New(3, []string{"a"}, 0)

	_, err := tr.MarkComplete("zzz")

	var unknown *UnknownModuleError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %v, want UnknownModuleError", err)
	}
	if unknown.Day != 3 || unknown.ModuleID != "zzz" {
		t.Errorf("error = %+v", unknown)
	}
	if tr.Completed() != 0 {
		t.Errorf("completed = %d, want 0", tr.Completed())
	}
}

func TestSetProgress(t *testing.T) {
	tests := []struct {
		name       string
		pct        int
		wantDone   bool
		wantStatus models.Status
		wantPct    int
	}{
		{"partial", 40, false, models.StatusInProgress, 40},
		{"negative clamps to zero", -10, false, models.StatusAvailable, 0},
		{"zero clears", 0, false, models.StatusAvailable, 0},
		{"hundred completes", 100, true, models.StatusCompleted, 100},
		{"above hundred completes", 150, true, models.StatusCompleted, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(1, []string{"a", "b"}, 0)

			done, err := tr.SetProgress("a", tt.pct)
			if err != nil {
				t.Fatalf("SetProgress: %v", err)
			}
			if done != tt.wantDone {
				t.Errorf("done = %v, want %v", done, tt.wantDone)
			}
			rec := tr.Modules(false)[0]
			if rec.Status != tt.wantStatus || rec.Progress != tt.wantPct {
				t.Errorf("record = %+v, want %s %d", rec, tt.wantStatus, tt.wantPct)
			}
		})
	}
}

func TestSetProgress_CompletedModuleIgnored(t *testing.T) {
	tr := New(1, []string{"a"}, 0)
	tr.MarkComplete("a")

	done, err := tr.SetProgress("a", 30)
	if err != nil || done {
		t.Errorf("SetProgress on complete module = %v, %v", done, err)
	}
	if rec := tr.Modules(false)[0]; rec.Status != models.StatusCompleted {
		t.Errorf("status = %s, want COMPLETED", rec.Status)
	}

	if _, err := tr.SetProgress("missing", 30); err == nil {
		t.Error("SetProgress accepted an unknown module")
	}
}

func TestRestore(t *testing.T) {
	tr := New(1, []string{"a", "b", "c"}, 2)
	var fired int
	tr.OnSatisfied(func(int) { fired++ })

	unknown := tr.Restore([]string{"a", "gone", "a", "b"}, false)

	if len(unknown) != 1 || unknown[0] != "gone" {
		t.Errorf("unknown = %v, want [gone]", unknown)
	}
	if tr.Completed() != 2 || !tr.IsSatisfied() {
		t.Errorf("completed = %d satisfied = %v", tr.Completed(), tr.IsSatisfied())
	}
	if fired != 0 {
		t.Error("restore raised the satisfied signal")
	}

	tr.MarkComplete("c")
	if fired != 0 {
		t.Error("signal fired for a day that was already satisfied")
	}
}

func TestRestore_SatisfiedFlagSuppressesSignal(t *testing.T) {
	tr := New(1, []string{"a", "b"}, 0)
	var fired int
	tr.OnSatisfied(func(int) { fired++ })

	tr.Restore(nil, true)
	tr.MarkComplete("a")
	tr.MarkComplete("b")

	if fired != 0 {
		t.Errorf("fired %d times for an already satisfied day", fired)
	}
}

func TestModules(t *testing.T) {
	tr := New(1, []string{"a", "b", "c"}, 0)
	tr.MarkComplete("b")
	tr.SetProgress("c", 50)

	tests := []struct {
		name   string
		locked bool
		want   []models.Status
	}{
		{"unlocked", false, []models.Status{models.StatusAvailable, models.StatusCompleted, models.StatusInProgress}},
		{"locked", true, []models.Status{models.StatusLocked, models.StatusCompleted, models.StatusLocked}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := tr.Modules(tt.locked)
			if len(recs) != 3 {
				t.Fatalf("got %d records, want 3", len(recs))
			}
			for i, rec := range recs {
				if rec.ID != []string{"a", "b", "c"}[i] {
					t.Errorf("record %d id = %s, out of configured order", i, rec.ID)
				}
				if rec.Status != tt.want[i] {
					t.Errorf("%s status = %s, want %s", rec.ID, rec.Status, tt.want[i])
				}
			}
		})
	}
}

func TestRestoreProgress(t *testing.T) {
	tr := New(1, []string{"a", "b", "c", "d"}, 0)
	tr.Restore([]string{"b"}, false)

	unknown := tr.RestoreProgress(map[string]int{"a": 40, "b": 60, "c": 150, "gone": 10})

	if len(unknown) != 1 || unknown[0] != "gone" {
		t.Errorf("unknown = %v, want [gone]", unknown)
	}
	tests := []struct {
		id     string
		status models.Status
		pct    int
	}{
		{"a", models.StatusInProgress, 40},
		{"b", models.StatusCompleted, 100},
		{"c", models.StatusAvailable, 0},
		{"d", models.StatusAvailable, 0},
	}
	recs := tr.Modules(false)
	for i, tt := range tests {
		if recs[i].ID != tt.id || recs[i].Status != tt.status || recs[i].Progress != tt.pct {
			t.Errorf("record %d = %+v, want %s %s %d", i, recs[i], tt.id, tt.status, tt.pct)
		}
	}
	if tr.Progress("a") != 40 || tr.Progress("c") != 0 {
		t.Errorf("Progress() = %d/%d, want 40/0", tr.Progress("a"), tr.Progress("c"))
	}
}
