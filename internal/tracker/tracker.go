// Package tracker holds the completion state of a single day's modules.
package tracker

import (
	"fmt"

	"github.com/julianstephens/dayone/internal/models"
)

// UnknownModuleError is returned when a caller references a module id that is
// not configured for the day. It indicates a configuration defect.
type UnknownModuleError struct {
	Day      int
	ModuleID string
}

func (e *UnknownModuleError) Error() string {
	return fmt.Sprintf("module %q is not configured for day %d", e.ModuleID, e.Day)
}

// Tracker tracks the fixed module set of one day
type Tracker struct {
	day       int
	order     []string
	progress  map[string]int
	completed map[string]bool
	count     int
	threshold int
	fired     bool
	onSatisfy func(day int)
}

// New creates a tracker for day with the given modules. threshold <= 0 means
// every module is required.
func New(day int, moduleIDs []string, threshold int) *Tracker {
	if threshold <= 0 || threshold > len(moduleIDs) {
		threshold = len(moduleIDs)
	}
	t := &Tracker{
		day:       day,
		order:     append([]string(nil), moduleIDs...),
		progress:  make(map[string]int, len(moduleIDs)),
		completed: make(map[string]bool, len(moduleIDs)),
		threshold: threshold,
	}
	for _, id := range moduleIDs {
		t.completed[id] = false
	}
	return t
}

// OnSatisfied registers the callback raised the first time the threshold is met.
func (t *Tracker) OnSatisfied(fn func(day int)) {
	t.onSatisfy = fn
}

// Day returns the day number the tracker belongs to.
func (t *Tracker) Day() int { return t.day }

// Threshold returns the number of completed modules required.
func (t *Tracker) Threshold() int { return t.threshold }

// Total returns the number of configured modules.
func (t *Tracker) Total() int { return len(t.order) }

// Completed returns the number of completed modules.
func (t *Tracker) Completed() int { return t.count }

// Has reports whether moduleID belongs to this day.
func (t *Tracker) Has(moduleID string) bool {
	_, ok := t.completed[moduleID]
	return ok
}

// IsComplete reports whether moduleID has been completed.
func (t *Tracker) IsComplete(moduleID string) bool {
	return t.completed[moduleID]
}

// IsSatisfied reports whether the completed count has reached the threshold.
func (t *Tracker) IsSatisfied() bool {
	return t.count >= t.threshold
}

// MarkComplete completes moduleID and returns the completed count. Completing
// an already complete module is a no-op. The satisfied callback fires once,
// on the call that first reaches the threshold.
func (t *Tracker) MarkComplete(moduleID string) (int, error) {
	done, ok := t.completed[moduleID]
	if !ok {
		return t.count, &UnknownModuleError{Day: t.day, ModuleID: moduleID}
	}
	if done {
		return t.count, nil
	}

	t.completed[moduleID] = true
	delete(t.progress, moduleID)
	t.count++

	if t.IsSatisfied() && !t.fired {
		t.fired = true
		if t.onSatisfy != nil {
			t.onSatisfy(t.day)
		}
	}
	return t.count, nil
}

// SetProgress records partial progress on a multi-step module. Values are
// clamped to 0..100 and 100 completes the module. It reports whether the
// call completed the module.
func (t *Tracker) SetProgress(moduleID string, pct int) (bool, error) {
	done, ok := t.completed[moduleID]
	if !ok {
		return false, &UnknownModuleError{Day: t.day, ModuleID: moduleID}
	}
	if done {
		return false, nil
	}
	if pct < 0 {
		pct = 0
	}
	if pct >= 100 {
		if _, err := t.MarkComplete(moduleID); err != nil {
			return false, err
		}
		return true, nil
	}
	if pct == 0 {
		delete(t.progress, moduleID)
		return false, nil
	}
	t.progress[moduleID] = pct
	return false, nil
}

// Restore marks modules complete from persisted markers without raising the
// satisfied signal. satisfied records that the day has already fired.
// Unknown ids are skipped and returned so the caller can log them.
func (t *Tracker) Restore(moduleIDs []string, satisfied bool) []string {
	var unknown []string
	for _, id := range moduleIDs {
		done, ok := t.completed[id]
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		if done {
			continue
		}
		t.completed[id] = true
		t.count++
	}
	if satisfied || t.IsSatisfied() {
		t.fired = true
	}
	return unknown
}

// RestoreProgress reapplies persisted partial progress. Completed modules and
// values outside 1..99 are skipped; unknown ids are returned.
func (t *Tracker) RestoreProgress(progress map[string]int) []string {
	var unknown []string
	for id, pct := range progress {
		done, ok := t.completed[id]
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		if done || pct < 1 || pct > 99 {
			continue
		}
		t.progress[id] = pct
	}
	return unknown
}

// Progress returns the partial progress of moduleID, 0 when none is recorded.
func (t *Tracker) Progress(moduleID string) int {
	return t.progress[moduleID]
}

// Modules returns a record per module in configured order. locked marks
// every incomplete module LOCKED.
func (t *Tracker) Modules(locked bool) []models.ModuleRecord {
	out := make([]models.ModuleRecord, 0, len(t.order))
	for _, id := range t.order {
		rec := models.ModuleRecord{ID: id}
		switch {
		case t.completed[id]:
			rec.Status = models.StatusCompleted
			rec.Progress = 100
		case locked:
			rec.Status = models.StatusLocked
		case t.progress[id] > 0:
			rec.Status = models.StatusInProgress
			rec.Progress = t.progress[id]
		default:
			rec.Status = models.StatusAvailable
		}
		out = append(out, rec)
	}
	return out
}
