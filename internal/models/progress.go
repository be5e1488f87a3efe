package models

// TaskMarker is a single module completion in a day's feed
type TaskMarker struct {
	ID          string     `json:"id"`
	ModuleID    string     `json:"moduleId"`
	CompletedAt string     `json:"completedAt"` // RFC3339 timestamp
	Source      TaskSource `json:"source"`
}

// DayProgressRecord is the persisted progress for one day
type DayProgressRecord struct {
	Day                 int          `json:"day"`
	Completed           bool         `json:"completed"`
	CompletedAt         string       `json:"completedAt,omitempty"`         // RFC3339 timestamp, set once
	UnlockedViaOverride bool         `json:"unlockedViaOverride,omitempty"` // completion came from the dev override
	Tasks               []TaskMarker `json:"tasks"`

	// ModuleProgress holds partial progress (1-99) of incomplete multi-step modules
	ModuleProgress map[string]int `json:"moduleProgress,omitempty"`
}

// HasModule reports whether the feed already holds a marker for moduleID.
func (r DayProgressRecord) HasModule(moduleID string) bool {
	for _, t := range r.Tasks {
		if t.ModuleID == moduleID {
			return true
		}
	}
	return false
}

// ModuleIDs returns the module ids in the feed, in completion order.
func (r DayProgressRecord) ModuleIDs() []string {
	ids := make([]string, 0, len(r.Tasks))
	for _, t := range r.Tasks {
		if t.Source == TaskSourceOverride {
			continue
		}
		ids = append(ids, t.ModuleID)
	}
	return ids
}

// Clone returns a deep copy of the record.
func (r DayProgressRecord) Clone() DayProgressRecord {
	out := r
	if r.Tasks != nil {
		out.Tasks = make([]TaskMarker, len(r.Tasks))
		copy(out.Tasks, r.Tasks)
	}
	if r.ModuleProgress != nil {
		out.ModuleProgress = make(map[string]int, len(r.ModuleProgress))
		for id, pct := range r.ModuleProgress {
			out.ModuleProgress[id] = pct
		}
	}
	return out
}
