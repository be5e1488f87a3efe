package models

// AppState is the top-level screen the program is on
type AppState string

const (
	AppStateRoleSelection AppState = "ROLE_SELECTION"
	AppStateOnboarding    AppState = "ONBOARDING"
	AppStateRoleBased     AppState = "ROLE_BASED"
)

// Valid reports whether s is one of the known program states.
func (s AppState) Valid() bool {
	switch s {
	case AppStateRoleSelection, AppStateOnboarding, AppStateRoleBased:
		return true
	}
	return false
}

// Status is the presentation status shared by days and modules
type Status string

const (
	StatusLocked     Status = "LOCKED"
	StatusAvailable  Status = "AVAILABLE"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// TaskSource records what produced a task marker
type TaskSource string

const (
	TaskSourceModule   TaskSource = "module"
	TaskSourceOverride TaskSource = "override"
)

// ModuleRecord is the ephemeral view of one module of a day
type ModuleRecord struct {
	ID       string `json:"id"`
	Status   Status `json:"status"`
	Progress int    `json:"progress,omitempty"` // 0-100 for partially complete multi-step modules
}
