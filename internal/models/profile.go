package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/dayone/internal/constants"
)

// profileFields are the JSON members the engine understands. Everything else
// on the user object is carried through untouched.
var profileFields = []string{
	"name", "email", "role", "department", "startDate",
	"onboardingDay", "onboardingComplete", "dayProgress",
}

// UserProfile is the persisted subject of the onboarding journey
type UserProfile struct {
	Name               string                    `json:"name,omitempty"`
	Email              string                    `json:"email,omitempty"`
	Role               string                    `json:"role,omitempty"`
	Department         string                    `json:"department,omitempty"`
	StartDate          string                    `json:"startDate,omitempty"` // YYYY-MM-DD
	OnboardingDay      int                       `json:"onboardingDay"`       // highest day the user may be on
	OnboardingComplete bool                      `json:"onboardingComplete"`
	DayProgress        map[int]DayProgressRecord `json:"dayProgress"`

	// Extra holds profile members owned by other parts of the application
	Extra map[string]json.RawMessage `json:"-"`
}

// RoleSelection is the partial profile supplied when a role is picked
type RoleSelection struct {
	Name       string
	Email      string
	Role       string
	Department string
	StartDate  string
}

// DefaultProfile returns the profile a brand new user starts with.
func DefaultProfile() UserProfile {
	return UserProfile{
		OnboardingDay: constants.MinDay,
		DayProgress:   make(map[int]DayProgressRecord),
	}
}

// ApplyRole merges the non-empty fields of sel into the profile.
func (p *UserProfile) ApplyRole(sel RoleSelection) {
	if v := strings.TrimSpace(sel.Name); v != "" {
		p.Name = v
	}
	if v := strings.TrimSpace(sel.Email); v != "" {
		p.Email = v
	}
	if v := strings.TrimSpace(sel.Role); v != "" {
		p.Role = v
	}
	if v := strings.TrimSpace(sel.Department); v != "" {
		p.Department = v
	}
	if v := strings.TrimSpace(sel.StartDate); v != "" {
		p.StartDate = v
	}
}

// CompletedDays counts the days whose record is marked completed.
func (p UserProfile) CompletedDays() int {
	n := 0
	for _, rec := range p.DayProgress {
		if rec.Completed {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the profile.
func (p UserProfile) Clone() UserProfile {
	out := p
	out.DayProgress = make(map[int]DayProgressRecord, len(p.DayProgress))
	for day, rec := range p.DayProgress {
		out.DayProgress[day] = rec.Clone()
	}
	if p.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(p.Extra))
		for k, v := range p.Extra {
			raw := make(json.RawMessage, len(v))
			copy(raw, v)
			out.Extra[k] = raw
		}
	}
	return out
}

type profileAlias UserProfile

func (p UserProfile) MarshalJSON() ([]byte, error) {
	alias := profileAlias(p)
	if alias.DayProgress == nil {
		alias.DayProgress = map[int]DayProgressRecord{}
	}
	known, err := json.Marshal(alias)
	if err != nil {
		return nil, err
	}
	if len(p.Extra) == 0 {
		return known, nil
	}

	merged := make(map[string]json.RawMessage, len(p.Extra)+len(profileFields))
	for k, v := range p.Extra {
		merged[k] = v
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		merged[k] = v
	}
	return json.Marshal(merged)
}

func (p *UserProfile) UnmarshalJSON(data []byte) error {
	var alias profileAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range profileFields {
		delete(raw, k)
	}
	if len(raw) > 0 {
		alias.Extra = raw
	} else {
		alias.Extra = nil
	}
	if alias.DayProgress == nil {
		alias.DayProgress = make(map[int]DayProgressRecord)
	}
	*p = UserProfile(alias)
	return nil
}

// PersistedSnapshot is the sole unit of durable state
type PersistedSnapshot struct {
	AppState AppState    `json:"appState"`
	User     UserProfile `json:"user"`
}

// DefaultSnapshot returns the state of a first launch.
func DefaultSnapshot() PersistedSnapshot {
	return PersistedSnapshot{
		AppState: AppStateRoleSelection,
		User:     DefaultProfile(),
	}
}

// Clone returns a deep copy of the snapshot.
func (s PersistedSnapshot) Clone() PersistedSnapshot {
	return PersistedSnapshot{AppState: s.AppState, User: s.User.Clone()}
}

// Validate checks the snapshot against a curriculum of dayCount days.
func (s PersistedSnapshot) Validate(dayCount int) error {
	if !s.AppState.Valid() {
		return fmt.Errorf("unknown appState %q", s.AppState)
	}
	if s.User.OnboardingDay < constants.MinDay || s.User.OnboardingDay > dayCount {
		return fmt.Errorf("onboardingDay %d outside 1..%d", s.User.OnboardingDay, dayCount)
	}
	for day, rec := range s.User.DayProgress {
		if day < constants.MinDay || day > dayCount {
			return fmt.Errorf("dayProgress key %d outside 1..%d", day, dayCount)
		}
		if rec.Day != day {
			return fmt.Errorf("dayProgress[%d] holds record for day %d", day, rec.Day)
		}
		if rec.CompletedAt != "" {
			if _, err := time.Parse(constants.TimestampFormat, rec.CompletedAt); err != nil {
				return fmt.Errorf("dayProgress[%d].completedAt: %w", day, err)
			}
		}
		if rec.Completed && rec.CompletedAt == "" {
			return fmt.Errorf("dayProgress[%d] completed without completedAt", day)
		}
		for id, pct := range rec.ModuleProgress {
			if pct < 1 || pct > 99 {
				return fmt.Errorf("dayProgress[%d].moduleProgress[%q] = %d, want 1..99", day, id, pct)
			}
		}
	}
	return nil
}
