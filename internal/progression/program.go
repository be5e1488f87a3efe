package progression

import "github.com/julianstephens/dayone/internal/models"

// Program is the top-level screen state machine:
// ROLE_SELECTION -> ONBOARDING -> ROLE_BASED.
type Program struct {
	state models.AppState
}

// NewProgram starts the machine in state, falling back to ROLE_SELECTION
// for unknown values.
func NewProgram(state models.AppState) *Program {
	if !state.Valid() {
		state = models.AppStateRoleSelection
	}
	return &Program{state: state}
}

func (p *Program) State() models.AppState { return p.state }

// SelectRole merges sel into profile and starts onboarding.
func (p *Program) SelectRole(profile *models.UserProfile, sel models.RoleSelection) error {
	if p.state != models.AppStateRoleSelection {
		return &InvalidTransitionError{From: p.state, Action: "select a role"}
	}
	profile.ApplyRole(sel)
	p.state = models.AppStateOnboarding
	return nil
}

// Graduate finishes onboarding. It does not check day completion; callers
// are expected to do that.
func (p *Program) Graduate(profile *models.UserProfile) error {
	if p.state != models.AppStateOnboarding {
		return &InvalidTransitionError{From: p.state, Action: "graduate"}
	}
	profile.OnboardingComplete = true
	p.state = models.AppStateRoleBased
	return nil
}

// Reset returns to role selection with a fresh profile.
func (p *Program) Reset() models.UserProfile {
	p.state = models.AppStateRoleSelection
	return models.DefaultProfile()
}
