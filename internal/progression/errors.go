package progression

import (
	"errors"
	"fmt"

	"github.com/julianstephens/dayone/internal/models"
)

var (
	// ErrNotReadyToGraduate is returned when graduation is requested before the final day is complete
	ErrNotReadyToGraduate = errors.New("final day is not complete")
	// ErrOverrideDisabled is returned when the unlock-all override is used outside a dev session
	ErrOverrideDisabled = errors.New("overrides are disabled in this build")
	// ErrClosed is returned by operations on a closed engine
	ErrClosed = errors.New("engine is closed")
)

// NavigationDeniedError is returned when the target day is locked or out of range.
// It is a hint for the user, not a failure.
type NavigationDeniedError struct {
	Day            int
	MaxUnlockedDay int
}

func (e *NavigationDeniedError) Error() string {
	return fmt.Sprintf("day %d is locked (unlocked through day %d)", e.Day, e.MaxUnlockedDay)
}

// InvalidTransitionError is returned when a program action is used from a state
// that does not allow it.
type InvalidTransitionError struct {
	From   models.AppState
	Action string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s from %s", e.Action, e.From)
}
