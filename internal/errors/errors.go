package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/dayone/internal/logger"
	"github.com/julianstephens/dayone/internal/models"
	"github.com/julianstephens/dayone/internal/progression"
	"github.com/julianstephens/dayone/internal/storage"
	"github.com/julianstephens/dayone/internal/tracker"
)

// Format formats an error message with a consistent "Error: " prefix,
// followed by a hint line when the error has a known remedy
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\n  hint: " + hint
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint suggests what to do about err, or "" when there is nothing to add.
func Hint(err error) string {
	var (
		nav     *progression.NavigationDeniedError
		trans   *progression.InvalidTransitionError
		unknown *tracker.UnknownModuleError
		write   *storage.PersistenceWriteError
		corrupt *storage.CorruptStateError
	)

	switch {
	case errors.As(err, &nav):
		return fmt.Sprintf("finish day %d to unlock the next one", nav.MaxUnlockedDay)
	case errors.As(err, &trans):
		switch trans.From {
		case models.AppStateRoleSelection:
			return "pick a role first with 'dayone role'"
		case models.AppStateRoleBased:
			return "onboarding is finished; run 'dayone reset' to start over"
		}
		return ""
	case errors.As(err, &unknown):
		return fmt.Sprintf("run 'dayone status' to list the modules of day %d", unknown.Day)
	case errors.Is(err, progression.ErrNotReadyToGraduate):
		return "complete every module of the final day first"
	case errors.Is(err, progression.ErrOverrideDisabled):
		return "pass --dev or build with -tags dev"
	case errors.As(err, &write):
		return "progress is kept in memory until dayone exits; run 'dayone doctor' to check storage"
	case errors.As(err, &corrupt):
		return "run 'dayone reset' to discard the stored snapshot"
	}
	return ""
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
