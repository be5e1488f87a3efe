package system

import (
	"fmt"

	"github.com/julianstephens/dayone/internal/cli"
	"github.com/julianstephens/dayone/internal/models"
	"github.com/julianstephens/dayone/internal/notifier"
	"github.com/julianstephens/dayone/internal/progress"
	"github.com/julianstephens/dayone/internal/progression"
)

type NotifyCmd struct {
	Text   string `arg:"" optional:"" help:"Message to send. Defaults to a summary of the current day."`
	DryRun bool   `help:"Print the notification to stdout instead of sending it."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	msg := c.Text
	if msg == "" {
		eng, err := ctx.OpenEngine(0, progression.Hooks{})
		if err != nil {
			return err
		}
		msg = currentMessage(eng)
		_ = eng.Close()
	}
	if msg == "" {
		if c.DryRun {
			fmt.Println("Nothing to notify.")
		}
		return nil
	}

	if c.DryRun {
		fmt.Println("[DryRun] " + msg)
		return nil
	}
	if ctx.Notifier == nil {
		return nil
	}
	if err := ctx.Notifier.Notify(msg); err != nil {
		fmt.Printf("Failed to send notification: %v\n", err)
	}
	return nil
}

// currentMessage summarizes where the user is in the program.
func currentMessage(eng *progression.Engine) string {
	switch eng.State() {
	case models.AppStateRoleBased:
		p := eng.Snapshot().User
		return notifier.GraduationMessage(p.Name, p.Role)
	case models.AppStateOnboarding:
	default:
		return ""
	}

	day := eng.CurrentDay()
	d, _ := eng.Curriculum().Day(day)
	if eng.Status(day) == models.StatusCompleted {
		return notifier.DayCompleteMessage(day, eng.DayCount(), d.Title)
	}
	pct := progress.DayProgressPercent(eng.Modules(day))
	return fmt.Sprintf("Day %d: %s is %d%% done", day, d.Title, pct)
}
