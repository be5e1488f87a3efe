package onboarding

import (
	"fmt"
	"time"

	"github.com/julianstephens/dayone/internal/cli"
	"github.com/julianstephens/dayone/internal/models"
	"github.com/julianstephens/dayone/internal/progress"
	"github.com/julianstephens/dayone/internal/utils"
)

type StatusCmd struct {
	Feed bool `help:"Show the completion feed of each day."`
	Day  int  `help:"Show the modules of a single day." short:"d"`
}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	eng, err := ctx.Open()
	if err != nil {
		return err
	}
	defer eng.Close()

	snap := eng.Snapshot()
	user := snap.User

	switch snap.AppState {
	case models.AppStateRoleSelection:
		fmt.Println("No role selected yet. Run 'dayone role --role <role>' to start onboarding.")
		return nil
	case models.AppStateRoleBased:
		fmt.Printf("%s has graduated from onboarding (%s).\n", displayName(user), user.Role)
	default:
		fmt.Printf("%s · %s", displayName(user), user.Role)
		if user.Department != "" {
			fmt.Printf(" · %s", user.Department)
		}
		fmt.Println()
	}

	if user.StartDate != "" {
		if n, err := utils.DaysSince(user.StartDate, time.Now().In(ctx.Location())); err == nil && n >= 0 {
			fmt.Printf("Started %s (%d calendar day(s) ago)\n", user.StartDate, n)
		}
	}

	pct := progress.ProgramProgressPercent(user, eng.DayCount())
	fmt.Printf("Program %s %d%%  ·  on day %d of %d\n\n", cli.ProgressBar(pct, 30), pct, eng.CurrentDay(), eng.DayCount())

	if c.Day != 0 {
		if eng.Status(c.Day) == models.StatusLocked {
			return fmt.Errorf("day %d is locked", c.Day)
		}
		cli.PrintDay(eng, c.Day)
		return nil
	}

	for _, row := range progress.Summary(eng, eng.DayCount()) {
		d, _ := eng.Curriculum().Day(row.Day)
		fmt.Printf("%s Day %d  %-28s %2d/%-2d %3d%%\n", cli.StatusIcon(row.Status), row.Day, d.Title, row.Completed, row.Total, row.Percent)
		if c.Feed {
			printFeed(user.DayProgress[row.Day], ctx.Location())
		}
	}

	if snap.AppState == models.AppStateOnboarding && eng.ReadyToGraduate() {
		fmt.Println("\nEvery day is complete. Run 'dayone graduate' to finish onboarding.")
	}
	return nil
}

func printFeed(rec models.DayProgressRecord, loc *time.Location) {
	for _, t := range rec.Tasks {
		label := t.ModuleID
		if t.Source == models.TaskSourceOverride {
			label = "unlocked via override"
		}
		fmt.Printf("      %s  %s\n", utils.FormatCompletedAt(t.CompletedAt, loc), label)
	}
}

func displayName(user models.UserProfile) string {
	if user.Name != "" {
		return user.Name
	}
	return "You"
}
