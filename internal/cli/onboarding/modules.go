package onboarding

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/dayone/internal/cli"
	"github.com/julianstephens/dayone/internal/models"
	"github.com/julianstephens/dayone/internal/progression"
)

type CompleteCmd struct {
	Day     int      `arg:"" help:"Day the modules belong to."`
	Modules []string `arg:"" help:"Module ids to mark complete."`
}

func (c *CompleteCmd) Run(ctx *cli.Context) error {
	eng, err := ctx.Open()
	if err != nil {
		return err
	}
	defer eng.Close()

	before := eng.Status(c.Day)
	for _, id := range c.Modules {
		n, err := eng.CompleteModule(context.Background(), c.Day, id)
		if err != nil {
			return err
		}
		fmt.Printf("✓ %s (%d/%d)\n", id, n, len(eng.Modules(c.Day)))
	}

	if before != models.StatusCompleted && eng.Status(c.Day) == models.StatusCompleted {
		fmt.Printf("\n🎉 Day %d complete!", c.Day)
		if next := eng.CurrentDay(); next > c.Day {
			fmt.Printf(" Day %d is now unlocked.", next)
		} else if eng.ReadyToGraduate() {
			fmt.Print(" Run 'dayone graduate' to finish onboarding.")
		}
		fmt.Println()
	}
	return nil
}

type ProgressCmd struct {
	Day     int    `arg:"" help:"Day the module belongs to."`
	Module  string `arg:"" help:"Module id."`
	Percent int    `arg:"" help:"Progress between 0 and 100; 100 completes the module."`
}

func (c *ProgressCmd) Run(ctx *cli.Context) error {
	eng, err := ctx.Open()
	if err != nil {
		return err
	}
	defer eng.Close()

	if err := eng.SetModuleProgress(context.Background(), c.Day, c.Module, c.Percent); err != nil {
		return err
	}
	for _, m := range eng.Modules(c.Day) {
		if m.ID == c.Module {
			fmt.Printf("%s %s %d%%\n", cli.StatusIcon(m.Status), m.ID, m.Progress)
		}
	}
	return nil
}

type GoCmd struct {
	Day int `arg:"" help:"Day to open."`
}

func (c *GoCmd) Run(ctx *cli.Context) error {
	eng, err := ctx.Open()
	if err != nil {
		return err
	}
	defer eng.Close()

	var denied *progression.NavigationDeniedError
	if err := eng.NavigateTo(context.Background(), c.Day); errors.As(err, &denied) {
		fmt.Printf("🔒 Day %d is locked. Finish day %d to unlock the next one.\n", denied.Day, denied.MaxUnlockedDay)
		return nil
	} else if err != nil {
		return err
	}
	cli.PrintDay(eng, c.Day)
	return nil
}
