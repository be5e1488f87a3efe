package onboarding

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayone/internal/cli"
	"github.com/julianstephens/dayone/internal/logger"
)

type GraduateCmd struct{}

func (c *GraduateCmd) Run(ctx *cli.Context) error {
	eng, err := ctx.Open()
	if err != nil {
		return err
	}
	defer eng.Close()

	if err := eng.Graduate(context.Background()); err != nil {
		return err
	}
	user := eng.Snapshot().User
	fmt.Printf("🎓 %s graduated from onboarding. Welcome to the %s experience!\n", displayName(user), user.Role)
	return nil
}

// confirmFunc asks the user to confirm a destructive action. Tests replace it.
var confirmFunc = func(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		WithTheme(huh.ThemeDracula()).
		Run()
	return ok, err
}

type ResetCmd struct {
	Yes bool `help:"Skip the confirmation prompt." short:"y"`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := confirmFunc("Discard all onboarding progress?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	eng, err := ctx.Open()
	if err != nil {
		return err
	}
	defer eng.Close()

	if err := eng.Reset(context.Background()); err != nil {
		return err
	}
	fmt.Println("✓ Onboarding progress cleared. Run 'dayone role' to start again.")
	return nil
}

type UnlockAllCmd struct{}

func (c *UnlockAllCmd) Run(ctx *cli.Context) error {
	eng, err := ctx.Open()
	if err != nil {
		return err
	}
	defer eng.Close()

	if err := eng.UnlockAll(context.Background()); err != nil {
		return err
	}
	logger.Warn("unlock-all used from the command line")
	fmt.Printf("⚠ All %d days marked complete via override.\n", eng.DayCount())
	return nil
}
