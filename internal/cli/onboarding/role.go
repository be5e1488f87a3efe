package onboarding

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/dayone/internal/cli"
	"github.com/julianstephens/dayone/internal/models"
	"github.com/julianstephens/dayone/internal/utils"
)

type RoleCmd struct {
	Role       string `help:"Role being onboarded into." required:""`
	Name       string `help:"Your name."`
	Email      string `help:"Your email address."`
	Department string `help:"Your department."`
	Start      string `help:"Start date (YYYY-MM-DD). Defaults to today."`
}

func (c *RoleCmd) Run(ctx *cli.Context) error {
	start := c.Start
	if start == "" {
		start = utils.Today(time.Now(), ctx.Location())
	} else if !utils.ValidateDateFormat(start) {
		return fmt.Errorf("invalid start date %q, expected YYYY-MM-DD", start)
	}

	eng, err := ctx.Open()
	if err != nil {
		return err
	}
	defer eng.Close()

	if err := eng.SelectRole(context.Background(), models.RoleSelection{
		Name:       c.Name,
		Email:      c.Email,
		Role:       c.Role,
		Department: c.Department,
		StartDate:  start,
	}); err != nil {
		return err
	}

	fmt.Printf("✓ Onboarding started as %s\n\n", c.Role)
	cli.PrintDay(eng, eng.CurrentDay())
	return nil
}
