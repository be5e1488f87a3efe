package system

import (
	"context"
	"fmt"
	"os"

	"github.com/julianstephens/dayone/internal/cli"
	"github.com/julianstephens/dayone/internal/constants"
	"github.com/julianstephens/dayone/internal/progression"
	"github.com/julianstephens/dayone/internal/storage"
)

type ExportCmd struct {
	File string `arg:"" help:"File to write the snapshot JSON to, or - for stdout."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	eng, err := ctx.OpenEngine(0, progression.Hooks{})
	if err != nil {
		return err
	}
	defer eng.Close()

	data, err := storage.Encode(eng.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if c.File == "-" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(c.File, data, constants.FilePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.File, err)
	}
	fmt.Printf("Exported progress to: %s\n", c.File)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"Snapshot JSON file produced by export." type:"existingfile"`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}
	snap, err := storage.Decode(data, ctx.Curriculum.DayCount())
	if err != nil {
		return fmt.Errorf("invalid snapshot in %s: %w", c.File, err)
	}

	eng, err := ctx.OpenEngine(0, progression.Hooks{})
	if err != nil {
		return err
	}
	defer eng.Close()

	if err := eng.Import(context.Background(), *snap); err != nil {
		return err
	}
	fmt.Printf("Imported progress from %s (%s, day %d of %d)\n",
		c.File, eng.State(), eng.MaxUnlockedDay(), eng.DayCount())
	return nil
}
