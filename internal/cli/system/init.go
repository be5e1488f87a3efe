package system

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/julianstephens/dayone/internal/cli"
	"github.com/julianstephens/dayone/internal/storage"
	"github.com/julianstephens/dayone/internal/storage/backend"
	"github.com/julianstephens/dayone/internal/storage/postgres"
)

type InitCmd struct {
	Force  bool   `help:"Discard any stored progress after initialization."`
	Source string `help:"Storage location or connection string to copy progress from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force && c.Source != "" && sameLocation(c.Source, ctx.Backend.GetConfigPath()) {
		return fmt.Errorf("cannot use --force when source and destination are the same: %s", c.Source)
	}

	if err := ctx.Backend.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized dayone storage at: %s\n", ctx.Backend.GetConfigPath())

	if c.Force {
		if err := ctx.Store.Clear(context.Background()); err != nil {
			return fmt.Errorf("failed to clear stored progress: %w", err)
		}
		fmt.Println("Cleared stored progress")
	}

	if c.Source != "" {
		fmt.Printf("Copying progress from: %s\n", c.Source)
		if err := c.copySnapshot(ctx); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
	}

	return nil
}

func (c *InitCmd) copySnapshot(ctx *cli.Context) error {
	if backend.Detect(c.Source) == backend.KindPostgres {
		if valid, err := postgres.ValidateConnString(c.Source); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return err
		}
	}

	src, err := backend.New(c.Source, backend.Options{})
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source storage: %w", err)
	}
	defer src.Close()

	bg := context.Background()
	snap, err := storage.NewAdapter(src, storage.WithDayCount(ctx.Curriculum.DayCount())).Load(bg)
	if err != nil {
		return fmt.Errorf("failed to read source snapshot: %w", err)
	}
	if snap == nil {
		fmt.Println("  Source has no stored progress, nothing to copy")
		return nil
	}

	if err := ctx.Store.Save(bg, *snap); err != nil {
		return fmt.Errorf("failed to save snapshot to destination: %w", err)
	}
	fmt.Printf("  Copied progress (%s, day %d of %d)\n", snap.AppState, snap.User.OnboardingDay, ctx.Curriculum.DayCount())
	return nil
}

// sameLocation reports whether two local storage paths point at the same
// place. Remote backends are never considered equal.
func sameLocation(a, b string) bool {
	switch backend.Detect(a) {
	case backend.KindFile, backend.KindSQLite:
	default:
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
