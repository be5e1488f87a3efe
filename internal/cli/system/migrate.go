package system

import (
	"context"
	"fmt"

	"github.com/julianstephens/dayone/internal/cli"
	"github.com/julianstephens/dayone/internal/storage"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Backend.(storage.Migrator)
	if !ok {
		fmt.Printf("Storage at %s has no schema to migrate.\n", ctx.Backend.GetConfigPath())
		return nil
	}

	count, err := m.Migrate(context.Background(), func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}

	return nil
}
