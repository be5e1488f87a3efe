package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/dayone/internal/cli"
	"github.com/julianstephens/dayone/internal/keyring"
	"github.com/julianstephens/dayone/internal/storage"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	reachable := false

	fail := func(name string, err error) {
		fmt.Printf("❌ %s: FAIL\n", name)
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	}
	skip := func(name, reason string) {
		fmt.Printf("⊘ %s: SKIPPED (%s)\n", name, reason)
	}

	// Check 1: backend reachable
	if err := checkBackendReachable(ctx); err != nil {
		fail("Storage reachable", err)
	} else {
		fmt.Printf("✓ Storage reachable: OK (%s)\n", ctx.Backend.GetConfigPath())
		reachable = true
	}

	// Checks 2 and 3 only apply to backends with a schema
	_, versioned := ctx.Backend.(storage.Migrator)
	for _, check := range []struct {
		name string
		fn   func(*cli.Context) error
	}{
		{"Schema version", checkSchemaVersion},
		{"Migrations complete", checkMigrationsComplete},
	} {
		switch {
		case !reachable:
			skip(check.name, "storage not reachable")
		case !versioned:
			skip(check.name, "backend has no schema")
		default:
			if err := check.fn(ctx); err != nil {
				fail(check.name, err)
			} else {
				fmt.Printf("✓ %s: OK\n", check.name)
			}
		}
	}

	// Check 4: stored snapshot decodes
	if reachable {
		if stored, err := checkSnapshot(ctx); err != nil {
			fail("Stored progress", err)
		} else if !stored {
			fmt.Printf("✓ Stored progress: OK (nothing stored yet)\n")
		} else {
			fmt.Printf("✓ Stored progress: OK\n")
		}
	} else {
		skip("Stored progress", "storage not reachable")
	}

	// Check 5: curriculum
	if err := ctx.Curriculum.Validate(); err != nil {
		fail("Curriculum", err)
	} else {
		fmt.Printf("✓ Curriculum: OK (%d days)\n", ctx.Curriculum.DayCount())
	}

	// Check 6: keyring (warning only)
	if !keyring.IsAvailable() {
		fmt.Printf("⚠ OS keyring: WARNING\n")
		fmt.Printf("   keyring unavailable, connection strings must come from --config or the environment\n")
	} else {
		fmt.Printf("✓ OS keyring: OK\n")
	}

	// Check 7: clock sanity
	if err := checkClockTimezone(); err != nil {
		fail("Clock/timezone", err)
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkBackendReachable(ctx *cli.Context) error {
	if err := ctx.Backend.Load(); err != nil {
		return err
	}
	if _, err := ctx.Backend.Get(context.Background(), ctx.Store.Key()); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to read from storage: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m := ctx.Backend.(storage.Migrator)
	current, latest, err := m.SchemaVersion(context.Background())
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m := ctx.Backend.(storage.Migrator)
	current, latest, err := m.SchemaVersion(context.Background())
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'dayone migrate')", current, latest)
	}
	return nil
}

// checkSnapshot reports whether a snapshot is stored and decodes cleanly.
func checkSnapshot(ctx *cli.Context) (bool, error) {
	snap, err := ctx.Store.Load(context.Background())
	if err != nil {
		return false, err
	}
	return snap != nil, nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
