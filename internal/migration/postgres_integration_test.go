package migration

import (
	"context"
	"database/sql"
	"io/fs"
	"os"
	"testing"

	_ "github.com/lib/pq"

	"github.com/julianstephens/dayone/migrations"
)

// openPostgres connects to POSTGRES_TEST_URL and drops the tables the tests
// create when they finish.
// Example: POSTGRES_TEST_URL="postgres://user@localhost:5432/dayone_test?sslmode=disable"
func openPostgres(t *testing.T) *sql.DB {
	t.Helper()
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("failed to open postgres database: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("failed to ping postgres database: %v", err)
	}

	dropTables := func() {
		for _, table := range []string{"schema_version", "kv", "kv_scratch"} {
			db.Exec("DROP TABLE IF EXISTS " + table)
		}
	}
	dropTables()
	t.Cleanup(func() {
		dropTables()
		db.Close()
	})
	return db
}

func postgresSchema(t *testing.T) fs.FS {
	t.Helper()
	sub, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		t.Fatalf("failed to open embedded postgres migrations: %v", err)
	}
	return sub
}

func TestPostgresEmbeddedSchema(t *testing.T) {
	ctx := context.Background()
	db := openPostgres(t)
	runner := NewRunner(db, postgresSchema(t), DialectPostgres)

	latest, err := runner.GetLatestVersion()
	if err != nil {
		t.Fatalf("GetLatestVersion failed: %v", err)
	}

	applied, err := runner.ApplyMigrations(ctx, nil)
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied != latest {
		t.Errorf("applied %d migrations, want %d", applied, latest)
	}
	if err := runner.ValidateVersion(ctx); err != nil {
		t.Errorf("ValidateVersion after migrating: %v", err)
	}

	// the snapshot is upserted under a single key
	upsert := `INSERT INTO kv (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	for _, value := range []string{`{"appState":"ROLE_SELECTION"}`, `{"appState":"ONBOARDING"}`} {
		if _, err := db.ExecContext(ctx, upsert, "dayone:snapshot", []byte(value)); err != nil {
			t.Fatalf("upsert into kv failed: %v", err)
		}
	}
	var value []byte
	if err := db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = $1", "dayone:snapshot").Scan(&value); err != nil {
		t.Fatalf("select from kv failed: %v", err)
	}
	if string(value) != `{"appState":"ONBOARDING"}` {
		t.Errorf("stored value = %s", value)
	}

	again, err := runner.ApplyMigrations(ctx, nil)
	if err != nil {
		t.Fatalf("second ApplyMigrations failed: %v", err)
	}
	if again != 0 {
		t.Errorf("second run applied %d migrations, want 0", again)
	}
}

func TestPostgresIncrementalOnTopOfSchema(t *testing.T) {
	ctx := context.Background()
	db := openPostgres(t)

	if _, err := NewRunner(db, postgresSchema(t), DialectPostgres).ApplyMigrations(ctx, nil); err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}

	files := migrationFS(map[string]string{
		"001_init.sql":       "CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value BYTEA NOT NULL, updated_at TIMESTAMPTZ NOT NULL DEFAULT now());",
		"002_kv_scratch.sql": "CREATE TABLE kv_scratch (key TEXT PRIMARY KEY);",
	})
	var logged []string
	applied, err := NewRunner(db, files, DialectPostgres).ApplyMigrations(ctx, func(msg string) {
		logged = append(logged, msg)
	})
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied != 1 || len(logged) == 0 {
		t.Errorf("applied %d migrations with %d log lines, want 1 and some output", applied, len(logged))
	}
}

func TestPostgresSetVersionBindsPlaceholders(t *testing.T) {
	ctx := context.Background()
	db := openPostgres(t)
	runner := NewRunner(db, postgresSchema(t), DialectPostgres)

	if err := runner.EnsureSchemaVersionTable(ctx); err != nil {
		t.Fatalf("EnsureSchemaVersionTable failed: %v", err)
	}
	for _, want := range []int{1, 2} {
		if err := runner.SetVersion(ctx, want); err != nil {
			t.Fatalf("SetVersion(%d) failed: %v", want, err)
		}
		got, err := runner.GetCurrentVersion(ctx)
		if err != nil {
			t.Fatalf("GetCurrentVersion failed: %v", err)
		}
		if got != want {
			t.Errorf("version = %d, want %d", got, want)
		}
	}
}

func TestPostgresFailedMigrationRollsBack(t *testing.T) {
	ctx := context.Background()
	db := openPostgres(t)

	files := migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE kv (key TEXT PRIMARY KEY);\nNOT VALID SQL;",
	})
	runner := NewRunner(db, files, DialectPostgres)

	if _, err := runner.ApplyMigrations(ctx, nil); err == nil {
		t.Fatal("ApplyMigrations should fail on invalid SQL")
	}

	version, err := runner.GetCurrentVersion(ctx)
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("version = %d after failed migration, want 0", version)
	}
	var exists bool
	if err := db.QueryRow("SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = 'kv')").Scan(&exists); err != nil {
		t.Fatalf("failed to check kv table: %v", err)
	}
	if exists {
		t.Error("kv table should not exist after rollback")
	}
}
