package sqlite

import (
	"context"
	"testing"

	"github.com/akoskinen/liftblock/internal/testhelpers"
)

func TestNewDatabase_migratesFreshDatabase(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	db, err := NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close database: %v", err)
		}
	})

	for _, table := range []string{"training_state", "sessions"} {
		var count int
		row := db.ReadOnly.QueryRowContext(ctx,
			`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table)
		if err := row.Scan(&count); err != nil {
			t.Fatalf("inspect table %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("table %s not created", table)
		}
	}

	var version int
	if err := db.ReadWrite.QueryRowContext(ctx, "PRAGMA user_version;").Scan(&version); err != nil {
		t.Fatalf("read user_version: %v", err)
	}
	if version != len(migrations) {
		t.Errorf("user_version = %d, want %d", version, len(migrations))
	}
}

func TestMigrate_isIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	db, err := NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close database: %v", err)
		}
	})

	if err := db.migrate(ctx); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestMigrate_upgradesUnversionedDatabase(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	db, err := connect(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close database: %v", err)
		}
	})

	// Simulate a database created before schema versioning: the state table
	// exists without the updated_at column and user_version is 0.
	_, err = db.ReadWrite.ExecContext(ctx, `
		CREATE TABLE training_state (
			id             TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			document       TEXT NOT NULL
		);`)
	if err != nil {
		t.Fatalf("create legacy table: %v", err)
	}

	if err := db.migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	var count int
	row := db.ReadOnly.QueryRowContext(ctx,
		`SELECT count(*) FROM PRAGMA_TABLE_INFO('training_state') WHERE name = 'updated_at'`)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("inspect columns: %v", err)
	}
	if count != 1 {
		t.Error("updated_at column missing after migration")
	}
}
