package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// migrations are applied in order on top of the base schema. Each entry runs
// at most once, tracked with PRAGMA user_version. Index 0 corresponds to
// user_version 1 and so on. Never reorder or remove entries.
var migrations = []string{
	// 1: training_state.updated_at was added after the initial release.
	`ALTER TABLE training_state ADD COLUMN updated_at TIMESTAMP NOT NULL DEFAULT '1970-01-01 00:00:00';`,
}

// migrate creates the base schema and applies any pending migrations.
//
// CREATE statements in schema.sql are idempotent, so fresh databases get the
// final shape directly and the ALTERs below only matter for databases created
// before versioning was introduced.
func (db *Database) migrate(ctx context.Context) error {
	start := time.Now()

	var version int
	if err := db.ReadWrite.QueryRowContext(ctx, "PRAGMA user_version;").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version == 0 {
		var tables int
		row := db.ReadWrite.QueryRowContext(ctx,
			`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'training_state'`)
		if err := row.Scan(&tables); err != nil {
			return fmt.Errorf("inspect schema: %w", err)
		}
		if _, err := db.ReadWrite.ExecContext(ctx, schemaDefinition); err != nil {
			return fmt.Errorf("apply base schema: %w", err)
		}
		// A fresh database starts at the latest version. An unversioned
		// database that already had tables replays every migration.
		if tables == 0 {
			version = len(migrations)
		}
	}

	for ; version < len(migrations); version++ {
		if _, err := db.ReadWrite.ExecContext(ctx, migrations[version]); err != nil {
			return fmt.Errorf("apply migration %d: %w", version+1, err)
		}
		db.logger.LogAttrs(ctx, slog.LevelInfo, "applied migration", slog.Int("version", version+1))
	}

	if _, err := db.ReadWrite.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d;", len(migrations))); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	db.logger.LogAttrs(ctx, slog.LevelInfo, "migrated database",
		slog.Duration("duration", time.Since(start)))
	return nil
}
