package plan

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/akoskinen/liftblock/internal/errors"
	"github.com/akoskinen/liftblock/internal/sqlite"
)

// ErrNotFound signals a missing state document.
var ErrNotFound = errors.NewSentinel("not found")

// The whole training state is one versioned JSON document per installation.
// Schema versions count migrations of the document shape, not the SQL schema.
const (
	stateDocumentKey   = "state"
	stateSchemaVersion = 2
)

// repository stores the state document in SQLite.
type repository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newRepository(db *sqlite.Database, logger *slog.Logger) *repository {
	return &repository{db: db, logger: logger}
}

// Load reads and migrates the state document. A missing row yields a fresh
// default document rather than an error so first launch needs no setup step.
func (r *repository) Load(ctx context.Context) (*State, error) {
	var (
		version  int
		document string
	)
	row := r.db.ReadOnly.QueryRowContext(ctx,
		`SELECT schema_version, document FROM training_state WHERE id = ?`, stateDocumentKey)
	err := row.Scan(&version, &document)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state document: %w", err)
	}

	state, err := decodeState([]byte(document), version)
	if err != nil {
		return nil, fmt.Errorf("decode state document: %w", err)
	}
	if version != stateSchemaVersion {
		r.logger.LogAttrs(ctx, slog.LevelInfo, "migrated state document",
			slog.Int("from", version), slog.Int("to", stateSchemaVersion))
	}
	return state, nil
}

// Save upserts the whole state document.
func (r *repository) Save(ctx context.Context, state *State) error {
	document, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state document: %w", err)
	}
	_, err = r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO training_state (id, schema_version, document, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			schema_version = excluded.schema_version,
			document = excluded.document,
			updated_at = excluded.updated_at`,
		stateDocumentKey, stateSchemaVersion, string(document), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("write state document: %w", err)
	}
	return nil
}

// decodeState unmarshals a document and migrates older shapes forward. The
// document is tolerant of missing keys at every version: Normalize fills
// defaults instead of failing.
func decodeState(document []byte, version int) (*State, error) {
	var state State
	if err := json.Unmarshal(document, &state); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	// Version 1 documents predate the readiness and block archive features
	// and stored lift adjustments unclamped.
	if version < 2 {
		for _, p := range state.Profiles {
			if p == nil {
				continue
			}
			for liftKey, adj := range p.LiftAdjustments {
				p.LiftAdjustments[liftKey] = clamp(adj, -maxLiftAdjustment, maxLiftAdjustment)
			}
		}
	}

	state.Normalize()
	return &state, nil
}
