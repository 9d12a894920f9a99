package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pantry/internal/model"
	"pantry/internal/repository"
)

// Slot is a PostgreSQL implementation of repository.Slot.
// The collection lives in one JSONB row of kv_slots keyed by the slot name.
type Slot struct {
	db  *sql.DB
	key string
}

// NewSlot creates a Slot over an open pool. The kv_slots table must exist
// (see migration.EnsureMigrated).
func NewSlot(db *sql.DB, key string) *Slot {
	return &Slot{db: db, key: key}
}

var _ repository.Slot = (*Slot)(nil)

// Load fetches the row for the slot key. A missing row is an empty collection.
func (s *Slot) Load(ctx context.Context) ([]model.Record, error) {
	const q = `SELECT value FROM kv_slots WHERE key = $1`
	var raw []byte
	if err := s.db.QueryRowContext(ctx, q, s.key).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []model.Record{}, nil
		}
		return nil, fmt.Errorf("select slot: %w", err)
	}
	return repository.Decode(raw)
}

// Save upserts the whole collection in a single statement.
func (s *Slot) Save(ctx context.Context, records []model.Record) error {
	data, err := repository.Encode(records)
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	const q = `
		INSERT INTO kv_slots (key, value, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	if _, err := s.db.ExecContext(ctx, q, s.key, string(data)); err != nil {
		return fmt.Errorf("upsert slot: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Slot) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying pool.
func (s *Slot) Close() error {
	return s.db.Close()
}
