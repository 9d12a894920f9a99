package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pantry/internal/model"
	"pantry/internal/repository"
)

// Slot persists the collection as a single BLOB row in a SQLite kv table.
type Slot struct {
	db  *sql.DB
	key string
}

// NewSlot ensures the kv table exists and returns a Slot for key.
func NewSlot(ctx context.Context, db *sql.DB, key string) (*Slot, error) {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		updated_at TEXT NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create kv table: %w", err)
	}
	return &Slot{db: db, key: key}, nil
}

var _ repository.Slot = (*Slot)(nil)

// Load reads the slot row; a missing row is an empty collection.
func (s *Slot) Load(ctx context.Context) ([]model.Record, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, s.key).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []model.Record{}, nil
		}
		return nil, fmt.Errorf("select slot: %w", err)
	}
	return repository.Decode(raw)
}

// Save replaces the slot row.
func (s *Slot) Save(ctx context.Context, records []model.Record) error {
	data, err := repository.Encode(records)
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, data, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("upsert slot: %w", err)
	}
	return nil
}

// Ping checks the database handle.
func (s *Slot) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database handle.
func (s *Slot) Close() error {
	return s.db.Close()
}
