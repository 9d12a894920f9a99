// Package repository contains the persistence port for the record collection.
// Drivers live in subpackages (file, sqlite, postgres, object, memory) and store
// the whole collection under one key; none of them knows about individual records.
package repository

import (
	"context"
	"errors"

	"pantry/internal/model"
)

// DefaultKey is the slot name used when none is configured.
const DefaultKey = "gexp_items_v1"

// ErrSlotCorrupt is returned by Load when the stored bytes cannot be decoded.
// Callers recover from it by starting with an empty collection.
var ErrSlotCorrupt = errors.New("slot content is corrupt")

// Slot is the durable key/value slot holding the entire collection.
type Slot interface {
	// Load returns the stored collection. A missing slot yields an empty
	// collection and no error. Undecodable content yields ErrSlotCorrupt.
	Load(ctx context.Context) ([]model.Record, error)

	// Save overwrites the slot with the full collection. It either writes
	// everything or returns an error with the previous content intact.
	Save(ctx context.Context, records []model.Record) error
}

// Pinger is implemented by slots backed by a remote dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Closer is implemented by slots that hold connections or files.
type Closer interface {
	Close() error
}
