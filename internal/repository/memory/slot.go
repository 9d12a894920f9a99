package memory

import (
	"context"
	"sync"

	"pantry/internal/model"
	"pantry/internal/repository"
)

// Slot keeps the encoded collection in process memory. It stores bytes rather
// than records so it behaves like the durable drivers, including corruption.
type Slot struct {
	mu   sync.Mutex
	data []byte
}

// NewSlot returns an empty in-memory slot.
func NewSlot() *Slot {
	return &Slot{}
}

// NewSlotWithData returns a slot preloaded with raw content.
func NewSlotWithData(data []byte) *Slot {
	return &Slot{data: append([]byte(nil), data...)}
}

var _ repository.Slot = (*Slot)(nil)

// Load decodes the stored bytes.
func (s *Slot) Load(_ context.Context) ([]model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return repository.Decode(s.data)
}

// Save replaces the stored bytes.
func (s *Slot) Save(ctx context.Context, records []model.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := repository.Encode(records)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Bytes returns a copy of the raw slot content.
func (s *Slot) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.data...)
}
