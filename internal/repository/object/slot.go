package object

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"pantry/internal/model"
	"pantry/internal/repository"
	"pantry/internal/storage"
)

const contentType = "application/json"

// Slot keeps the collection as a single JSON object in a bucket.
// Object stores replace objects atomically, so readers see either the old or
// the new collection.
type Slot struct {
	store storage.Storage
	key   string
}

// NewSlot returns a Slot stored under <key>.json.
func NewSlot(store storage.Storage, key string) *Slot {
	return &Slot{store: store, key: key + ".json"}
}

var _ repository.Slot = (*Slot)(nil)

// Load downloads and decodes the object. A missing object is an empty collection.
func (s *Slot) Load(ctx context.Context) ([]model.Record, error) {
	rc, _, err := s.store.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return []model.Record{}, nil
		}
		return nil, fmt.Errorf("get slot object: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read slot object: %w", err)
	}
	return repository.Decode(data)
}

// Save uploads the encoded collection, replacing the previous object.
func (s *Slot) Save(ctx context.Context, records []model.Record) error {
	data, err := repository.Encode(records)
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	_, err = s.store.Put(ctx, s.key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: contentType,
		Metadata:    map[string]string{"records": fmt.Sprint(len(records))},
	})
	if err != nil {
		return fmt.Errorf("put slot object: %w", err)
	}
	return nil
}
