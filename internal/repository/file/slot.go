package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pantry/internal/model"
	"pantry/internal/repository"
)

// Slot stores the collection as a JSON file. Writes go to a temporary file in
// the same directory which is then renamed over the target, so a reader never
// observes a half-written collection.
type Slot struct {
	path string
}

// NewSlot returns a file slot at dir/<key>.json.
func NewSlot(dir, key string) (*Slot, error) {
	if key == "" {
		return nil, fmt.Errorf("slot key is required")
	}
	if dir == "" {
		dir = "."
	}
	return &Slot{path: filepath.Join(dir, key+".json")}, nil
}

var _ repository.Slot = (*Slot)(nil)

// Path is the file the slot reads and writes.
func (s *Slot) Path() string { return s.path }

// Load reads the file. A missing file is an empty collection.
func (s *Slot) Load(_ context.Context) ([]model.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Record{}, nil
		}
		return nil, fmt.Errorf("read slot file: %w", err)
	}
	return repository.Decode(data)
}

// Save writes the whole collection atomically.
func (s *Slot) Save(ctx context.Context, records []model.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := repository.Encode(records)
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create slot dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace slot file: %w", err)
	}
	return nil
}
