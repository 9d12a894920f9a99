package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry/internal/model"
	"pantry/internal/repository"
)

func TestSlot_LoadMissing(t *testing.T) {
	slot, err := NewSlot(t.TempDir(), "items")
	require.NoError(t, err)

	got, err := slot.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSlot_SaveAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dir")
	slot, err := NewSlot(dir, "items")
	require.NoError(t, err)
	ctx := context.Background()

	records := []model.Record{
		{ID: "1", Name: "Milk", Qty: 2, Category: "Dairy", ExpiryDate: "2026-02-01", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, slot.Save(ctx, records))

	got, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, got)

	// overwrite wholesale
	require.NoError(t, slot.Save(ctx, nil))
	got, err = slot.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestSlot_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "items.json"), []byte("not json"), 0o644))

	slot, err := NewSlot(dir, "items")
	require.NoError(t, err)

	_, err = slot.Load(context.Background())
	assert.ErrorIs(t, err, repository.ErrSlotCorrupt)
}

func TestSlot_SaveCancelledContext(t *testing.T) {
	slot, err := NewSlot(t.TempDir(), "items")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, slot.Save(ctx, nil), context.Canceled)
	_, statErr := os.Stat(slot.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestNewSlot_RequiresKey(t *testing.T) {
	_, err := NewSlot(t.TempDir(), "")
	assert.Error(t, err)
}
