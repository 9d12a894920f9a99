package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"pantry/internal/model"
	"pantry/internal/repository"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "pantry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSlot_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	slot, err := NewSlot(ctx, db, "items")
	require.NoError(t, err)

	got, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	records := []model.Record{
		{ID: "1", Name: "Butter", Qty: 1, Category: "Dairy", ExpiryDate: "2026-04-01", CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		{ID: "2", Name: "Flour", Qty: 2, Category: "Baking", CreatedAt: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, slot.Save(ctx, records))
	require.NoError(t, slot.Save(ctx, records[:1]))

	got, err = slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, records[:1], got)

	var rows int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestSlot_KeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	a, err := NewSlot(ctx, db, "a")
	require.NoError(t, err)
	b, err := NewSlot(ctx, db, "b")
	require.NoError(t, err)

	require.NoError(t, a.Save(ctx, []model.Record{{ID: "x", Name: "X", Qty: 1}}))

	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSlot_LoadCorrupt(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	slot, err := NewSlot(ctx, db, "items")
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO kv (key, value, updated_at) VALUES ('items', 'garbage', '')`)
	require.NoError(t, err)

	_, err = slot.Load(ctx)
	assert.ErrorIs(t, err, repository.ErrSlotCorrupt)
}

func TestSlot_ClosedDatabase(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	slot, err := NewSlot(ctx, db, "items")
	require.NoError(t, err)
	require.NoError(t, slot.Close())

	_, err = slot.Load(ctx)
	assert.ErrorContains(t, err, "select slot")
	assert.Error(t, slot.Save(ctx, nil))
}
