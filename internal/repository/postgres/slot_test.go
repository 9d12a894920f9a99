package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry/internal/model"
	"pantry/internal/repository"
)

func TestSlot_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	slot := NewSlot(db, "items")
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"value"}).
			AddRow([]byte(`[{"id":"a","name":"Milk","qty":2,"category":"Dairy","createdAt":"2026-01-01T00:00:00Z"}]`))
		mock.ExpectQuery("SELECT value FROM kv_slots WHERE key = ?").
			WithArgs("items").
			WillReturnRows(rows)

		got, err := slot.Load(ctx)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Milk", got[0].Name)
		assert.Equal(t, 2, got[0].Qty)
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectQuery("SELECT value FROM kv_slots WHERE key = ?").
			WithArgs("items").
			WillReturnRows(sqlmock.NewRows([]string{"value"}))

		got, err := slot.Load(ctx)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("corrupt value", func(t *testing.T) {
		mock.ExpectQuery("SELECT value FROM kv_slots WHERE key = ?").
			WithArgs("items").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"not":"an array"}`)))

		_, err := slot.Load(ctx)

		assert.ErrorIs(t, err, repository.ErrSlotCorrupt)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT value FROM kv_slots WHERE key = ?").
			WithArgs("items").
			WillReturnError(errors.New("connection reset"))

		_, err := slot.Load(ctx)

		assert.ErrorContains(t, err, "select slot: connection reset")
		assert.NotErrorIs(t, err, repository.ErrSlotCorrupt)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlot_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	slot := NewSlot(db, "items")
	ctx := context.Background()
	records := []model.Record{{ID: "a", Name: "Eggs", Qty: 12, Category: "Dairy", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}}
	payload, err := repository.Encode(records)
	require.NoError(t, err)

	t.Run("upsert", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO kv_slots").
			WithArgs("items", string(payload)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, slot.Save(ctx, records))
	})

	t.Run("exec error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO kv_slots").
			WithArgs("items", string(payload)).
			WillReturnError(errors.New("disk full"))

		assert.ErrorContains(t, slot.Save(ctx, records), "upsert slot: disk full")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlot_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	slot := NewSlot(db, "items")
	mock.ExpectPing()
	mock.ExpectClose()

	assert.NoError(t, slot.Ping(context.Background()))
	assert.NoError(t, slot.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
