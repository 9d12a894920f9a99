package migration

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.InfoLevel)
	return zap.New(core), logs
}

func TestEnsureMigrated(t *testing.T) {
	ctx := context.Background()

	t.Run("table exists", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		logger, logs := newObservedLogger()

		mock.ExpectQuery("SELECT to_regclass").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		require.NoError(t, EnsureMigrated(ctx, db, logger, "db"))
		assert.NoError(t, mock.ExpectationsWereMet())
		skipped := logs.FilterMessage("db_migration_skip").All()
		require.Len(t, skipped, 1)
		fields := skipped[0].ContextMap()
		assert.Equal(t, "schema already exists, skipping migration", fields["detail"])
		assert.NotContains(t, fields, "msg")
	})

	t.Run("runs every step", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		logger, logs := newObservedLogger()

		mock.ExpectQuery("SELECT to_regclass").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv_slots").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_kv_slots_updated_at").WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, EnsureMigrated(ctx, db, logger, "db"))
		assert.NoError(t, mock.ExpectationsWereMet())
		assert.Equal(t, len(steps), logs.FilterMessage("db_migration_step").Len())
		assert.Equal(t, 1, logs.FilterMessage("db_migration_success").Len())
	})

	t.Run("sentinel check fails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		logger, _ := newObservedLogger()

		mock.ExpectQuery("SELECT to_regclass").WillReturnError(errors.New("conn refused"))

		err = EnsureMigrated(ctx, db, logger, "db")
		assert.ErrorContains(t, err, "failed to check sentinel table: conn refused")
	})

	t.Run("step fails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		logger, logs := newObservedLogger()

		mock.ExpectQuery("SELECT to_regclass").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv_slots").WillReturnError(errors.New("permission denied"))

		err = EnsureMigrated(ctx, db, logger, "db")
		assert.ErrorContains(t, err, "migration step create_table_kv_slots failed")
		assert.Equal(t, 1, logs.FilterMessage("db_migration_failed").Len())
	})
}
