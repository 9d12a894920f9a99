// Package app assembles the record store and its collaborators from
// configuration. Both the HTTP server and the CLI start here.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pantry/internal/config"
	"pantry/internal/database"
	"pantry/internal/database/migration"
	"pantry/internal/notify"
	"pantry/internal/query"
	"pantry/internal/repository"
	"pantry/internal/repository/file"
	"pantry/internal/repository/memory"
	"pantry/internal/repository/object"
	"pantry/internal/repository/postgres"
	"pantry/internal/repository/sqlite"
	"pantry/internal/service"
	"pantry/internal/storage"
)

// App holds the wired services of one process.
type App struct {
	Config     *config.AppConfig
	Logger     *zap.Logger
	Slot       repository.Slot
	Records    *service.RecordStore
	Export     service.ExportService
	Dispatcher *notify.Dispatcher
	// Now is the clock in the configured time zone.
	Now func() time.Time
}

// New opens the configured slot, loads the collection and builds the services.
func New(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	loc := cfg.Location()
	now := func() time.Time { return time.Now().In(loc) }

	slot, err := OpenSlot(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	shareStore, err := OpenExportStorage(ctx, cfg)
	if err != nil {
		closeSlot(slot, logger)
		return nil, err
	}

	dispatcher := notify.NewDispatcher(newNotifier(cfg, logger), logger, cfg.Notify.Timeout)

	records, err := service.NewRecordStore(ctx, slot,
		service.WithClock(now),
		service.WithLogger(logger),
		service.WithDispatcher(dispatcher),
		service.WithQueryEngine(query.NewEngine(cfg.Locale)),
	)
	if err != nil {
		closeSlot(slot, logger)
		return nil, err
	}

	logger.Info("app_ready",
		zap.String("slot_driver", cfg.Slot.Driver),
		zap.String("slot_key", cfg.Slot.Key),
		zap.Int("records", len(records.All(ctx))),
		zap.Bool("sharing_enabled", shareStore != nil),
	)

	return &App{
		Config:     cfg,
		Logger:     logger,
		Slot:       slot,
		Records:    records,
		Export:     service.NewExportService(records, shareStore),
		Dispatcher: dispatcher,
		Now:        now,
	}, nil
}

// Pinger returns the slot's health probe, or nil when it has none.
func (a *App) Pinger() repository.Pinger {
	if p, ok := a.Slot.(repository.Pinger); ok {
		return p
	}
	return nil
}

// Close waits for pending alerts and releases the slot's connections.
func (a *App) Close() error {
	a.Dispatcher.Wait()
	if c, ok := a.Slot.(repository.Closer); ok {
		return c.Close()
	}
	return nil
}

// OpenSlot builds the slot driver named by cfg.Slot.Driver. The postgres
// driver migrates its table before returning.
func OpenSlot(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (repository.Slot, error) {
	key := cfg.Slot.Key
	if key == "" {
		key = repository.DefaultKey
	}

	switch cfg.Slot.Driver {
	case config.DriverMemory:
		return memory.NewSlot(), nil

	case config.DriverFile, "":
		return file.NewSlot(cfg.Slot.Dir, key)

	case config.DriverSQLite:
		db, err := database.NewSQLite(cfg.SQLite)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		slot, err := sqlite.NewSlot(ctx, db, key)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return slot, nil

	case config.DriverPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
			_ = db.Close()
			return nil, err
		}
		return postgres.NewSlot(db, key), nil

	case config.DriverMinIO:
		st, err := storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("open minio: %w", err)
		}
		return object.NewSlot(st, key), nil

	case config.DriverS3:
		st, err := storage.NewS3(ctx, cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("open s3: %w", err)
		}
		return object.NewSlot(st, key), nil

	default:
		return nil, fmt.Errorf("unknown slot driver %q", cfg.Slot.Driver)
	}
}

// OpenExportStorage returns the object store used for shared exports, or nil
// when sharing is not configured.
func OpenExportStorage(ctx context.Context, cfg *config.AppConfig) (storage.Storage, error) {
	switch cfg.ExportStorage {
	case "":
		return nil, nil
	case config.DriverMinIO:
		st, err := storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("open export storage: %w", err)
		}
		return st, nil
	case config.DriverS3:
		st, err := storage.NewS3(ctx, cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("open export storage: %w", err)
		}
		return st, nil
	default:
		return nil, errors.New("EXPORT_STORAGE must be empty, minio or s3")
	}
}

func newNotifier(cfg *config.AppConfig, logger *zap.Logger) notify.Notifier {
	if cfg.Notify.WebhookURL != "" {
		return notify.NewWebhookNotifier(cfg.Notify.WebhookURL, cfg.Notify.Timeout)
	}
	return notify.NewLogNotifier(logger)
}

func closeSlot(slot repository.Slot, logger *zap.Logger) {
	if c, ok := slot.(repository.Closer); ok {
		if err := c.Close(); err != nil {
			logger.Warn("slot_close_failed", zap.Error(err))
		}
	}
}
