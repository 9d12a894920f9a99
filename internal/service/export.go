package service

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"pantry/internal/export"
	"pantry/internal/model"
	"pantry/internal/storage"
)

// DefaultShareTTL is how long a shared export link stays valid.
const DefaultShareTTL = 24 * time.Hour

// ExportService defines the export use cases.
type ExportService interface {
	// CSV renders the full collection, ignoring any active query.
	CSV(ctx context.Context) ([]byte, error)

	// Share uploads the CSV to object storage and returns a presigned download URL.
	Share(ctx context.Context, ttl time.Duration) (string, error)
}

// recordLister is the part of the record store an export needs.
type recordLister interface {
	All(ctx context.Context) []model.Record
}

type exportService struct {
	records recordLister
	store   storage.Storage
	now     func() time.Time
}

// NewExportService constructs an ExportService. store may be nil, in which
// case Share reports ErrSharingUnavailable.
func NewExportService(records recordLister, store storage.Storage) ExportService {
	return &exportService{records: records, store: store, now: time.Now}
}

func (s *exportService) CSV(ctx context.Context) ([]byte, error) {
	records := s.records.All(ctx)
	if len(records) == 0 {
		return nil, ErrNothingToExport
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, records); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *exportService) Share(ctx context.Context, ttl time.Duration) (string, error) {
	if s.store == nil {
		return "", ErrSharingUnavailable
	}
	data, err := s.CSV(ctx)
	if err != nil {
		return "", err
	}
	if ttl <= 0 {
		ttl = DefaultShareTTL
	}

	key := path.Join("exports", fmt.Sprintf("grocery_inventory-%s.csv", s.now().UTC().Format("20060102T150405Z")))
	if _, err := s.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: export.ContentType,
		Metadata:    map[string]string{"filename": export.Filename},
	}); err != nil {
		return "", fmt.Errorf("upload export: %w", err)
	}
	url, err := s.store.PresignGet(ctx, key, ttl)
	if err != nil {
		return "", fmt.Errorf("presign export: %w", err)
	}
	return url, nil
}
