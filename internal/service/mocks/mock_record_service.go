package mocks

import (
	"context"
	"time"

	"pantry/internal/model"
	"pantry/internal/query"

	"github.com/stretchr/testify/mock"
)

type MockRecordService struct {
	mock.Mock
}

func (m *MockRecordService) Add(ctx context.Context, in model.RecordInput) (*model.Record, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

func (m *MockRecordService) Update(ctx context.Context, id string, patch model.RecordPatch) (*model.Record, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

func (m *MockRecordService) ToggleConsumed(ctx context.Context, id string) (*model.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

func (m *MockRecordService) Remove(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecordService) All(ctx context.Context) []model.Record {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.Record)
}

func (m *MockRecordService) Get(ctx context.Context, id string) (*model.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

func (m *MockRecordService) View(ctx context.Context, q query.Query) query.Result {
	args := m.Called(ctx, q)
	return args.Get(0).(query.Result)
}

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) CSV(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockExportService) Share(ctx context.Context, ttl time.Duration) (string, error) {
	args := m.Called(ctx, ttl)
	return args.String(0), args.Error(1)
}
