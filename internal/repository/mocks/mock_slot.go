package mocks

import (
	"context"

	"pantry/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockSlot struct {
	mock.Mock
}

func (m *MockSlot) Load(ctx context.Context) ([]model.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Record), args.Error(1)
}

func (m *MockSlot) Save(ctx context.Context, records []model.Record) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockSlot) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
