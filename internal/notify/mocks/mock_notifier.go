package mocks

import (
	"context"

	"pantry/internal/notify"

	"github.com/stretchr/testify/mock"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Capability(ctx context.Context) notify.Capability {
	args := m.Called(ctx)
	return args.Get(0).(notify.Capability)
}

func (m *MockNotifier) RequestPermission(ctx context.Context) (notify.Capability, error) {
	args := m.Called(ctx)
	return args.Get(0).(notify.Capability), args.Error(1)
}

func (m *MockNotifier) Notify(ctx context.Context, a notify.Alert) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
