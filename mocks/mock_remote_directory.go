package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"hrdesk/internal/domain"
)

// MockRemoteDirectory is a mock implementation of port.RemoteDirectory.
type MockRemoteDirectory struct {
	mock.Mock
}

func (m *MockRemoteDirectory) FetchAll(ctx context.Context, kind domain.ResourceKind) ([]domain.Record, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *MockRemoteDirectory) Create(ctx context.Context, kind domain.ResourceKind, record domain.Record) (domain.Record, error) {
	args := m.Called(ctx, kind, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Record), args.Error(1)
}

func (m *MockRemoteDirectory) Update(ctx context.Context, kind domain.ResourceKind, id string, partial domain.Record) (domain.Record, error) {
	args := m.Called(ctx, kind, id, partial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Record), args.Error(1)
}

func (m *MockRemoteDirectory) Delete(ctx context.Context, kind domain.ResourceKind, id string) error {
	args := m.Called(ctx, kind, id)
	return args.Error(0)
}
