package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"hrdesk/internal/domain"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, *domain.ActingUser, error) {
	args := m.Called(ctx, username, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.ActingUser), args.Error(2)
}

func (m *MockAuthService) ValidateToken(token string) (*domain.ActingUser, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActingUser), args.Error(1)
}
