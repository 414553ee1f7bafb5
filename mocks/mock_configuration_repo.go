package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docflow/internal/domain"
)

// MockConfigurationRepo is a mock implementation of port.ConfigurationRepository.
type MockConfigurationRepo struct {
	mock.Mock
}

func (m *MockConfigurationRepo) Create(ctx context.Context, cfg *domain.Configuration) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *MockConfigurationRepo) Update(ctx context.Context, cfg *domain.Configuration) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *MockConfigurationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Configuration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Configuration), args.Error(1)
}

func (m *MockConfigurationRepo) List(ctx context.Context, kind domain.ConfigKind, offset, limit int) ([]domain.Configuration, int, error) {
	args := m.Called(ctx, kind, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Configuration), args.Int(1), args.Error(2)
}

func (m *MockConfigurationRepo) ListActive(ctx context.Context, kind domain.ConfigKind, scope domain.ConfigScope, organizationID, formatID *uuid.UUID) ([]domain.Configuration, error) {
	args := m.Called(ctx, kind, scope, organizationID, formatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Configuration), args.Error(1)
}

func (m *MockConfigurationRepo) CountActive(ctx context.Context, kind domain.ConfigKind, scope domain.ConfigScope, organizationID, formatID *uuid.UUID, excludeID uuid.UUID) (int, error) {
	args := m.Called(ctx, kind, scope, organizationID, formatID, excludeID)
	return args.Int(0), args.Error(1)
}
