package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docflow/internal/domain"
)

// MockThresholdRepo is a mock implementation of port.ThresholdRepository.
type MockThresholdRepo struct {
	mock.Mock
}

func (m *MockThresholdRepo) Get(ctx context.Context) (*domain.RoutingThresholds, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoutingThresholds), args.Error(1)
}

func (m *MockThresholdRepo) Save(ctx context.Context, t *domain.RoutingThresholds) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

// MockThresholdAuditRepo is a mock implementation of port.ThresholdAuditRepository.
type MockThresholdAuditRepo struct {
	mock.Mock
}

func (m *MockThresholdAuditRepo) Create(ctx context.Context, entry *domain.ThresholdAuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockThresholdAuditRepo) List(ctx context.Context, offset, limit int) ([]domain.ThresholdAuditEntry, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ThresholdAuditEntry), args.Int(1), args.Error(2)
}
