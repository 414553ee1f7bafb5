package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docflow/internal/domain"
)

// MockResultRepo is a mock implementation of port.ResultRepository.
type MockResultRepo struct {
	mock.Mock
}

func (m *MockResultRepo) Create(ctx context.Context, rec *domain.ProcessingResultRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockResultRepo) GetByDocumentID(ctx context.Context, documentID uuid.UUID) (*domain.ProcessingResultRecord, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProcessingResultRecord), args.Error(1)
}

func (m *MockResultRepo) List(ctx context.Context, offset, limit int) ([]domain.ProcessingResultRecord, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ProcessingResultRecord), args.Int(1), args.Error(2)
}

func (m *MockResultRepo) UpdateScanLocation(ctx context.Context, documentID uuid.UUID, bucket, key string) error {
	args := m.Called(ctx, documentID, bucket, key)
	return args.Error(0)
}
