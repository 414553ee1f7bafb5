package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docflow/internal/domain"
)

// MockTermRepo is a mock implementation of port.TermRepository.
type MockTermRepo struct {
	mock.Mock
}

func (m *MockTermRepo) Upsert(ctx context.Context, formatID uuid.UUID, term string) error {
	args := m.Called(ctx, formatID, term)
	return args.Error(0)
}

func (m *MockTermRepo) CountByFormat(ctx context.Context, formatID uuid.UUID) (int, error) {
	args := m.Called(ctx, formatID)
	return args.Int(0), args.Error(1)
}

func (m *MockTermRepo) FilterKnown(ctx context.Context, formatID uuid.UUID, terms []string) (map[string]bool, error) {
	args := m.Called(ctx, formatID, terms)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockTermRepo) ListByFormat(ctx context.Context, formatID uuid.UUID, offset, limit int) ([]domain.ExtractedTerm, int, error) {
	args := m.Called(ctx, formatID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ExtractedTerm), args.Int(1), args.Error(2)
}
