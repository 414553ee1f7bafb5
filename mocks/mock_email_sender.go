package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docflow/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendReviewAlert(ctx context.Context, toEmail string, documentID uuid.UUID, score float64, decision domain.RoutingDecision) error {
	args := m.Called(ctx, toEmail, documentID, score, decision)
	return args.Error(0)
}
