package port

import (
	"context"

	"github.com/google/uuid"

	"docflow/internal/domain"
)

// EmailSender notifies reviewers about documents needing attention.
type EmailSender interface {
	SendReviewAlert(ctx context.Context, toEmail string, documentID uuid.UUID, score float64, decision domain.RoutingDecision) error
}
