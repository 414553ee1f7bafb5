package noop

import (
	"context"
	"log"

	"github.com/google/uuid"

	"docflow/internal/domain"
	"docflow/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs alerts to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendReviewAlert(_ context.Context, toEmail string, documentID uuid.UUID, score float64, decision domain.RoutingDecision) error {
	log.Printf("[NOOP EMAIL] Review alert for %s: document %s scored %.2f (%s)", toEmail, documentID, score, decision)
	return nil
}
