package port

import (
	"context"

	"github.com/google/uuid"

	"docflow/internal/domain"
)

// ReviewRepository persists human review outcomes.
type ReviewRepository interface {
	Create(ctx context.Context, rec *domain.ReviewRecord) error

	// ListRecent returns up to limit outcomes for the (organization, format)
	// pair, most recent first. Nil identifiers match rows with NULL.
	ListRecent(ctx context.Context, organizationID, formatID *uuid.UUID, limit int) ([]domain.ReviewRecord, error)
}
