package port

import (
	"context"

	"docflow/internal/domain"
)

// ThresholdRepository persists the single active routing thresholds row.
type ThresholdRepository interface {
	// Get returns the current thresholds, or domain.ErrNotFound when none
	// have been configured yet.
	Get(ctx context.Context) (*domain.RoutingThresholds, error)

	// Save upserts the thresholds row.
	Save(ctx context.Context, t *domain.RoutingThresholds) error
}

// ThresholdAuditRepository persists the audit trail of threshold changes.
type ThresholdAuditRepository interface {
	Create(ctx context.Context, entry *domain.ThresholdAuditEntry) error
	List(ctx context.Context, offset, limit int) ([]domain.ThresholdAuditEntry, int, error)
}
