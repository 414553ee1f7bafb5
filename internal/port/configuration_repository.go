package port

import (
	"context"

	"github.com/google/uuid"

	"docflow/internal/domain"
)

// ConfigurationRepository persists mapping and prompt configurations.
type ConfigurationRepository interface {
	Create(ctx context.Context, cfg *domain.Configuration) error
	Update(ctx context.Context, cfg *domain.Configuration) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Configuration, error)
	List(ctx context.Context, kind domain.ConfigKind, offset, limit int) ([]domain.Configuration, int, error)

	// ListActive returns all active configurations for an exact scope key.
	// Under the uniqueness invariant at most one row comes back; the scope
	// resolver tie-breaks if the invariant has been violated.
	ListActive(ctx context.Context, kind domain.ConfigKind, scope domain.ConfigScope, organizationID, formatID *uuid.UUID) ([]domain.Configuration, error)

	// CountActive counts active configurations at a scope key, used to
	// enforce the uniqueness invariant at write time.
	CountActive(ctx context.Context, kind domain.ConfigKind, scope domain.ConfigScope, organizationID, formatID *uuid.UUID, excludeID uuid.UUID) (int, error)
}
