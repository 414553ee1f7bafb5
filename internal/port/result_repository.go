package port

import (
	"context"

	"github.com/google/uuid"

	"docflow/internal/domain"
)

// ResultRepository persists processing results for audit and reporting.
type ResultRepository interface {
	Create(ctx context.Context, rec *domain.ProcessingResultRecord) error
	GetByDocumentID(ctx context.Context, documentID uuid.UUID) (*domain.ProcessingResultRecord, error)
	List(ctx context.Context, offset, limit int) ([]domain.ProcessingResultRecord, int, error)
	UpdateScanLocation(ctx context.Context, documentID uuid.UUID, bucket, key string) error
}
