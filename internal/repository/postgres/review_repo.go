package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docflow/internal/domain"
	"docflow/internal/port"
)

type reviewRepo struct {
	db *sqlx.DB
}

// NewReviewRepo creates a new PostgreSQL-backed ReviewRepository.
func NewReviewRepo(db *sqlx.DB) port.ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, rec *domain.ReviewRecord) error {
	rec.ID = uuid.New()
	if rec.ReviewedAt.IsZero() {
		rec.ReviewedAt = time.Now().UTC()
	}

	query := `INSERT INTO review_records (id, document_id, organization_id, format_id, outcome, reviewed_by, reviewed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.DocumentID, rec.OrganizationID, rec.FormatID,
		rec.Outcome, rec.ReviewedBy, rec.ReviewedAt)
	if err != nil {
		return fmt.Errorf("reviewRepo.Create: %w", err)
	}
	return nil
}

func (r *reviewRepo) ListRecent(ctx context.Context, organizationID, formatID *uuid.UUID, limit int) ([]domain.ReviewRecord, error) {
	query := `SELECT * FROM review_records
		WHERE organization_id IS NOT DISTINCT FROM $1
		  AND format_id IS NOT DISTINCT FROM $2
		ORDER BY reviewed_at DESC LIMIT $3`

	var recs []domain.ReviewRecord
	err := r.db.SelectContext(ctx, &recs, query, organizationID, formatID, limit)
	if err != nil {
		return nil, fmt.Errorf("reviewRepo.ListRecent: %w", err)
	}
	return recs, nil
}
