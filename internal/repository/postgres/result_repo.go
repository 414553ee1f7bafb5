package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docflow/internal/domain"
	"docflow/internal/port"
)

type resultRepo struct {
	db *sqlx.DB
}

// NewResultRepo creates a new PostgreSQL-backed ResultRepository.
func NewResultRepo(db *sqlx.DB) port.ResultRepository {
	return &resultRepo{db: db}
}

func (r *resultRepo) Create(ctx context.Context, rec *domain.ProcessingResultRecord) error {
	rec.ID = uuid.New()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO processing_results (id, document_id, organization_id, format_id,
		mapped_fields, unmapped_fields, overall_confidence, factor_breakdown, scope_bonus,
		decision, explanation, scan_bucket, scan_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.DocumentID, rec.OrganizationID, rec.FormatID,
		rec.MappedFields, rec.UnmappedFields, rec.OverallConfidence, rec.FactorBreakdown,
		rec.ScopeBonus, rec.Decision, rec.Explanation, rec.ScanBucket, rec.ScanKey,
		rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("resultRepo.Create: %w", err)
	}
	return nil
}

func (r *resultRepo) GetByDocumentID(ctx context.Context, documentID uuid.UUID) (*domain.ProcessingResultRecord, error) {
	var rec domain.ProcessingResultRecord
	err := r.db.GetContext(ctx, &rec,
		"SELECT * FROM processing_results WHERE document_id = $1 ORDER BY created_at DESC LIMIT 1",
		documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrResultNotFound
		}
		return nil, fmt.Errorf("resultRepo.GetByDocumentID: %w", err)
	}
	return &rec, nil
}

func (r *resultRepo) List(ctx context.Context, offset, limit int) ([]domain.ProcessingResultRecord, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM processing_results")
	if err != nil {
		return nil, 0, fmt.Errorf("resultRepo.List count: %w", err)
	}

	var recs []domain.ProcessingResultRecord
	err = r.db.SelectContext(ctx, &recs,
		"SELECT * FROM processing_results ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("resultRepo.List: %w", err)
	}
	return recs, total, nil
}

func (r *resultRepo) UpdateScanLocation(ctx context.Context, documentID uuid.UUID, bucket, key string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE processing_results SET scan_bucket = $1, scan_key = $2 WHERE document_id = $3",
		bucket, key, documentID)
	if err != nil {
		return fmt.Errorf("resultRepo.UpdateScanLocation: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrResultNotFound
	}
	return nil
}
