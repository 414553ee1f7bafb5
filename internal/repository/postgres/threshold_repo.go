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

type thresholdRepo struct {
	db *sqlx.DB
}

// NewThresholdRepo creates a new PostgreSQL-backed ThresholdRepository.
func NewThresholdRepo(db *sqlx.DB) port.ThresholdRepository {
	return &thresholdRepo{db: db}
}

func (r *thresholdRepo) Get(ctx context.Context) (*domain.RoutingThresholds, error) {
	var t domain.RoutingThresholds
	err := r.db.GetContext(ctx, &t,
		"SELECT * FROM routing_thresholds ORDER BY updated_at DESC LIMIT 1")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("thresholdRepo.Get: %w", err)
	}
	return &t, nil
}

func (r *thresholdRepo) Save(ctx context.Context, t *domain.RoutingThresholds) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.UpdatedAt = time.Now().UTC()

	query := `INSERT INTO routing_thresholds (id, auto_approve_min, quick_review_min, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET auto_approve_min = $2, quick_review_min = $3, updated_by = $4, updated_at = $5`

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.AutoApproveMin, t.QuickReviewMin, t.UpdatedBy, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("thresholdRepo.Save: %w", err)
	}
	return nil
}

type thresholdAuditRepo struct {
	db *sqlx.DB
}

// NewThresholdAuditRepo creates a new PostgreSQL-backed ThresholdAuditRepository.
func NewThresholdAuditRepo(db *sqlx.DB) port.ThresholdAuditRepository {
	return &thresholdAuditRepo{db: db}
}

func (r *thresholdAuditRepo) Create(ctx context.Context, entry *domain.ThresholdAuditEntry) error {
	entry.ID = uuid.New()
	if entry.ChangedAt.IsZero() {
		entry.ChangedAt = time.Now().UTC()
	}

	query := `INSERT INTO threshold_audit_log (id, old_auto_approve, old_quick_review,
		new_auto_approve, new_quick_review, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.OldAutoApprove, entry.OldQuickReview,
		entry.NewAutoApprove, entry.NewQuickReview, entry.ChangedBy, entry.ChangedAt)
	if err != nil {
		return fmt.Errorf("thresholdAuditRepo.Create: %w", err)
	}
	return nil
}

func (r *thresholdAuditRepo) List(ctx context.Context, offset, limit int) ([]domain.ThresholdAuditEntry, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM threshold_audit_log")
	if err != nil {
		return nil, 0, fmt.Errorf("thresholdAuditRepo.List count: %w", err)
	}

	var entries []domain.ThresholdAuditEntry
	err = r.db.SelectContext(ctx, &entries,
		"SELECT * FROM threshold_audit_log ORDER BY changed_at DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("thresholdAuditRepo.List: %w", err)
	}
	return entries, total, nil
}
