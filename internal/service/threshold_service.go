package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"docflow/internal/domain"
	"docflow/internal/port"
	"docflow/internal/routing"
)

// ThresholdInput is the DTO for threshold update requests.
type ThresholdInput struct {
	AutoApproveMin float64 `json:"auto_approve_min" binding:"required"`
	QuickReviewMin float64 `json:"quick_review_min"`
}

// ThresholdService manages the routing cut points. Every change is validated
// against the ordering invariant and written to the audit log.
type ThresholdService interface {
	Get(ctx context.Context) (*domain.RoutingThresholds, error)
	Update(ctx context.Context, input ThresholdInput, changedBy uuid.UUID) (*domain.RoutingThresholds, error)
	AuditLog(ctx context.Context, offset, limit int) ([]domain.ThresholdAuditEntry, int, error)
}

type thresholdService struct {
	repo      port.ThresholdRepository
	auditRepo port.ThresholdAuditRepository
}

// NewThresholdService creates a new ThresholdService implementation.
func NewThresholdService(repo port.ThresholdRepository, auditRepo port.ThresholdAuditRepository) ThresholdService {
	return &thresholdService{repo: repo, auditRepo: auditRepo}
}

func (s *thresholdService) Get(ctx context.Context) (*domain.RoutingThresholds, error) {
	t, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return routing.DefaultThresholds(), nil
		}
		return nil, err
	}
	return t, nil
}

func (s *thresholdService) Update(ctx context.Context, input ThresholdInput, changedBy uuid.UUID) (*domain.RoutingThresholds, error) {
	proposed := &domain.RoutingThresholds{
		AutoApproveMin: input.AutoApproveMin,
		QuickReviewMin: input.QuickReviewMin,
		UpdatedBy:      changedBy,
	}
	if !proposed.Valid() {
		return nil, domain.ErrInvalidThresholds
	}

	current, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("threshold.Update: %w", err)
		}
		current = routing.DefaultThresholds()
	} else {
		proposed.ID = current.ID
	}

	if err := s.repo.Save(ctx, proposed); err != nil {
		return nil, err
	}

	entry := &domain.ThresholdAuditEntry{
		OldAutoApprove: current.AutoApproveMin,
		OldQuickReview: current.QuickReviewMin,
		NewAutoApprove: proposed.AutoApproveMin,
		NewQuickReview: proposed.QuickReviewMin,
		ChangedBy:      changedBy,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("threshold.Update audit: %w", err)
	}

	return proposed, nil
}

func (s *thresholdService) AuditLog(ctx context.Context, offset, limit int) ([]domain.ThresholdAuditEntry, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.auditRepo.List(ctx, offset, limit)
}
