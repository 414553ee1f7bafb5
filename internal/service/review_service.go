package service

import (
	"context"

	"github.com/google/uuid"

	"docflow/internal/domain"
	"docflow/internal/port"
)

// ReviewInput is the DTO for recording a human review outcome.
type ReviewInput struct {
	DocumentID     uuid.UUID            `json:"document_id" binding:"required"`
	OrganizationID *uuid.UUID           `json:"organization_id"`
	FormatID       *uuid.UUID           `json:"format_id"`
	Outcome        domain.ReviewOutcome `json:"outcome" binding:"required,oneof=approved rejected"`
}

// ReviewService records review outcomes that feed the historical-accuracy
// factor on later documents.
type ReviewService interface {
	Record(ctx context.Context, input ReviewInput, reviewedBy uuid.UUID) (*domain.ReviewRecord, error)
}

type reviewService struct {
	repo port.ReviewRepository
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(repo port.ReviewRepository) ReviewService {
	return &reviewService{repo: repo}
}

func (s *reviewService) Record(ctx context.Context, input ReviewInput, reviewedBy uuid.UUID) (*domain.ReviewRecord, error) {
	rec := &domain.ReviewRecord{
		DocumentID:     input.DocumentID,
		OrganizationID: input.OrganizationID,
		FormatID:       input.FormatID,
		Outcome:        input.Outcome,
		ReviewedBy:     reviewedBy,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
