package service

import (
	"context"

	"github.com/google/uuid"

	"docflow/internal/domain"
	"docflow/internal/port"
)

// VocabularyService exposes the per-format term vocabulary for inspection.
type VocabularyService interface {
	ListTerms(ctx context.Context, formatID uuid.UUID, offset, limit int) ([]domain.ExtractedTerm, int, error)
}

type vocabularyService struct {
	termRepo port.TermRepository
}

// NewVocabularyService creates a new VocabularyService implementation.
func NewVocabularyService(termRepo port.TermRepository) VocabularyService {
	return &vocabularyService{termRepo: termRepo}
}

func (s *vocabularyService) ListTerms(ctx context.Context, formatID uuid.UUID, offset, limit int) ([]domain.ExtractedTerm, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.termRepo.ListByFormat(ctx, formatID, offset, limit)
}
