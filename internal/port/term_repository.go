package port

import (
	"context"

	"github.com/google/uuid"

	"docflow/internal/domain"
)

// TermRepository persists the per-format vocabulary of normalized line-item
// descriptions.
type TermRepository interface {
	// Upsert inserts a normalized term or increments its frequency.
	Upsert(ctx context.Context, formatID uuid.UUID, term string) error

	// CountByFormat returns the vocabulary size for a format.
	CountByFormat(ctx context.Context, formatID uuid.UUID) (int, error)

	// FilterKnown reports which of the given normalized terms already exist
	// in the format's vocabulary.
	FilterKnown(ctx context.Context, formatID uuid.UUID, terms []string) (map[string]bool, error)

	ListByFormat(ctx context.Context, formatID uuid.UUID, offset, limit int) ([]domain.ExtractedTerm, int, error)
}
