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

type termRepo struct {
	db *sqlx.DB
}

// NewTermRepo creates a new PostgreSQL-backed TermRepository.
func NewTermRepo(db *sqlx.DB) port.TermRepository {
	return &termRepo{db: db}
}

func (r *termRepo) Upsert(ctx context.Context, formatID uuid.UUID, term string) error {
	now := time.Now().UTC()
	query := `INSERT INTO extracted_terms (id, format_id, term, frequency, first_seen, last_seen)
		VALUES ($1, $2, $3, 1, $4, $4)
		ON CONFLICT (format_id, term)
		DO UPDATE SET frequency = extracted_terms.frequency + 1, last_seen = $4`

	_, err := r.db.ExecContext(ctx, query, uuid.New(), formatID, term, now)
	if err != nil {
		return fmt.Errorf("termRepo.Upsert: %w", err)
	}
	return nil
}

func (r *termRepo) CountByFormat(ctx context.Context, formatID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM extracted_terms WHERE format_id = $1", formatID)
	if err != nil {
		return 0, fmt.Errorf("termRepo.CountByFormat: %w", err)
	}
	return count, nil
}

func (r *termRepo) FilterKnown(ctx context.Context, formatID uuid.UUID, terms []string) (map[string]bool, error) {
	known := make(map[string]bool, len(terms))
	if len(terms) == 0 {
		return known, nil
	}

	query, args, err := sqlx.In(
		"SELECT term FROM extracted_terms WHERE format_id = ? AND term IN (?)",
		formatID, terms)
	if err != nil {
		return nil, fmt.Errorf("termRepo.FilterKnown: %w", err)
	}
	query = r.db.Rebind(query)

	var found []string
	if err := r.db.SelectContext(ctx, &found, query, args...); err != nil {
		return nil, fmt.Errorf("termRepo.FilterKnown: %w", err)
	}
	for _, t := range found {
		known[t] = true
	}
	return known, nil
}

func (r *termRepo) ListByFormat(ctx context.Context, formatID uuid.UUID, offset, limit int) ([]domain.ExtractedTerm, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM extracted_terms WHERE format_id = $1", formatID)
	if err != nil {
		return nil, 0, fmt.Errorf("termRepo.ListByFormat count: %w", err)
	}

	var terms []domain.ExtractedTerm
	err = r.db.SelectContext(ctx, &terms,
		"SELECT * FROM extracted_terms WHERE format_id = $1 ORDER BY frequency DESC, term LIMIT $2 OFFSET $3",
		formatID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("termRepo.ListByFormat: %w", err)
	}
	return terms, total, nil
}
