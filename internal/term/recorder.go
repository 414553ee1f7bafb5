// Package term maintains the per-format vocabulary of known line-item
// descriptions and computes how well a document's terms match it.
package term

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"docflow/internal/domain"
	"docflow/internal/port"
)

// Match-rate results for documents that give us nothing to evaluate. A
// format with no accumulated vocabulary gets the benefit of the doubt so new
// formats are not penalized before history exists.
const (
	ColdStartRate   = 0.7
	NoLineItemsRate = 0.5
)

// Recorder records and matches normalized line-item terms.
type Recorder struct {
	termRepo port.TermRepository
}

// NewRecorder creates a Recorder backed by the term store.
func NewRecorder(termRepo port.TermRepository) *Recorder {
	return &Recorder{termRepo: termRepo}
}

// Normalize lowercases, trims, and collapses internal whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// RecordTerms normalizes each line-item description and upserts it into the
// format's vocabulary. Individual upsert failures are logged and skipped so
// one bad row never blocks document processing.
func (r *Recorder) RecordTerms(ctx context.Context, formatID uuid.UUID, lineItems []domain.LineItem) {
	for i := range lineItems {
		normalized := Normalize(lineItems[i].Description)
		if normalized == "" {
			continue
		}
		if err := r.termRepo.Upsert(ctx, formatID, normalized); err != nil {
			log.Printf("term.Recorder: recording term %q for format %s failed: %v", normalized, formatID, err)
		}
	}
}

// MatchRate returns the fraction of the document's normalized descriptions
// already present in the format's vocabulary. Documents without line items
// score NoLineItemsRate; formats without any vocabulary score ColdStartRate.
func (r *Recorder) MatchRate(ctx context.Context, formatID uuid.UUID, descriptions []string) (float64, error) {
	terms := make([]string, 0, len(descriptions))
	for _, d := range descriptions {
		if normalized := Normalize(d); normalized != "" {
			terms = append(terms, normalized)
		}
	}
	if len(terms) == 0 {
		return NoLineItemsRate, nil
	}

	total, err := r.termRepo.CountByFormat(ctx, formatID)
	if err != nil {
		return 0, fmt.Errorf("term.MatchRate: counting vocabulary: %w", err)
	}
	if total == 0 {
		return ColdStartRate, nil
	}

	known, err := r.termRepo.FilterKnown(ctx, formatID, terms)
	if err != nil {
		return 0, fmt.Errorf("term.MatchRate: matching vocabulary: %w", err)
	}

	matched := 0
	for _, t := range terms {
		if known[t] {
			matched++
		}
	}
	return float64(matched) / float64(len(terms)), nil
}
