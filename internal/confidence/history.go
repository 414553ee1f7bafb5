package confidence

import (
	"context"
	"fmt"

	"docflow/internal/domain"
	"docflow/internal/port"
)

const (
	// historyWindow bounds the read: only the most recent decisions count.
	historyWindow = 100
	// historyDefault is the weighting substitute when no history exists.
	historyDefault = 0.8
)

// HistoryProvider computes the fraction of approved outcomes among the most
// recent review decisions for the document's (organization, format) pair.
// It is the one provider that reads storage; the read is bounded by
// historyWindow. Returns domain.ErrNoHistory for cold-start pairs, which the
// calculator substitutes with historyDefault for weighting.
type HistoryProvider struct {
	reviewRepo port.ReviewRepository
}

// NewHistoryProvider creates a HistoryProvider backed by the review store.
func NewHistoryProvider(reviewRepo port.ReviewRepository) *HistoryProvider {
	return &HistoryProvider{reviewRepo: reviewRepo}
}

func (*HistoryProvider) Name() string     { return FactorHistory }
func (*HistoryProvider) Default() float64 { return historyDefault }

func (p *HistoryProvider) Compute(ctx context.Context, in *Input) (float64, error) {
	records, err := p.reviewRepo.ListRecent(ctx, in.Context.OrganizationID, in.Context.FormatID, historyWindow)
	if err != nil {
		return 0, fmt.Errorf("confidence.HistoryProvider: %w", err)
	}
	if len(records) == 0 {
		return 0, domain.ErrNoHistory
	}

	approved := 0
	for i := range records {
		if records[i].Outcome == domain.ReviewOutcomeApproved {
			approved++
		}
	}
	return float64(approved) / float64(len(records)), nil
}
