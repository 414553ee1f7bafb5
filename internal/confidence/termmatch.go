package confidence

import (
	"context"

	"docflow/internal/term"
)

// TermMatchProvider scores the fraction of line-item descriptions already
// known in the format's vocabulary. Documents without a format identifier
// are treated as cold starts.
type TermMatchProvider struct {
	recorder *term.Recorder
}

// NewTermMatchProvider creates a TermMatchProvider over the term recorder.
func NewTermMatchProvider(recorder *term.Recorder) *TermMatchProvider {
	return &TermMatchProvider{recorder: recorder}
}

func (*TermMatchProvider) Name() string     { return FactorTermMatch }
func (*TermMatchProvider) Default() float64 { return neutralScore }

func (p *TermMatchProvider) Compute(ctx context.Context, in *Input) (float64, error) {
	items := in.Context.Extraction.LineItems
	if len(items) == 0 {
		return term.NoLineItemsRate, nil
	}
	if in.Context.FormatID == nil {
		return term.ColdStartRate, nil
	}

	descriptions := make([]string, 0, len(items))
	for i := range items {
		descriptions = append(descriptions, items[i].Description)
	}
	return p.recorder.MatchRate(ctx, *in.Context.FormatID, descriptions)
}
