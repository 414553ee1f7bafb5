package confidence

import "context"

// exactMatchBoost rewards an exact format match on top of the matcher's own
// confidence.
const exactMatchBoost = 0.1

// FormatMatchProvider passes through the format-matching confidence,
// boosted when the match was exact.
type FormatMatchProvider struct{}

func (FormatMatchProvider) Name() string     { return FactorFormatMatch }
func (FormatMatchProvider) Default() float64 { return neutralScore }

func (FormatMatchProvider) Compute(_ context.Context, in *Input) (float64, error) {
	fm := in.Context.FormatMatch
	if fm == nil {
		return neutralScore, nil
	}
	score := fm.Confidence
	if fm.IsExactMatch {
		score += exactMatchBoost
	}
	return clamp01(score), nil
}
