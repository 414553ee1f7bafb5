// Package confidence scores how trustworthy a processed document's
// structured record is. Six independent factor providers each contribute a
// normalized [0,1] signal; the calculator combines them with configurable
// weights and a scope-match bonus into one overall score with an
// operator-facing explanation.
package confidence

import (
	"context"

	"docflow/internal/domain"
	"docflow/internal/mapping"
)

// Factor names, used in breakdowns, explanations, and weight overrides.
const (
	FactorExtraction   = "extraction"
	FactorIssuer       = "issuer"
	FactorFormatMatch  = "format_match"
	FactorHistory      = "historical_accuracy"
	FactorCompleteness = "completeness"
	FactorTermMatch    = "term_match"
)

// Input is the read-only snapshot one document run hands to every provider.
type Input struct {
	Context *domain.ProcessingContext
	Mapped  mapping.Result
}

// FactorProvider computes one confidence signal. Compute must stay within
// [0,1]; a failing provider degrades to its Default instead of aborting the
// calculation.
type FactorProvider interface {
	Name() string
	Default() float64
	Compute(ctx context.Context, in *Input) (float64, error)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
