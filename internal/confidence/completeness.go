package confidence

import (
	"context"

	"docflow/internal/mapping"
)

// Required canonical fields dominate the completeness score; optional
// fields and the line-items collection share the remainder.
const (
	requiredShare = 0.7
	optionalShare = 0.3
)

// CompletenessProvider scores how much of the canonical record the mapped
// fields actually fill. Empty strings and empty collections count as absent.
type CompletenessProvider struct{}

func (CompletenessProvider) Name() string     { return FactorCompleteness }
func (CompletenessProvider) Default() float64 { return neutralScore }

func (CompletenessProvider) Compute(_ context.Context, in *Input) (float64, error) {
	requiredPresent := 0
	for _, field := range mapping.RequiredFields {
		if in.Mapped.Mapped[field] != "" {
			requiredPresent++
		}
	}

	optionalPresent := 0
	for _, field := range mapping.OptionalFields {
		if in.Mapped.Mapped[field] != "" {
			optionalPresent++
		}
	}
	if len(in.Context.Extraction.LineItems) > 0 {
		optionalPresent++
	}
	optionalTotal := len(mapping.OptionalFields) + 1

	score := requiredShare*float64(requiredPresent)/float64(len(mapping.RequiredFields)) +
		optionalShare*float64(optionalPresent)/float64(optionalTotal)
	return clamp01(score), nil
}
