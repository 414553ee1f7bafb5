package confidence

import (
	"context"

	"docflow/internal/mapping"
)

// Heuristic estimate used when the upstream extraction result carries no
// confidence of its own: a 0.5 baseline plus a fixed increment for each core
// signal present, capped at 1.0.
const (
	extractionBaseline  = 0.5
	extractionIncrement = 0.1
)

// ExtractionProvider reads the upstream extraction confidence, or estimates
// one from the presence of core fields.
type ExtractionProvider struct{}

func (ExtractionProvider) Name() string     { return FactorExtraction }
func (ExtractionProvider) Default() float64 { return extractionBaseline }

func (ExtractionProvider) Compute(_ context.Context, in *Input) (float64, error) {
	if c := in.Context.Extraction.Confidence; c != nil {
		return clamp01(*c), nil
	}

	score := extractionBaseline
	for _, field := range []string{
		mapping.FieldDocumentNumber,
		mapping.FieldDocumentDate,
		mapping.FieldTotalAmount,
		mapping.FieldVendorName,
	} {
		if in.Mapped.Mapped[field] != "" {
			score += extractionIncrement
		}
	}
	if len(in.Context.Extraction.LineItems) > 0 {
		score += extractionIncrement
	}
	return clamp01(score), nil
}
