package confidence

import (
	"context"
	"errors"
	"log"
	"sync"

	"docflow/internal/domain"
)

// Gatherer fans the six factor providers out concurrently and joins their
// scores into one ConfidenceFactors value.
type Gatherer struct {
	extraction   ExtractionProvider
	issuer       IssuerProvider
	format       FormatMatchProvider
	history      *HistoryProvider
	completeness CompletenessProvider
	termMatch    *TermMatchProvider
}

// NewGatherer wires the stateless providers together with the two that
// carry dependencies.
func NewGatherer(history *HistoryProvider, termMatch *TermMatchProvider) *Gatherer {
	return &Gatherer{history: history, termMatch: termMatch}
}

// Gather runs all providers concurrently and blocks until every one has
// settled. A failing provider degrades to its documented default and is
// named in the returned degradation list; scoring always produces a result.
func (g *Gatherer) Gather(ctx context.Context, in *Input, scopeMatch domain.ConfigScope) (domain.ConfidenceFactors, []string) {
	providers := []FactorProvider{
		g.extraction,
		g.issuer,
		g.format,
		g.history,
		g.completeness,
		g.termMatch,
	}

	scores := make([]float64, len(providers))
	errs := make([]error, len(providers))

	var wg sync.WaitGroup
	wg.Add(len(providers))
	for i, p := range providers {
		go func(i int, p FactorProvider) {
			defer wg.Done()
			scores[i], errs[i] = p.Compute(ctx, in)
		}(i, p)
	}
	wg.Wait()

	factors := domain.ConfidenceFactors{ScopeMatch: scopeMatch}
	var degraded []string

	for i, p := range providers {
		score := scores[i]
		if err := errs[i]; err != nil {
			if p.Name() == FactorHistory && errors.Is(err, domain.ErrNoHistory) {
				// Cold start, not a failure: the calculator substitutes the
				// documented default at weighting time.
				continue
			}
			log.Printf("confidence.Gatherer: provider %s failed (%v), degrading to default %.2f", p.Name(), err, p.Default())
			degraded = append(degraded, p.Name())
			score = p.Default()
		}

		switch p.Name() {
		case FactorExtraction:
			factors.Extraction = score
		case FactorIssuer:
			factors.Issuer = score
		case FactorFormatMatch:
			factors.FormatMatch = score
		case FactorHistory:
			s := score
			factors.HistoricalAccuracy = &s
		case FactorCompleteness:
			factors.Completeness = score
		case FactorTermMatch:
			factors.TermMatch = score
		}
	}

	return factors, degraded
}
