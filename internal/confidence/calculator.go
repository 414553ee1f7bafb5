package confidence

import (
	"docflow/internal/domain"
)

// Weights assigns each factor its share of the overall score. The defaults
// sum to 1.0; the scope bonus is additive on top of that budget.
type Weights struct {
	Extraction         float64 `mapstructure:"extraction" json:"extraction"`
	Issuer             float64 `mapstructure:"issuer" json:"issuer"`
	FormatMatch        float64 `mapstructure:"format_match" json:"format_match"`
	HistoricalAccuracy float64 `mapstructure:"historical_accuracy" json:"historical_accuracy"`
	Completeness       float64 `mapstructure:"completeness" json:"completeness"`
	TermMatch          float64 `mapstructure:"term_match" json:"term_match"`
}

// DefaultWeights returns the standard factor weighting.
func DefaultWeights() Weights {
	return Weights{
		Extraction:         0.25,
		Issuer:             0.15,
		FormatMatch:        0.10,
		HistoricalAccuracy: 0.15,
		Completeness:       0.15,
		TermMatch:          0.10,
	}
}

// Overlay returns a copy of w with any subset of weights replaced by the
// named overrides. Unknown names are ignored.
func (w Weights) Overlay(overrides map[string]float64) Weights {
	for name, value := range overrides {
		switch name {
		case FactorExtraction:
			w.Extraction = value
		case FactorIssuer:
			w.Issuer = value
		case FactorFormatMatch:
			w.FormatMatch = value
		case FactorHistory:
			w.HistoricalAccuracy = value
		case FactorCompleteness:
			w.Completeness = value
		case FactorTermMatch:
			w.TermMatch = value
		}
	}
	return w
}

// scopeBonuses rewards resolving a configuration at a narrow scope; the
// bonus sits outside the 1.0 weight budget.
var scopeBonuses = map[domain.ConfigScope]float64{
	domain.ScopeSpecific:     0.10,
	domain.ScopeOrganization: 0.06,
	domain.ScopeFormat:       0.04,
	domain.ScopeGlobal:       0.02,
}

// Scorecard is the calculator's arithmetic output; the explanation and
// routing decision are layered on by the caller.
type Scorecard struct {
	Overall          float64
	Breakdown        []domain.FactorContribution
	ScopeBonus       float64
	HistoryDefaulted bool
}

// Calculate combines the factor scores into one overall confidence:
// clamp(weighted sum + scope bonus, 0, 1). A nil weights pointer means
// DefaultWeights. Deterministic: identical inputs yield identical output.
//
// When no review history exists the historical factor weights in at
// historyDefault rather than being excluded with renormalized weights; this
// keeps the contribution of the remaining factors stable across cold starts.
func Calculate(factors domain.ConfidenceFactors, weights *Weights) Scorecard {
	w := DefaultWeights()
	if weights != nil {
		w = *weights
	}

	history := historyDefault
	defaulted := factors.HistoricalAccuracy == nil
	if !defaulted {
		history = *factors.HistoricalAccuracy
	}

	breakdown := []domain.FactorContribution{
		{Factor: FactorExtraction, Score: factors.Extraction, Weight: w.Extraction},
		{Factor: FactorIssuer, Score: factors.Issuer, Weight: w.Issuer},
		{Factor: FactorFormatMatch, Score: factors.FormatMatch, Weight: w.FormatMatch},
		{Factor: FactorHistory, Score: history, Weight: w.HistoricalAccuracy},
		{Factor: FactorCompleteness, Score: factors.Completeness, Weight: w.Completeness},
		{Factor: FactorTermMatch, Score: factors.TermMatch, Weight: w.TermMatch},
	}

	sum := 0.0
	for i := range breakdown {
		breakdown[i].Contribution = breakdown[i].Score * breakdown[i].Weight
		sum += breakdown[i].Contribution
	}

	bonus := scopeBonuses[factors.ScopeMatch]

	return Scorecard{
		Overall:          clamp01(sum + bonus),
		Breakdown:        breakdown,
		ScopeBonus:       bonus,
		HistoryDefaulted: defaulted,
	}
}
