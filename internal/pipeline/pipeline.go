// Package pipeline orchestrates the per-document decision flow: resolve
// configuration, map fields, record terms, score confidence, route.
package pipeline

import (
	"context"
	"errors"
	"log"
	"time"

	"docflow/internal/confidence"
	"docflow/internal/domain"
	"docflow/internal/mapping"
	"docflow/internal/port"
	"docflow/internal/routing"
	"docflow/internal/scope"
	"docflow/internal/term"
)

// Outcome is the complete result of processing one document.
type Outcome struct {
	Mapping        mapping.Result
	Confidence     domain.ConfidenceResult
	ResolvedScope  domain.ConfigScope
	ResolvedConfig *domain.Configuration
}

// Pipeline runs the decision core for one document at a time. Instances are
// safe for concurrent use; each run owns its ProcessingContext exclusively
// and shares no mutable state with other runs.
type Pipeline struct {
	resolver      *scope.Resolver
	recorder      *term.Recorder
	gatherer      *confidence.Gatherer
	thresholdRepo port.ThresholdRepository
	weights       confidence.Weights
}

// New assembles a Pipeline from its collaborators. weights may be nil to
// use the default factor weighting.
func New(
	resolver *scope.Resolver,
	recorder *term.Recorder,
	gatherer *confidence.Gatherer,
	thresholdRepo port.ThresholdRepository,
	weights *confidence.Weights,
) *Pipeline {
	w := confidence.DefaultWeights()
	if weights != nil {
		w = *weights
	}
	return &Pipeline{
		resolver:      resolver,
		recorder:      recorder,
		gatherer:      gatherer,
		thresholdRepo: thresholdRepo,
		weights:       w,
	}
}

// Process runs the full decision flow. Nothing inside it aborts document
// processing: configuration resolution, term recording, and factor
// computation all degrade rather than fail, so a document always comes out
// with a mapped record, a score, and a routing decision. weightOverrides
// may replace any subset of the configured weights for this run.
func (p *Pipeline) Process(ctx context.Context, pctx *domain.ProcessingContext, weightOverrides map[string]float64) (*Outcome, error) {
	// Thresholds and configurations are externally mutated; read the
	// current state once per document and never cache across documents.
	thresholds := p.currentThresholds(ctx)

	cfg, matchedScope := p.resolver.Resolve(ctx, domain.ConfigKindMapping, pctx.OrganizationID, pctx.FormatID)

	mapped, err := mapping.MapFields(pctx.Extraction, cfg)
	if err != nil {
		// A malformed rule set degrades to direct mapping instead of
		// blocking the document.
		log.Printf("pipeline: mapping with resolved configuration failed (%v), falling back to direct mapping", err)
		mapped, _ = mapping.MapFields(pctx.Extraction, nil)
		matchedScope = domain.ScopeNone
	}

	if pctx.FormatID != nil {
		p.recorder.RecordTerms(ctx, *pctx.FormatID, pctx.Extraction.LineItems)
	}

	in := &confidence.Input{Context: pctx, Mapped: mapped}
	factors, degraded := p.gatherer.Gather(ctx, in, matchedScope)

	weights := p.weights.Overlay(weightOverrides)
	scorecard := confidence.Calculate(factors, &weights)
	decision := routing.Decide(scorecard.Overall, thresholds)

	result := domain.ConfidenceResult{
		OverallConfidence: scorecard.Overall,
		Breakdown:         scorecard.Breakdown,
		ScopeBonus:        scorecard.ScopeBonus,
		Decision:          decision,
		Explanation:       confidence.Explain(scorecard, decision, matchedScope, degraded),
		Degraded:          degraded,
		CalculatedAt:      time.Now().UTC(),
	}

	return &Outcome{
		Mapping:        mapped,
		Confidence:     result,
		ResolvedScope:  matchedScope,
		ResolvedConfig: cfg,
	}, nil
}

// currentThresholds reads the active thresholds, falling back to the
// built-in defaults when none are configured or the read fails.
func (p *Pipeline) currentThresholds(ctx context.Context) *domain.RoutingThresholds {
	t, err := p.thresholdRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Printf("pipeline: reading routing thresholds failed (%v), using defaults", err)
		}
		return routing.DefaultThresholds()
	}
	return t
}

// ConservativeOutcome is the fallback when the per-document deadline
// expires: route to full review rather than leave the document unresolved.
func ConservativeOutcome(pctx *domain.ProcessingContext) *Outcome {
	direct, _ := mapping.MapFields(pctx.Extraction, nil)
	return &Outcome{
		Mapping:       direct,
		ResolvedScope: domain.ScopeNone,
		Confidence: domain.ConfidenceResult{
			Decision:     domain.RoutingFullReview,
			Explanation:  "Processing exceeded its deadline before confidence scoring completed; routed to full review as a precaution.",
			CalculatedAt: time.Now().UTC(),
		},
	}
}
