// Package routing maps an overall confidence score to a review path.
package routing

import (
	"docflow/internal/domain"
)

// Default cut points, used until an operator configures thresholds.
const (
	DefaultAutoApproveMin = 0.90
	DefaultQuickReviewMin = 0.70
)

// DefaultThresholds returns the built-in routing thresholds.
func DefaultThresholds() *domain.RoutingThresholds {
	return &domain.RoutingThresholds{
		AutoApproveMin: DefaultAutoApproveMin,
		QuickReviewMin: DefaultQuickReviewMin,
	}
}

// Decide maps a score onto a routing decision. Each document is decided
// independently; thresholds are inclusive at the lower bound. A nil
// thresholds pointer applies the defaults.
func Decide(score float64, thresholds *domain.RoutingThresholds) domain.RoutingDecision {
	t := thresholds
	if t == nil {
		t = DefaultThresholds()
	}

	switch {
	case score >= t.AutoApproveMin:
		return domain.RoutingAutoApprove
	case score >= t.QuickReviewMin:
		return domain.RoutingQuickReview
	default:
		return domain.RoutingFullReview
	}
}
