package confidence

import (
	"fmt"
	"sort"
	"strings"

	"docflow/internal/domain"
)

var factorLabels = map[string]string{
	FactorExtraction:   "extraction confidence",
	FactorIssuer:       "issuer identification",
	FactorFormatMatch:  "format match",
	FactorHistory:      "historical accuracy",
	FactorCompleteness: "field completeness",
	FactorTermMatch:    "known-term match",
}

var decisionLabels = map[domain.RoutingDecision]string{
	domain.RoutingAutoApprove: "auto-approve",
	domain.RoutingQuickReview: "quick review",
	domain.RoutingFullReview:  "full review",
}

// Explain renders the operator-facing justification for a routing decision:
// the top three contributing factors, the scope bonus if any, substituted
// defaults and degradations, and the routing label.
func Explain(sc Scorecard, decision domain.RoutingDecision, scopeMatch domain.ConfigScope, degraded []string) string {
	top := make([]domain.FactorContribution, len(sc.Breakdown))
	copy(top, sc.Breakdown)
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].Contribution != top[j].Contribution {
			return top[i].Contribution > top[j].Contribution
		}
		return top[i].Factor < top[j].Factor
	})

	parts := make([]string, 0, 3)
	for _, c := range top[:3] {
		parts = append(parts, fmt.Sprintf("%s (%.2f)", factorLabels[c.Factor], c.Score))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Overall confidence %.2f, led by %s.", sc.Overall, joinNatural(parts))

	if sc.ScopeBonus > 0 {
		fmt.Fprintf(&b, " A %s-scope configuration matched, adding a %.2f bonus.", scopeMatch, sc.ScopeBonus)
	}
	if sc.HistoryDefaulted {
		fmt.Fprintf(&b, " No review history exists for this organization and format; historical accuracy defaulted to %.2f.", historyDefault)
	}
	if len(degraded) > 0 {
		labels := make([]string, 0, len(degraded))
		for _, name := range degraded {
			labels = append(labels, factorLabels[name])
		}
		fmt.Fprintf(&b, " Degraded to defaults after provider failure: %s.", strings.Join(labels, ", "))
	}

	fmt.Fprintf(&b, " Routed to %s.", decisionLabels[decision])
	return b.String()
}

func joinNatural(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " and " + parts[1]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
	}
}
