package mapping

import (
	"encoding/json"
	"fmt"
	"sort"

	"docflow/internal/domain"
)

// Result holds the outcome of mapping one document's extracted fields.
type Result struct {
	Mapped   map[string]string `json:"mapped"`
	Unmapped []string          `json:"unmapped"`
}

// MapFields converts raw extracted field names into canonical target fields.
//
// With a resolved configuration the ordered rules apply: for each target the
// candidate rules are evaluated in index order and the first rule whose
// source is present and whose transform yields a non-empty value wins;
// remaining rules for that target are skipped. Without a configuration each
// source maps 1:1 onto an identically-named canonical target, if one exists.
//
// Pure function of its inputs; raw sources that contribute no mapped value
// are returned in Unmapped, sorted for determinism.
func MapFields(extracted domain.ExtractionResult, cfg *domain.Configuration) (Result, error) {
	if cfg == nil || len(cfg.Rules) == 0 {
		return directMap(extracted.Fields), nil
	}

	var rules []domain.MappingRule
	if err := json.Unmarshal(cfg.Rules, &rules); err != nil {
		return Result{}, fmt.Errorf("mapping.MapFields: decoding rules of configuration %s: %w", cfg.ID, err)
	}

	mapped := make(map[string]string)
	contributed := make(map[string]bool)

	for i := range rules {
		rule := &rules[i]
		if _, done := mapped[rule.TargetField]; done {
			continue
		}
		raw, present := extracted.Fields[rule.SourceField]
		if !present {
			continue
		}
		value := applyTransform(rule, raw)
		if value == "" {
			continue
		}
		mapped[rule.TargetField] = value
		contributed[rule.SourceField] = true
	}

	var unmapped []string
	for source := range extracted.Fields {
		if !contributed[source] {
			unmapped = append(unmapped, source)
		}
	}
	sort.Strings(unmapped)

	return Result{Mapped: mapped, Unmapped: unmapped}, nil
}

// directMap is the no-configuration fallback: source names that are already
// canonical map straight through.
func directMap(fields map[string]string) Result {
	mapped := make(map[string]string)
	var unmapped []string

	for source, value := range fields {
		if IsCanonical(source) && value != "" {
			mapped[source] = value
			continue
		}
		unmapped = append(unmapped, source)
	}
	sort.Strings(unmapped)

	return Result{Mapped: mapped, Unmapped: unmapped}
}

// DefaultConfiguration synthesizes the built-in mapping fallback: one
// passthrough rule per canonical field. It is not a persisted entity.
func DefaultConfiguration() *domain.Configuration {
	rules := make([]domain.MappingRule, 0, len(CanonicalFields))
	for _, field := range CanonicalFields {
		rules = append(rules, domain.MappingRule{
			SourceField: field,
			TargetField: field,
			Transform:   domain.TransformPassthrough,
		})
	}
	raw, _ := json.Marshal(rules)

	return &domain.Configuration{
		Kind:     domain.ConfigKindMapping,
		Scope:    domain.ScopeDefault,
		Name:     "built-in direct mapping",
		IsActive: true,
		Rules:    raw,
	}
}
