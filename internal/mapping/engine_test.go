package mapping

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docflow/internal/domain"
)

func rulesJSON(t *testing.T, rules []domain.MappingRule) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(rules)
	require.NoError(t, err)
	return raw
}

func TestMapFields_FirstNonEmptyRuleWins(t *testing.T) {
	// Two rules target document_number; the first produces nothing because
	// its source is absent, so the second wins.
	cfg := &domain.Configuration{
		Rules: rulesJSON(t, []domain.MappingRule{
			{SourceField: "invoice_no", TargetField: FieldDocumentNumber, Transform: domain.TransformPassthrough},
			{SourceField: "inv_number", TargetField: FieldDocumentNumber, Transform: domain.TransformPassthrough},
		}),
	}

	extracted := domain.ExtractionResult{
		Fields: map[string]string{"inv_number": "INV-77"},
	}

	result, err := MapFields(extracted, cfg)
	require.NoError(t, err)
	assert.Equal(t, "INV-77", result.Mapped[FieldDocumentNumber])
	assert.Empty(t, result.Unmapped)
}

func TestMapFields_EarlierRuleShadowsLater(t *testing.T) {
	cfg := &domain.Configuration{
		Rules: rulesJSON(t, []domain.MappingRule{
			{SourceField: "invoice_no", TargetField: FieldDocumentNumber, Transform: domain.TransformPassthrough},
			{SourceField: "inv_number", TargetField: FieldDocumentNumber, Transform: domain.TransformPassthrough},
		}),
	}

	extracted := domain.ExtractionResult{
		Fields: map[string]string{
			"invoice_no": "INV-1",
			"inv_number": "INV-2",
		},
	}

	result, err := MapFields(extracted, cfg)
	require.NoError(t, err)
	assert.Equal(t, "INV-1", result.Mapped[FieldDocumentNumber])
	// The shadowed source contributed nothing and surfaces as unmapped.
	assert.Equal(t, []string{"inv_number"}, result.Unmapped)
}

func TestMapFields_TransformsApply(t *testing.T) {
	cfg := &domain.Configuration{
		Rules: rulesJSON(t, []domain.MappingRule{
			{SourceField: "inv_date", TargetField: FieldDocumentDate, Transform: domain.TransformComputed, Function: FuncNormalizeDate},
			{SourceField: "grand_total", TargetField: FieldTotalAmount, Transform: domain.TransformComputed, Function: FuncNormalizeAmount},
			{SourceField: "curr", TargetField: FieldCurrency, Transform: domain.TransformLookup, Lookup: map[string]string{"US Dollar": "USD"}},
		}),
	}

	extracted := domain.ExtractionResult{
		Fields: map[string]string{
			"inv_date":    "03/15/2024",
			"grand_total": "$1,234.56",
			"curr":        "US Dollar",
		},
	}

	result, err := MapFields(extracted, cfg)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", result.Mapped[FieldDocumentDate])
	assert.Equal(t, "1234.56", result.Mapped[FieldTotalAmount])
	assert.Equal(t, "USD", result.Mapped[FieldCurrency])
}

func TestMapFields_UnmappedSortedAndComplete(t *testing.T) {
	cfg := &domain.Configuration{
		Rules: rulesJSON(t, []domain.MappingRule{
			{SourceField: "vendor", TargetField: FieldVendorName, Transform: domain.TransformPassthrough},
		}),
	}

	extracted := domain.ExtractionResult{
		Fields: map[string]string{
			"vendor":  "Acme Freight",
			"zebra":   "z",
			"alpha":   "a",
			"omitted": "",
		},
	}

	result, err := MapFields(extracted, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "omitted", "zebra"}, result.Unmapped)
}

func TestMapFields_NoConfigurationDirectMaps(t *testing.T) {
	extracted := domain.ExtractionResult{
		Fields: map[string]string{
			FieldVendorName: "Acme Freight",
			"mystery_field": "x",
		},
	}

	result, err := MapFields(extracted, nil)
	require.NoError(t, err)
	assert.Equal(t, "Acme Freight", result.Mapped[FieldVendorName])
	assert.Equal(t, []string{"mystery_field"}, result.Unmapped)
}

func TestMapFields_MalformedRulesError(t *testing.T) {
	cfg := &domain.Configuration{Rules: json.RawMessage(`{"not":"an array"`)}
	_, err := MapFields(domain.ExtractionResult{}, cfg)
	assert.Error(t, err)
}

func TestMapFields_Deterministic(t *testing.T) {
	cfg := DefaultConfiguration()
	extracted := domain.ExtractionResult{
		Fields: map[string]string{
			FieldDocumentNumber: "INV-9",
			FieldVendorName:     "Acme",
			"noise_a":           "1",
			"noise_b":           "2",
		},
	}

	first, err := MapFields(extracted, cfg)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := MapFields(extracted, cfg)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestDefaultConfiguration_CoversAllCanonicalFields(t *testing.T) {
	cfg := DefaultConfiguration()

	var rules []domain.MappingRule
	require.NoError(t, json.Unmarshal(cfg.Rules, &rules))
	require.Len(t, rules, len(CanonicalFields))
	for _, rule := range rules {
		assert.Equal(t, rule.SourceField, rule.TargetField)
		assert.Equal(t, domain.TransformPassthrough, rule.Transform)
		assert.True(t, IsCanonical(rule.TargetField))
	}
	assert.Equal(t, domain.ScopeDefault, cfg.Scope)
}
