package mapping

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"docflow/internal/domain"
)

// Named functions available to computed transform rules.
const (
	FuncNormalizeDate   = "normalize_date"
	FuncNormalizeAmount = "normalize_amount"
	FuncNormalizeWeight = "normalize_weight"
	FuncUppercase       = "uppercase"
	FuncTrim            = "trim"
)

var datePatterns = []struct {
	re     *regexp.Regexp
	layout string
}{
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2}`), "2006-01-02"},
	{regexp.MustCompile(`\d{2}/\d{2}/\d{4}`), "01/02/2006"},
	{regexp.MustCompile(`\d{2}-\d{2}-\d{4}`), "01-02-2006"},
	{regexp.MustCompile(`\d{2}\.\d{2}\.\d{4}`), "02.01.2006"},
	{regexp.MustCompile(`(?i)\d{1,2} (Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec) \d{4}`), "2 Jan 2006"},
}

var (
	currencyJunkRe = regexp.MustCompile(`[^\d.,\-]`)
	weightUnitRe   = regexp.MustCompile(`(?i)(kgs|kg|lbs|lb|grams|gram|g)\.?`)
	weightNumberRe = regexp.MustCompile(`[\d.,]+`)
)

// applyTransform evaluates one rule against a raw source value. An empty
// return means the rule produced nothing and the next rule for the target
// gets its turn.
func applyTransform(rule *domain.MappingRule, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	switch rule.Transform {
	case domain.TransformPassthrough:
		return raw
	case domain.TransformLookup:
		return rule.Lookup[raw]
	case domain.TransformComputed:
		return applyFunction(rule.Function, raw)
	default:
		return ""
	}
}

func applyFunction(name, raw string) string {
	switch name {
	case FuncNormalizeDate:
		return NormalizeDate(raw)
	case FuncNormalizeAmount:
		return NormalizeAmount(raw)
	case FuncNormalizeWeight:
		return NormalizeWeight(raw)
	case FuncUppercase:
		return strings.ToUpper(raw)
	case FuncTrim:
		return strings.TrimSpace(raw)
	default:
		return ""
	}
}

// NormalizeDate rewrites recognized date strings to YYYY-MM-DD. Returns ""
// when no known format matches.
func NormalizeDate(value string) string {
	for _, p := range datePatterns {
		match := p.re.FindString(value)
		if match == "" {
			continue
		}
		// time.Parse is case-sensitive for month names
		if strings.Contains(p.layout, "Jan") {
			match = canonicalizeMonth(match)
		}
		parsed, err := time.Parse(p.layout, match)
		if err != nil {
			continue
		}
		return parsed.Format("2006-01-02")
	}
	return ""
}

func canonicalizeMonth(s string) string {
	parts := strings.Fields(s)
	for i, part := range parts {
		if len(part) == 3 {
			parts[i] = strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
		}
	}
	return strings.Join(parts, " ")
}

// NormalizeAmount strips currency symbols and separators and renders the
// amount with two decimals. Returns "" when no number remains.
func NormalizeAmount(value string) string {
	cleaned := currencyJunkRe.ReplaceAllString(value, "")
	if cleaned == "" {
		return ""
	}

	// Disambiguate comma usage: thousands separator vs decimal point.
	switch {
	case strings.Contains(cleaned, ",") && strings.Contains(cleaned, "."):
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case strings.Contains(cleaned, ","):
		parts := strings.Split(cleaned, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%.2f", amount)
}

// NormalizeWeight strips weight units and normalizes the remaining number.
func NormalizeWeight(value string) string {
	cleaned := strings.TrimSpace(weightUnitRe.ReplaceAllString(value, ""))
	match := weightNumberRe.FindString(cleaned)
	if match == "" {
		return ""
	}
	return NormalizeAmount(match)
}
