package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated operator.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Configuration is a persisted mapping or prompt configuration bound to a
// scope. At most one active configuration exists per (kind, scope key); the
// pipeline only ever reads it.
type Configuration struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	Kind           ConfigKind      `db:"kind" json:"kind"`
	Scope          ConfigScope     `db:"scope" json:"scope"`
	OrganizationID *uuid.UUID      `db:"organization_id" json:"organization_id"`
	FormatID       *uuid.UUID      `db:"format_id" json:"format_id"`
	Name           string          `db:"name" json:"name"`
	Priority       int             `db:"priority" json:"priority"`
	Version        int             `db:"version" json:"version"`
	IsActive       bool            `db:"is_active" json:"is_active"`
	Rules          json.RawMessage `db:"rules" json:"rules"`
	PromptTemplate string          `db:"prompt_template" json:"prompt_template"`
	CreatedBy      uuid.UUID       `db:"created_by" json:"created_by"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// MappingRule is one ordered transform inside a mapping configuration.
// Rules are evaluated in ascending index order; the first rule producing a
// non-empty value for a target wins.
type MappingRule struct {
	SourceField string            `json:"source_field"`
	TargetField string            `json:"target_field"`
	Transform   TransformKind     `json:"transform"`
	Lookup      map[string]string `json:"lookup,omitempty"`
	Function    string            `json:"function,omitempty"`
}

// LineItem is one extracted line of a trade document.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}

// ExtractionResult is the opaque payload produced by the upstream
// OCR/vision collaborator. Fields carries the raw extracted field names.
type ExtractionResult struct {
	Confidence *float64          `json:"confidence,omitempty"`
	Fields     map[string]string `json:"fields"`
	LineItems  []LineItem        `json:"line_items"`
}

// IssuerIdentification is the result of the issuer-identification
// collaborator.
type IssuerIdentification struct {
	Confidence float64 `json:"confidence"`
	Method     string  `json:"method"`
}

// FormatMatch is the result of the format-matching collaborator.
type FormatMatch struct {
	Confidence   float64 `json:"confidence"`
	IsExactMatch bool    `json:"is_exact_match"`
}

// ProcessingContext is the immutable per-document input to the decision
// pipeline. It is created once at intake and only read downstream.
type ProcessingContext struct {
	DocumentID     uuid.UUID
	OrganizationID *uuid.UUID
	FormatID       *uuid.UUID
	Extraction     ExtractionResult
	Issuer         *IssuerIdentification
	FormatMatch    *FormatMatch
}

// ExtractedTerm is a normalized line-item description recorded against a
// document format's vocabulary. Frequency only ever grows.
type ExtractedTerm struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FormatID  uuid.UUID `db:"format_id" json:"format_id"`
	Term      string    `db:"term" json:"term"`
	Frequency int64     `db:"frequency" json:"frequency"`
	FirstSeen time.Time `db:"first_seen" json:"first_seen"`
	LastSeen  time.Time `db:"last_seen" json:"last_seen"`
}

// ConfidenceFactors holds the six raw factor scores for one document plus
// the scope at which configuration resolution matched. Recomputed fresh on
// every run. HistoricalAccuracy is nil when no review history exists.
type ConfidenceFactors struct {
	Extraction         float64     `json:"extraction"`
	Issuer             float64     `json:"issuer"`
	FormatMatch        float64     `json:"format_match"`
	HistoricalAccuracy *float64    `json:"historical_accuracy"`
	Completeness       float64     `json:"completeness"`
	TermMatch          float64     `json:"term_match"`
	ScopeMatch         ConfigScope `json:"scope_match"`
}

// FactorContribution is one factor's share of the overall score.
type FactorContribution struct {
	Factor       string  `json:"factor"`
	Score        float64 `json:"score"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// ConfidenceResult is the immutable outcome of scoring one document.
type ConfidenceResult struct {
	OverallConfidence float64              `json:"overall_confidence"`
	Breakdown         []FactorContribution `json:"breakdown"`
	ScopeBonus        float64              `json:"scope_bonus"`
	Decision          RoutingDecision      `json:"decision"`
	Explanation       string               `json:"explanation"`
	Degraded          []string             `json:"degraded,omitempty"`
	CalculatedAt      time.Time            `json:"calculated_at"`
}

// RoutingThresholds holds the two cut points that govern routing.
// Invariant: AutoApproveMin > QuickReviewMin >= 0, both <= 1.
type RoutingThresholds struct {
	ID             uuid.UUID `db:"id" json:"id"`
	AutoApproveMin float64   `db:"auto_approve_min" json:"auto_approve_min"`
	QuickReviewMin float64   `db:"quick_review_min" json:"quick_review_min"`
	UpdatedBy      uuid.UUID `db:"updated_by" json:"updated_by"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Valid reports whether the thresholds satisfy the ordering invariant.
func (t *RoutingThresholds) Valid() bool {
	return t.QuickReviewMin >= 0 &&
		t.AutoApproveMin > t.QuickReviewMin &&
		t.AutoApproveMin <= 1
}

// ThresholdAuditEntry records a threshold change for audit.
type ThresholdAuditEntry struct {
	ID             uuid.UUID `db:"id" json:"id"`
	OldAutoApprove float64   `db:"old_auto_approve" json:"old_auto_approve"`
	OldQuickReview float64   `db:"old_quick_review" json:"old_quick_review"`
	NewAutoApprove float64   `db:"new_auto_approve" json:"new_auto_approve"`
	NewQuickReview float64   `db:"new_quick_review" json:"new_quick_review"`
	ChangedBy      uuid.UUID `db:"changed_by" json:"changed_by"`
	ChangedAt      time.Time `db:"changed_at" json:"changed_at"`
}

// ReviewRecord is a human review outcome for a processed document; the
// historical-accuracy factor reads these back by recency.
type ReviewRecord struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	DocumentID     uuid.UUID     `db:"document_id" json:"document_id"`
	OrganizationID *uuid.UUID    `db:"organization_id" json:"organization_id"`
	FormatID       *uuid.UUID    `db:"format_id" json:"format_id"`
	Outcome        ReviewOutcome `db:"outcome" json:"outcome"`
	ReviewedBy     uuid.UUID     `db:"reviewed_by" json:"reviewed_by"`
	ReviewedAt     time.Time     `db:"reviewed_at" json:"reviewed_at"`
}

// ProcessingResultRecord is the persisted audit record of one pipeline run:
// the mapped fields plus the confidence result and routing decision.
type ProcessingResultRecord struct {
	ID                uuid.UUID       `db:"id" json:"id"`
	DocumentID        uuid.UUID       `db:"document_id" json:"document_id"`
	OrganizationID    *uuid.UUID      `db:"organization_id" json:"organization_id"`
	FormatID          *uuid.UUID      `db:"format_id" json:"format_id"`
	MappedFields      json.RawMessage `db:"mapped_fields" json:"mapped_fields"`
	UnmappedFields    json.RawMessage `db:"unmapped_fields" json:"unmapped_fields"`
	OverallConfidence float64         `db:"overall_confidence" json:"overall_confidence"`
	FactorBreakdown   json.RawMessage `db:"factor_breakdown" json:"factor_breakdown"`
	ScopeBonus        float64         `db:"scope_bonus" json:"scope_bonus"`
	Decision          RoutingDecision `db:"decision" json:"decision"`
	Explanation       string          `db:"explanation" json:"explanation"`
	ScanBucket        string          `db:"scan_bucket" json:"scan_bucket"`
	ScanKey           string          `db:"scan_key" json:"scan_key"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
}
