package domain

// ConfigKind identifies the kind of persisted configuration.
type ConfigKind string

const (
	ConfigKindMapping ConfigKind = "mapping"
	ConfigKindPrompt  ConfigKind = "prompt"
)

// ConfigScope is the breadth at which a configuration applies. Narrower
// scopes win during resolution.
type ConfigScope string

const (
	// ScopeSpecific binds a configuration to one organization and one
	// document format.
	ScopeSpecific ConfigScope = "specific"
	// ScopeOrganization applies to every format of one organization.
	ScopeOrganization ConfigScope = "organization"
	// ScopeFormat applies to one document format across all organizations.
	ScopeFormat ConfigScope = "format"
	// ScopeGlobal applies to all organizations and formats.
	ScopeGlobal ConfigScope = "global"
	// ScopeDefault is the built-in fallback; never a persisted entity.
	ScopeDefault ConfigScope = "default"
	// ScopeNone marks the absence of any resolved configuration.
	ScopeNone ConfigScope = "none"
)

// TransformKind identifies how a mapping rule derives its target value.
type TransformKind string

const (
	TransformPassthrough TransformKind = "passthrough"
	TransformLookup      TransformKind = "lookup"
	TransformComputed    TransformKind = "computed"
)

// RoutingDecision classifies how much human review a document requires.
type RoutingDecision string

const (
	RoutingAutoApprove RoutingDecision = "auto_approve"
	RoutingQuickReview RoutingDecision = "quick_review"
	RoutingFullReview  RoutingDecision = "full_review"
)

// ReviewOutcome is the final verdict a reviewer records on a document.
type ReviewOutcome string

const (
	ReviewOutcomeApproved ReviewOutcome = "approved"
	ReviewOutcomeRejected ReviewOutcome = "rejected"
)

// UserRole defines the operator role hierarchy.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleReviewer UserRole = "reviewer"
)
