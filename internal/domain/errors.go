package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
	ErrDuplicateEmail     = errors.New("email already exists")

	// ErrInvalidThresholds rejects a threshold write that violates
	// auto_approve_min > quick_review_min >= 0 with both <= 1.
	ErrInvalidThresholds = errors.New("invalid routing thresholds: auto-approve cutoff must exceed quick-review cutoff and both must lie in [0,1]")

	// ErrDuplicateActiveConfig rejects activating a second configuration
	// for the same (kind, scope key).
	ErrDuplicateActiveConfig = errors.New("an active configuration already exists for this kind and scope")

	ErrInvalidConfigScope = errors.New("configuration scope does not match the provided organization/format identifiers")
	ErrInvalidRuleSet     = errors.New("mapping configuration contains an invalid rule set")
	ErrNoHistory          = errors.New("no review history for this organization and format")
	ErrResultNotFound     = errors.New("no processing result recorded for this document")
	ErrUploadFailed       = errors.New("scan upload to storage failed")
)
