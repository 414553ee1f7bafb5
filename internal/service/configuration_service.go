package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"docflow/internal/domain"
	"docflow/internal/mapping"
	"docflow/internal/port"
)

// ConfigurationInput is the DTO for configuration create and update requests.
type ConfigurationInput struct {
	Kind           domain.ConfigKind  `json:"kind" binding:"required,oneof=mapping prompt"`
	Scope          domain.ConfigScope `json:"scope" binding:"required,oneof=specific organization format global"`
	OrganizationID *uuid.UUID         `json:"organization_id"`
	FormatID       *uuid.UUID         `json:"format_id"`
	Name           string             `json:"name" binding:"required"`
	Priority       int                `json:"priority"`
	IsActive       bool               `json:"is_active"`
	Rules          json.RawMessage    `json:"rules"`
	PromptTemplate string             `json:"prompt_template"`
}

// ConfigurationService manages scoped mapping and prompt configurations.
type ConfigurationService interface {
	Create(ctx context.Context, input ConfigurationInput, createdBy uuid.UUID) (*domain.Configuration, error)
	Update(ctx context.Context, id uuid.UUID, input ConfigurationInput) (*domain.Configuration, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Configuration, error)
	List(ctx context.Context, kind domain.ConfigKind, offset, limit int) ([]domain.Configuration, int, error)
}

type configurationService struct {
	repo port.ConfigurationRepository
}

// NewConfigurationService creates a new ConfigurationService implementation.
func NewConfigurationService(repo port.ConfigurationRepository) ConfigurationService {
	return &configurationService{repo: repo}
}

func (s *configurationService) Create(ctx context.Context, input ConfigurationInput, createdBy uuid.UUID) (*domain.Configuration, error) {
	if err := validateScopeKey(input.Scope, input.OrganizationID, input.FormatID); err != nil {
		return nil, err
	}
	if input.Kind == domain.ConfigKindMapping {
		if err := validateRules(input.Rules); err != nil {
			return nil, err
		}
	}

	if input.IsActive {
		count, err := s.repo.CountActive(ctx, input.Kind, input.Scope, input.OrganizationID, input.FormatID, uuid.Nil)
		if err != nil {
			return nil, fmt.Errorf("configuration.Create: %w", err)
		}
		if count > 0 {
			return nil, domain.ErrDuplicateActiveConfig
		}
	}

	cfg := &domain.Configuration{
		Kind:           input.Kind,
		Scope:          input.Scope,
		OrganizationID: input.OrganizationID,
		FormatID:       input.FormatID,
		Name:           input.Name,
		Priority:       input.Priority,
		IsActive:       input.IsActive,
		Rules:          input.Rules,
		PromptTemplate: input.PromptTemplate,
		CreatedBy:      createdBy,
	}
	if err := s.repo.Create(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *configurationService) Update(ctx context.Context, id uuid.UUID, input ConfigurationInput) (*domain.Configuration, error) {
	cfg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Scope and kind are immutable after creation; only the payload and
	// activation state change.
	if input.Kind == domain.ConfigKindMapping || cfg.Kind == domain.ConfigKindMapping {
		if err := validateRules(input.Rules); err != nil {
			return nil, err
		}
	}

	if input.IsActive {
		count, err := s.repo.CountActive(ctx, cfg.Kind, cfg.Scope, cfg.OrganizationID, cfg.FormatID, cfg.ID)
		if err != nil {
			return nil, fmt.Errorf("configuration.Update: %w", err)
		}
		if count > 0 {
			return nil, domain.ErrDuplicateActiveConfig
		}
	}

	cfg.Name = input.Name
	cfg.Priority = input.Priority
	cfg.IsActive = input.IsActive
	cfg.Rules = input.Rules
	cfg.PromptTemplate = input.PromptTemplate

	if err := s.repo.Update(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *configurationService) Get(ctx context.Context, id uuid.UUID) (*domain.Configuration, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *configurationService) List(ctx context.Context, kind domain.ConfigKind, offset, limit int) ([]domain.Configuration, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, kind, offset, limit)
}

// validateScopeKey checks that the identifiers required by the scope are
// present and that out-of-scope identifiers are absent.
func validateScopeKey(scope domain.ConfigScope, organizationID, formatID *uuid.UUID) error {
	switch scope {
	case domain.ScopeSpecific:
		if organizationID == nil || formatID == nil {
			return domain.ErrInvalidConfigScope
		}
	case domain.ScopeOrganization:
		if organizationID == nil || formatID != nil {
			return domain.ErrInvalidConfigScope
		}
	case domain.ScopeFormat:
		if formatID == nil || organizationID != nil {
			return domain.ErrInvalidConfigScope
		}
	case domain.ScopeGlobal:
		if organizationID != nil || formatID != nil {
			return domain.ErrInvalidConfigScope
		}
	default:
		return domain.ErrInvalidConfigScope
	}
	return nil
}

// validateRules checks that a mapping rule set parses and that every rule
// targets a canonical field and names a source.
func validateRules(raw json.RawMessage) error {
	if len(raw) == 0 {
		return domain.ErrInvalidRuleSet
	}
	var rules []domain.MappingRule
	if err := json.Unmarshal(raw, &rules); err != nil {
		return domain.ErrInvalidRuleSet
	}
	if len(rules) == 0 {
		return domain.ErrInvalidRuleSet
	}
	for _, rule := range rules {
		if rule.SourceField == "" || rule.TargetField == "" {
			return domain.ErrInvalidRuleSet
		}
		if !mapping.IsCanonical(rule.TargetField) {
			return domain.ErrInvalidRuleSet
		}
		switch rule.Transform {
		case domain.TransformPassthrough, domain.TransformLookup, domain.TransformComputed:
		default:
			return domain.ErrInvalidRuleSet
		}
	}
	return nil
}
