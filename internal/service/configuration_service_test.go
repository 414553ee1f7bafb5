package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docflow/internal/domain"
	"docflow/internal/mapping"
	"docflow/mocks"
)

func validRules(t *testing.T) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal([]domain.MappingRule{
		{SourceField: "invoice_no", TargetField: mapping.FieldDocumentNumber, Transform: domain.TransformPassthrough},
	})
	require.NoError(t, err)
	return raw
}

func TestConfigurationService_Create_ValidMapping(t *testing.T) {
	orgID := uuid.New()
	formatID := uuid.New()

	repo := new(mocks.MockConfigurationRepo)
	repo.On("CountActive", mock.Anything, domain.ConfigKindMapping, domain.ScopeSpecific, &orgID, &formatID, uuid.Nil).
		Return(0, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewConfigurationService(repo)

	cfg, err := svc.Create(context.Background(), ConfigurationInput{
		Kind:           domain.ConfigKindMapping,
		Scope:          domain.ScopeSpecific,
		OrganizationID: &orgID,
		FormatID:       &formatID,
		Name:           "acme ocean invoices",
		IsActive:       true,
		Rules:          validRules(t),
	}, uuid.New())

	require.NoError(t, err)
	assert.Equal(t, domain.ScopeSpecific, cfg.Scope)
	repo.AssertExpectations(t)
}

func TestConfigurationService_Create_ScopeKeyValidation(t *testing.T) {
	orgID := uuid.New()
	formatID := uuid.New()

	tests := []struct {
		name     string
		scope    domain.ConfigScope
		orgID    *uuid.UUID
		formatID *uuid.UUID
	}{
		{"specific missing format", domain.ScopeSpecific, &orgID, nil},
		{"specific missing organization", domain.ScopeSpecific, nil, &formatID},
		{"organization missing organization", domain.ScopeOrganization, nil, nil},
		{"organization carries format", domain.ScopeOrganization, &orgID, &formatID},
		{"format missing format", domain.ScopeFormat, nil, nil},
		{"format carries organization", domain.ScopeFormat, &orgID, &formatID},
		{"global carries organization", domain.ScopeGlobal, &orgID, nil},
		{"global carries format", domain.ScopeGlobal, nil, &formatID},
	}

	svc := NewConfigurationService(new(mocks.MockConfigurationRepo))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), ConfigurationInput{
				Kind:           domain.ConfigKindMapping,
				Scope:          tt.scope,
				OrganizationID: tt.orgID,
				FormatID:       tt.formatID,
				Name:           "x",
				Rules:          validRules(t),
			}, uuid.New())
			assert.ErrorIs(t, err, domain.ErrInvalidConfigScope)
		})
	}
}

func TestConfigurationService_Create_RuleValidation(t *testing.T) {
	tests := []struct {
		name  string
		rules json.RawMessage
	}{
		{"empty payload", nil},
		{"not an array", json.RawMessage(`{"a":1}`)},
		{"empty array", json.RawMessage(`[]`)},
		{"missing source", json.RawMessage(`[{"target_field":"vendor_name","transform":"passthrough"}]`)},
		{"missing target", json.RawMessage(`[{"source_field":"v","transform":"passthrough"}]`)},
		{"non-canonical target", json.RawMessage(`[{"source_field":"v","target_field":"made_up","transform":"passthrough"}]`)},
		{"unknown transform", json.RawMessage(`[{"source_field":"v","target_field":"vendor_name","transform":"regex"}]`)},
	}

	svc := NewConfigurationService(new(mocks.MockConfigurationRepo))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), ConfigurationInput{
				Kind:  domain.ConfigKindMapping,
				Scope: domain.ScopeGlobal,
				Name:  "x",
				Rules: tt.rules,
			}, uuid.New())
			assert.ErrorIs(t, err, domain.ErrInvalidRuleSet)
		})
	}
}

func TestConfigurationService_Create_RejectsSecondActiveAtScope(t *testing.T) {
	repo := new(mocks.MockConfigurationRepo)
	repo.On("CountActive", mock.Anything, domain.ConfigKindMapping, domain.ScopeGlobal, (*uuid.UUID)(nil), (*uuid.UUID)(nil), uuid.Nil).
		Return(1, nil)

	svc := NewConfigurationService(repo)

	_, err := svc.Create(context.Background(), ConfigurationInput{
		Kind:     domain.ConfigKindMapping,
		Scope:    domain.ScopeGlobal,
		Name:     "second global",
		IsActive: true,
		Rules:    validRules(t),
	}, uuid.New())

	assert.ErrorIs(t, err, domain.ErrDuplicateActiveConfig)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestConfigurationService_Create_InactiveSkipsUniquenessCheck(t *testing.T) {
	repo := new(mocks.MockConfigurationRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewConfigurationService(repo)

	_, err := svc.Create(context.Background(), ConfigurationInput{
		Kind:  domain.ConfigKindMapping,
		Scope: domain.ScopeGlobal,
		Name:  "draft",
		Rules: validRules(t),
	}, uuid.New())

	require.NoError(t, err)
	repo.AssertNotCalled(t, "CountActive", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfigurationService_Update_ScopeAndKindImmutable(t *testing.T) {
	orgID := uuid.New()
	existing := &domain.Configuration{
		ID:             uuid.New(),
		Kind:           domain.ConfigKindMapping,
		Scope:          domain.ScopeOrganization,
		OrganizationID: &orgID,
		Name:           "before",
		Rules:          validRules(t),
	}

	repo := new(mocks.MockConfigurationRepo)
	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(cfg *domain.Configuration) bool {
		return cfg.Scope == domain.ScopeOrganization && cfg.Kind == domain.ConfigKindMapping && cfg.Name == "after"
	})).Return(nil)

	svc := NewConfigurationService(repo)

	got, err := svc.Update(context.Background(), existing.ID, ConfigurationInput{
		Kind:  domain.ConfigKindMapping,
		Scope: domain.ScopeGlobal,
		Name:  "after",
		Rules: validRules(t),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ScopeOrganization, got.Scope)
	repo.AssertExpectations(t)
}

func TestConfigurationService_Update_ActivationRespectsUniqueness(t *testing.T) {
	existing := &domain.Configuration{
		ID:    uuid.New(),
		Kind:  domain.ConfigKindMapping,
		Scope: domain.ScopeGlobal,
		Rules: validRules(t),
	}

	repo := new(mocks.MockConfigurationRepo)
	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("CountActive", mock.Anything, domain.ConfigKindMapping, domain.ScopeGlobal, (*uuid.UUID)(nil), (*uuid.UUID)(nil), existing.ID).
		Return(1, nil)

	svc := NewConfigurationService(repo)

	_, err := svc.Update(context.Background(), existing.ID, ConfigurationInput{
		Kind:     domain.ConfigKindMapping,
		Scope:    domain.ScopeGlobal,
		Name:     "activate me",
		IsActive: true,
		Rules:    validRules(t),
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateActiveConfig)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestConfigurationService_List_ClampsPagination(t *testing.T) {
	repo := new(mocks.MockConfigurationRepo)
	repo.On("List", mock.Anything, domain.ConfigKindMapping, 0, 20).
		Return([]domain.Configuration{}, 0, nil)

	svc := NewConfigurationService(repo)

	_, _, err := svc.List(context.Background(), domain.ConfigKindMapping, -1, 1000)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
