package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docflow/internal/domain"
	"docflow/mocks"
)

func TestThresholdService_Get_FallsBackToDefaults(t *testing.T) {
	repo := new(mocks.MockThresholdRepo)
	repo.On("Get", mock.Anything).Return(nil, domain.ErrNotFound)

	svc := NewThresholdService(repo, new(mocks.MockThresholdAuditRepo))

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 0.90, got.AutoApproveMin, 1e-9)
	assert.InDelta(t, 0.70, got.QuickReviewMin, 1e-9)
}

func TestThresholdService_Get_ReturnsStored(t *testing.T) {
	stored := &domain.RoutingThresholds{AutoApproveMin: 0.95, QuickReviewMin: 0.80}

	repo := new(mocks.MockThresholdRepo)
	repo.On("Get", mock.Anything).Return(stored, nil)

	svc := NewThresholdService(repo, new(mocks.MockThresholdAuditRepo))

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestThresholdService_Update_WritesAuditEntry(t *testing.T) {
	admin := uuid.New()
	current := &domain.RoutingThresholds{ID: uuid.New(), AutoApproveMin: 0.90, QuickReviewMin: 0.70}

	repo := new(mocks.MockThresholdRepo)
	repo.On("Get", mock.Anything).Return(current, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(tr *domain.RoutingThresholds) bool {
		return tr.ID == current.ID && tr.AutoApproveMin == 0.95 && tr.QuickReviewMin == 0.80
	})).Return(nil)

	audit := new(mocks.MockThresholdAuditRepo)
	audit.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.ThresholdAuditEntry) bool {
		return e.OldAutoApprove == 0.90 && e.OldQuickReview == 0.70 &&
			e.NewAutoApprove == 0.95 && e.NewQuickReview == 0.80 &&
			e.ChangedBy == admin
	})).Return(nil)

	svc := NewThresholdService(repo, audit)

	got, err := svc.Update(context.Background(), ThresholdInput{AutoApproveMin: 0.95, QuickReviewMin: 0.80}, admin)
	require.NoError(t, err)
	assert.InDelta(t, 0.95, got.AutoApproveMin, 1e-9)

	repo.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestThresholdService_Update_FirstWriteAuditsDefaultsAsOld(t *testing.T) {
	repo := new(mocks.MockThresholdRepo)
	repo.On("Get", mock.Anything).Return(nil, domain.ErrNotFound)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	audit := new(mocks.MockThresholdAuditRepo)
	audit.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.ThresholdAuditEntry) bool {
		return e.OldAutoApprove == 0.90 && e.OldQuickReview == 0.70
	})).Return(nil)

	svc := NewThresholdService(repo, audit)

	_, err := svc.Update(context.Background(), ThresholdInput{AutoApproveMin: 0.92, QuickReviewMin: 0.75}, uuid.New())
	require.NoError(t, err)
	audit.AssertExpectations(t)
}

func TestThresholdService_Update_RejectsInvertedCutPoints(t *testing.T) {
	repo := new(mocks.MockThresholdRepo)
	audit := new(mocks.MockThresholdAuditRepo)
	svc := NewThresholdService(repo, audit)

	_, err := svc.Update(context.Background(), ThresholdInput{AutoApproveMin: 0.65, QuickReviewMin: 0.70}, uuid.New())
	assert.ErrorIs(t, err, domain.ErrInvalidThresholds)

	// Nothing is persisted or audited for a rejected proposal.
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestThresholdService_AuditLog_ClampsLimit(t *testing.T) {
	audit := new(mocks.MockThresholdAuditRepo)
	audit.On("List", mock.Anything, 0, 20).Return([]domain.ThresholdAuditEntry{}, 0, nil)

	svc := NewThresholdService(new(mocks.MockThresholdRepo), audit)

	_, _, err := svc.AuditLog(context.Background(), -5, 500)
	require.NoError(t, err)
	audit.AssertExpectations(t)
}
