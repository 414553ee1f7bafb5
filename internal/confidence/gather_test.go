package confidence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docflow/internal/domain"
	"docflow/internal/term"
	"docflow/mocks"
)

type gatherFixture struct {
	orgID    uuid.UUID
	formatID uuid.UUID
	review   *mocks.MockReviewRepo
	terms    *mocks.MockTermRepo
	gatherer *Gatherer
	input    *Input
}

func newGatherFixture() *gatherFixture {
	f := &gatherFixture{
		orgID:    uuid.New(),
		formatID: uuid.New(),
		review:   new(mocks.MockReviewRepo),
		terms:    new(mocks.MockTermRepo),
	}
	f.gatherer = NewGatherer(
		NewHistoryProvider(f.review),
		NewTermMatchProvider(term.NewRecorder(f.terms)),
	)
	c := 0.9
	f.input = &Input{
		Context: &domain.ProcessingContext{
			OrganizationID: &f.orgID,
			FormatID:       &f.formatID,
			Extraction: domain.ExtractionResult{
				Confidence: &c,
				LineItems: []domain.LineItem{
					{Description: "Ocean Freight"},
					{Description: "Detention"},
				},
			},
		},
	}
	return f
}

func (f *gatherFixture) expectTerms() {
	f.terms.On("CountByFormat", mock.Anything, f.formatID).Return(10, nil)
	f.terms.On("FilterKnown", mock.Anything, f.formatID, []string{"ocean freight", "detention"}).
		Return(map[string]bool{"ocean freight": true}, nil)
}

func TestGather_AllProvidersHealthy(t *testing.T) {
	f := newGatherFixture()
	f.expectTerms()

	records := make([]domain.ReviewRecord, 10)
	for i := range records {
		records[i].Outcome = domain.ReviewOutcomeApproved
		if i < 2 {
			records[i].Outcome = domain.ReviewOutcomeRejected
		}
	}
	f.review.On("ListRecent", mock.Anything, &f.orgID, &f.formatID, historyWindow).Return(records, nil)

	factors, degraded := f.gatherer.Gather(context.Background(), f.input, domain.ScopeOrganization)

	assert.Empty(t, degraded)
	assert.InDelta(t, 0.9, factors.Extraction, 1e-9)
	assert.InDelta(t, neutralScore, factors.Issuer, 1e-9)
	assert.InDelta(t, neutralScore, factors.FormatMatch, 1e-9)
	require.NotNil(t, factors.HistoricalAccuracy)
	assert.InDelta(t, 0.8, *factors.HistoricalAccuracy, 1e-9)
	assert.InDelta(t, 0.5, factors.TermMatch, 1e-9)
	assert.Equal(t, domain.ScopeOrganization, factors.ScopeMatch)
}

func TestGather_ColdStartHistoryIsNotDegradation(t *testing.T) {
	f := newGatherFixture()
	f.expectTerms()
	f.review.On("ListRecent", mock.Anything, &f.orgID, &f.formatID, historyWindow).
		Return([]domain.ReviewRecord{}, nil)

	factors, degraded := f.gatherer.Gather(context.Background(), f.input, domain.ScopeNone)

	assert.Nil(t, factors.HistoricalAccuracy)
	assert.Empty(t, degraded)
}

func TestGather_HistoryStoreFailureDegradesToDefault(t *testing.T) {
	f := newGatherFixture()
	f.expectTerms()
	f.review.On("ListRecent", mock.Anything, &f.orgID, &f.formatID, historyWindow).
		Return(nil, errors.New("connection refused"))

	factors, degraded := f.gatherer.Gather(context.Background(), f.input, domain.ScopeNone)

	assert.Equal(t, []string{FactorHistory}, degraded)
	require.NotNil(t, factors.HistoricalAccuracy)
	assert.InDelta(t, historyDefault, *factors.HistoricalAccuracy, 1e-9)
}

func TestGather_TermStoreFailureDegradesToNeutral(t *testing.T) {
	f := newGatherFixture()
	f.terms.On("CountByFormat", mock.Anything, f.formatID).Return(0, errors.New("timeout"))
	f.review.On("ListRecent", mock.Anything, &f.orgID, &f.formatID, historyWindow).
		Return([]domain.ReviewRecord{{Outcome: domain.ReviewOutcomeApproved}}, nil)

	factors, degraded := f.gatherer.Gather(context.Background(), f.input, domain.ScopeNone)

	assert.Equal(t, []string{FactorTermMatch}, degraded)
	assert.InDelta(t, neutralScore, factors.TermMatch, 1e-9)
}
