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
	"docflow/internal/mapping"
	"docflow/internal/term"
	"docflow/mocks"
)

func inputWith(pctx *domain.ProcessingContext, mapped map[string]string) *Input {
	return &Input{
		Context: pctx,
		Mapped:  mapping.Result{Mapped: mapped},
	}
}

func TestExtractionProvider(t *testing.T) {
	var p ExtractionProvider

	t.Run("passes through upstream confidence", func(t *testing.T) {
		c := 0.87
		in := inputWith(&domain.ProcessingContext{
			Extraction: domain.ExtractionResult{Confidence: &c},
		}, nil)

		score, err := p.Compute(context.Background(), in)
		require.NoError(t, err)
		assert.InDelta(t, 0.87, score, 1e-9)
	})

	t.Run("estimates from core signals", func(t *testing.T) {
		in := inputWith(&domain.ProcessingContext{}, map[string]string{
			mapping.FieldDocumentNumber: "INV-1",
			mapping.FieldTotalAmount:    "99.00",
		})

		score, err := p.Compute(context.Background(), in)
		require.NoError(t, err)
		assert.InDelta(t, 0.7, score, 1e-9)
	})

	t.Run("caps at one", func(t *testing.T) {
		in := inputWith(&domain.ProcessingContext{
			Extraction: domain.ExtractionResult{LineItems: []domain.LineItem{{Description: "x"}}},
		}, map[string]string{
			mapping.FieldDocumentNumber: "INV-1",
			mapping.FieldDocumentDate:   "2024-01-01",
			mapping.FieldTotalAmount:    "99.00",
			mapping.FieldVendorName:     "Acme",
		})

		score, err := p.Compute(context.Background(), in)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, score, 1e-9)
	})
}

func TestIssuerProvider(t *testing.T) {
	var p IssuerProvider

	t.Run("neutral without signal", func(t *testing.T) {
		score, err := p.Compute(context.Background(), inputWith(&domain.ProcessingContext{}, nil))
		require.NoError(t, err)
		assert.InDelta(t, neutralScore, score, 1e-9)
	})

	t.Run("passes through and clamps", func(t *testing.T) {
		in := inputWith(&domain.ProcessingContext{
			Issuer: &domain.IssuerIdentification{Confidence: 1.3},
		}, nil)
		score, err := p.Compute(context.Background(), in)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, score, 1e-9)
	})
}

func TestFormatMatchProvider(t *testing.T) {
	var p FormatMatchProvider

	t.Run("neutral without signal", func(t *testing.T) {
		score, err := p.Compute(context.Background(), inputWith(&domain.ProcessingContext{}, nil))
		require.NoError(t, err)
		assert.InDelta(t, neutralScore, score, 1e-9)
	})

	t.Run("exact match boosts", func(t *testing.T) {
		in := inputWith(&domain.ProcessingContext{
			FormatMatch: &domain.FormatMatch{Confidence: 0.85, IsExactMatch: true},
		}, nil)
		score, err := p.Compute(context.Background(), in)
		require.NoError(t, err)
		assert.InDelta(t, 0.95, score, 1e-9)
	})

	t.Run("boost clamps at one", func(t *testing.T) {
		in := inputWith(&domain.ProcessingContext{
			FormatMatch: &domain.FormatMatch{Confidence: 0.97, IsExactMatch: true},
		}, nil)
		score, err := p.Compute(context.Background(), in)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, score, 1e-9)
	})
}

func TestHistoryProvider(t *testing.T) {
	orgID := uuid.New()
	formatID := uuid.New()
	pctx := &domain.ProcessingContext{OrganizationID: &orgID, FormatID: &formatID}

	t.Run("approved fraction of recent reviews", func(t *testing.T) {
		records := make([]domain.ReviewRecord, 0, 10)
		for i := 0; i < 10; i++ {
			outcome := domain.ReviewOutcomeApproved
			if i < 2 {
				outcome = domain.ReviewOutcomeRejected
			}
			records = append(records, domain.ReviewRecord{Outcome: outcome})
		}

		repo := new(mocks.MockReviewRepo)
		repo.On("ListRecent", mock.Anything, &orgID, &formatID, historyWindow).Return(records, nil)

		score, err := NewHistoryProvider(repo).Compute(context.Background(), inputWith(pctx, nil))
		require.NoError(t, err)
		assert.InDelta(t, 0.8, score, 1e-9)
	})

	t.Run("cold start yields ErrNoHistory", func(t *testing.T) {
		repo := new(mocks.MockReviewRepo)
		repo.On("ListRecent", mock.Anything, &orgID, &formatID, historyWindow).Return([]domain.ReviewRecord{}, nil)

		_, err := NewHistoryProvider(repo).Compute(context.Background(), inputWith(pctx, nil))
		assert.ErrorIs(t, err, domain.ErrNoHistory)
	})

	t.Run("store error propagates", func(t *testing.T) {
		repo := new(mocks.MockReviewRepo)
		repo.On("ListRecent", mock.Anything, &orgID, &formatID, historyWindow).Return(nil, errors.New("timeout"))

		_, err := NewHistoryProvider(repo).Compute(context.Background(), inputWith(pctx, nil))
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNoHistory)
	})
}

func TestCompletenessProvider(t *testing.T) {
	var p CompletenessProvider

	t.Run("fully populated record", func(t *testing.T) {
		mapped := map[string]string{}
		for _, f := range mapping.RequiredFields {
			mapped[f] = "v"
		}
		for _, f := range mapping.OptionalFields {
			mapped[f] = "v"
		}
		in := inputWith(&domain.ProcessingContext{
			Extraction: domain.ExtractionResult{LineItems: []domain.LineItem{{Description: "x"}}},
		}, mapped)

		score, err := p.Compute(context.Background(), in)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, score, 1e-9)
	})

	t.Run("required only", func(t *testing.T) {
		mapped := map[string]string{}
		for _, f := range mapping.RequiredFields {
			mapped[f] = "v"
		}
		score, err := p.Compute(context.Background(), inputWith(&domain.ProcessingContext{}, mapped))
		require.NoError(t, err)
		assert.InDelta(t, requiredShare, score, 1e-9)
	})

	t.Run("empty record", func(t *testing.T) {
		score, err := p.Compute(context.Background(), inputWith(&domain.ProcessingContext{}, nil))
		require.NoError(t, err)
		assert.InDelta(t, 0.0, score, 1e-9)
	})
}

func TestTermMatchProvider(t *testing.T) {
	formatID := uuid.New()

	t.Run("no line items", func(t *testing.T) {
		p := NewTermMatchProvider(term.NewRecorder(new(mocks.MockTermRepo)))
		score, err := p.Compute(context.Background(), inputWith(&domain.ProcessingContext{FormatID: &formatID}, nil))
		require.NoError(t, err)
		assert.InDelta(t, term.NoLineItemsRate, score, 1e-9)
	})

	t.Run("no format identifier", func(t *testing.T) {
		p := NewTermMatchProvider(term.NewRecorder(new(mocks.MockTermRepo)))
		in := inputWith(&domain.ProcessingContext{
			Extraction: domain.ExtractionResult{LineItems: []domain.LineItem{{Description: "Ocean Freight"}}},
		}, nil)
		score, err := p.Compute(context.Background(), in)
		require.NoError(t, err)
		assert.InDelta(t, term.ColdStartRate, score, 1e-9)
	})

	t.Run("delegates to the vocabulary", func(t *testing.T) {
		repo := new(mocks.MockTermRepo)
		repo.On("CountByFormat", mock.Anything, formatID).Return(10, nil)
		repo.On("FilterKnown", mock.Anything, formatID, []string{"ocean freight", "detention"}).
			Return(map[string]bool{"ocean freight": true}, nil)

		p := NewTermMatchProvider(term.NewRecorder(repo))
		in := inputWith(&domain.ProcessingContext{
			FormatID: &formatID,
			Extraction: domain.ExtractionResult{LineItems: []domain.LineItem{
				{Description: "Ocean Freight"},
				{Description: "Detention"},
			}},
		}, nil)

		score, err := p.Compute(context.Background(), in)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, score, 1e-9)
	})
}
