package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docflow/internal/config"
	"docflow/internal/confidence"
	"docflow/internal/domain"
	"docflow/internal/pipeline"
	"docflow/internal/port"
	"docflow/internal/scope"
	"docflow/internal/term"
	"docflow/mocks"
)

type documentFixture struct {
	configs    *mocks.MockConfigurationRepo
	terms      *mocks.MockTermRepo
	reviews    *mocks.MockReviewRepo
	thresholds *mocks.MockThresholdRepo
	results    *mocks.MockResultRepo
	users      *mocks.MockUserRepo
	storage    *mocks.MockObjectStorage
	email      *mocks.MockEmailSender
}

func newDocumentFixture() *documentFixture {
	return &documentFixture{
		configs:    new(mocks.MockConfigurationRepo),
		terms:      new(mocks.MockTermRepo),
		reviews:    new(mocks.MockReviewRepo),
		thresholds: new(mocks.MockThresholdRepo),
		results:    new(mocks.MockResultRepo),
		users:      new(mocks.MockUserRepo),
		storage:    new(mocks.MockObjectStorage),
		email:      new(mocks.MockEmailSender),
	}
}

func (f *documentFixture) build(timeout time.Duration) DocumentService {
	pipe := pipeline.New(
		scope.NewResolver(f.configs),
		term.NewRecorder(f.terms),
		confidence.NewGatherer(
			confidence.NewHistoryProvider(f.reviews),
			confidence.NewTermMatchProvider(term.NewRecorder(f.terms)),
		),
		f.thresholds,
		nil,
	)
	s3cfg := config.S3Config{Bucket: "docflow-scans", PresignExpiry: 900}
	return NewDocumentService(pipe, f.results, f.users, f.storage, f.email, s3cfg, timeout)
}

// lowSignalInput produces a document with no identifiers and a weak
// extraction, which the default weighting routes to full review.
func lowSignalInput() ProcessInput {
	c := 0.2
	return ProcessInput{
		DocumentID: uuid.New(),
		Extraction: domain.ExtractionResult{Confidence: &c},
	}
}

func (f *documentFixture) expectLowSignalRun() {
	f.configs.On("ListActive", mock.Anything, domain.ConfigKindMapping, domain.ScopeGlobal, (*uuid.UUID)(nil), (*uuid.UUID)(nil)).
		Return([]domain.Configuration{}, nil)
	f.reviews.On("ListRecent", mock.Anything, (*uuid.UUID)(nil), (*uuid.UUID)(nil), 100).
		Return([]domain.ReviewRecord{}, nil)
	f.thresholds.On("Get", mock.Anything).Return(nil, domain.ErrNotFound)
}

func TestDocumentService_Process_PersistsResult(t *testing.T) {
	f := newDocumentFixture()
	f.expectLowSignalRun()
	input := lowSignalInput()

	var persisted *domain.ProcessingResultRecord
	f.results.On("Create", mock.Anything, mock.AnythingOfType("*domain.ProcessingResultRecord")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*domain.ProcessingResultRecord)
		}).Return(nil)
	f.users.On("ListByRole", mock.Anything, domain.RoleReviewer).Return([]domain.User{}, nil)

	out, err := f.build(time.Second).Process(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, input.DocumentID, out.DocumentID)
	assert.Equal(t, domain.RoutingFullReview, out.Result.Decision)

	require.NotNil(t, persisted)
	assert.Equal(t, input.DocumentID, persisted.DocumentID)
	assert.Equal(t, domain.RoutingFullReview, persisted.Decision)
	assert.InDelta(t, out.Result.OverallConfidence, persisted.OverallConfidence, 1e-9)

	var breakdown []domain.FactorContribution
	require.NoError(t, json.Unmarshal(persisted.FactorBreakdown, &breakdown))
	assert.Len(t, breakdown, 6)
}

func TestDocumentService_Process_AlertsReviewersOnFullReview(t *testing.T) {
	f := newDocumentFixture()
	f.expectLowSignalRun()
	input := lowSignalInput()

	f.results.On("Create", mock.Anything, mock.Anything).Return(nil)

	reviewer := domain.User{ID: uuid.New(), Email: "reviewer@example.com", Role: domain.RoleReviewer}
	f.users.On("ListByRole", mock.Anything, domain.RoleReviewer).Return([]domain.User{reviewer}, nil)

	alerted := make(chan string, 1)
	f.email.On("SendReviewAlert", mock.Anything, reviewer.Email, input.DocumentID, mock.Anything, domain.RoutingFullReview).
		Run(func(args mock.Arguments) {
			alerted <- args.String(1)
		}).Return(nil)

	_, err := f.build(time.Second).Process(context.Background(), input)
	require.NoError(t, err)

	select {
	case email := <-alerted:
		assert.Equal(t, reviewer.Email, email)
	case <-time.After(2 * time.Second):
		t.Fatal("reviewer alert was never sent")
	}
}

func TestDocumentService_Process_DeadlineRoutesToFullReview(t *testing.T) {
	f := newDocumentFixture()
	input := lowSignalInput()

	// The threshold read is the first pipeline step; stalling it past the
	// per-document timeout forces the conservative path.
	f.thresholds.On("Get", mock.Anything).
		Run(func(mock.Arguments) { time.Sleep(300 * time.Millisecond) }).
		Return(nil, domain.ErrNotFound)
	f.configs.On("ListActive", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.Configuration{}, nil)
	f.reviews.On("ListRecent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.ReviewRecord{}, nil)

	var persisted *domain.ProcessingResultRecord
	f.results.On("Create", mock.Anything, mock.AnythingOfType("*domain.ProcessingResultRecord")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*domain.ProcessingResultRecord)
		}).Return(nil)
	f.users.On("ListByRole", mock.Anything, domain.RoleReviewer).Return([]domain.User{}, nil)

	out, err := f.build(20 * time.Millisecond).Process(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, domain.RoutingFullReview, out.Result.Decision)
	assert.Contains(t, out.Result.Explanation, "deadline")

	require.NotNil(t, persisted)
	assert.Equal(t, domain.RoutingFullReview, persisted.Decision)
	assert.Zero(t, persisted.OverallConfidence)
}

func TestDocumentService_Process_PersistFailureSurfaces(t *testing.T) {
	f := newDocumentFixture()
	f.expectLowSignalRun()

	f.results.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	_, err := f.build(time.Second).Process(context.Background(), lowSignalInput())
	assert.Error(t, err)
}

func TestDocumentService_AttachScan(t *testing.T) {
	documentID := uuid.New()

	t.Run("stores and records the location", func(t *testing.T) {
		f := newDocumentFixture()
		key := "scans/" + documentID.String()
		f.storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
			return in.Bucket == "docflow-scans" && in.Key == key && in.ContentType == "application/pdf"
		})).Return(&port.UploadOutput{Location: "https://example/" + key}, nil)
		f.results.On("UpdateScanLocation", mock.Anything, documentID, "docflow-scans", key).Return(nil)

		err := f.build(time.Second).AttachScan(context.Background(), documentID, "application/pdf", strings.NewReader("%PDF-1.7"))
		require.NoError(t, err)
		f.results.AssertExpectations(t)
	})

	t.Run("upload failure", func(t *testing.T) {
		f := newDocumentFixture()
		f.storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

		err := f.build(time.Second).AttachScan(context.Background(), documentID, "application/pdf", strings.NewReader("x"))
		assert.ErrorIs(t, err, domain.ErrUploadFailed)
		f.results.AssertNotCalled(t, "UpdateScanLocation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDocumentService_ScanURL(t *testing.T) {
	documentID := uuid.New()

	t.Run("presigns the stored scan", func(t *testing.T) {
		f := newDocumentFixture()
		rec := &domain.ProcessingResultRecord{
			DocumentID: documentID,
			ScanBucket: "docflow-scans",
			ScanKey:    "scans/" + documentID.String(),
		}
		f.results.On("GetByDocumentID", mock.Anything, documentID).Return(rec, nil)
		f.storage.On("GetPresignedURL", mock.Anything, rec.ScanBucket, rec.ScanKey, int64(900)).
			Return("https://signed.example/scan", nil)

		url, err := f.build(time.Second).ScanURL(context.Background(), documentID)
		require.NoError(t, err)
		assert.Equal(t, "https://signed.example/scan", url)
	})

	t.Run("no scan attached", func(t *testing.T) {
		f := newDocumentFixture()
		f.results.On("GetByDocumentID", mock.Anything, documentID).
			Return(&domain.ProcessingResultRecord{DocumentID: documentID}, nil)

		_, err := f.build(time.Second).ScanURL(context.Background(), documentID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDocumentService_ListResults_ClampsPagination(t *testing.T) {
	f := newDocumentFixture()
	f.results.On("List", mock.Anything, 0, 20).Return([]domain.ProcessingResultRecord{}, 0, nil)

	_, _, err := f.build(time.Second).ListResults(context.Background(), -3, 999)
	require.NoError(t, err)
	f.results.AssertExpectations(t)
}
