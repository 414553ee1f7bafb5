package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"docflow/internal/config"
	"docflow/internal/domain"
	"docflow/internal/pipeline"
	"docflow/internal/port"
)

// ProcessInput is the DTO for submitting an extracted document to the
// decision pipeline.
type ProcessInput struct {
	DocumentID     uuid.UUID                    `json:"document_id" binding:"required"`
	OrganizationID *uuid.UUID                   `json:"organization_id"`
	FormatID       *uuid.UUID                   `json:"format_id"`
	Extraction     domain.ExtractionResult      `json:"extraction" binding:"required"`
	Issuer         *domain.IssuerIdentification `json:"issuer"`
	FormatMatch    *domain.FormatMatch          `json:"format_match"`
}

// ProcessOutput is what the caller gets back from one pipeline run.
type ProcessOutput struct {
	DocumentID uuid.UUID               `json:"document_id"`
	Mapped     map[string]string       `json:"mapped"`
	Unmapped   []string                `json:"unmapped"`
	Result     domain.ConfidenceResult `json:"result"`
}

// DocumentService drives per-document processing end to end: pipeline run
// under a deadline, result persistence, reviewer alerting, and scan storage.
type DocumentService interface {
	Process(ctx context.Context, input ProcessInput) (*ProcessOutput, error)
	GetResult(ctx context.Context, documentID uuid.UUID) (*domain.ProcessingResultRecord, error)
	ListResults(ctx context.Context, offset, limit int) ([]domain.ProcessingResultRecord, int, error)
	AttachScan(ctx context.Context, documentID uuid.UUID, contentType string, body io.Reader) error
	ScanURL(ctx context.Context, documentID uuid.UUID) (string, error)
}

type documentService struct {
	pipe       *pipeline.Pipeline
	resultRepo port.ResultRepository
	userRepo   port.UserRepository
	storage    port.ObjectStorage
	email      port.EmailSender
	s3cfg      config.S3Config
	timeout    time.Duration
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(
	pipe *pipeline.Pipeline,
	resultRepo port.ResultRepository,
	userRepo port.UserRepository,
	storage port.ObjectStorage,
	email port.EmailSender,
	s3cfg config.S3Config,
	timeout time.Duration,
) DocumentService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &documentService{
		pipe:       pipe,
		resultRepo: resultRepo,
		userRepo:   userRepo,
		storage:    storage,
		email:      email,
		s3cfg:      s3cfg,
		timeout:    timeout,
	}
}

func (s *documentService) Process(ctx context.Context, input ProcessInput) (*ProcessOutput, error) {
	pctx := &domain.ProcessingContext{
		DocumentID:     input.DocumentID,
		OrganizationID: input.OrganizationID,
		FormatID:       input.FormatID,
		Extraction:     input.Extraction,
		Issuer:         input.Issuer,
		FormatMatch:    input.FormatMatch,
	}

	outcome := s.runWithDeadline(ctx, pctx)

	if err := s.persist(ctx, pctx, outcome); err != nil {
		return nil, err
	}

	if outcome.Confidence.Decision == domain.RoutingFullReview {
		s.notifyReviewers(pctx.DocumentID, outcome.Confidence)
	}

	return &ProcessOutput{
		DocumentID: pctx.DocumentID,
		Mapped:     outcome.Mapping.Mapped,
		Unmapped:   outcome.Mapping.Unmapped,
		Result:     outcome.Confidence,
	}, nil
}

// runWithDeadline runs the pipeline under the per-document timeout. A run
// that overruns is abandoned and the document routes to full review.
func (s *documentService) runWithDeadline(ctx context.Context, pctx *domain.ProcessingContext) *pipeline.Outcome {
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type runResult struct {
		outcome *pipeline.Outcome
		err     error
	}
	done := make(chan runResult, 1)

	go func() {
		outcome, err := s.pipe.Process(runCtx, pctx, nil)
		done <- runResult{outcome: outcome, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			log.Printf("documentService.Process: pipeline failed for %s (%v), routing to full review", pctx.DocumentID, res.err)
			return pipeline.ConservativeOutcome(pctx)
		}
		return res.outcome
	case <-runCtx.Done():
		log.Printf("documentService.Process: deadline exceeded for %s, routing to full review", pctx.DocumentID)
		return pipeline.ConservativeOutcome(pctx)
	}
}

func (s *documentService) persist(ctx context.Context, pctx *domain.ProcessingContext, outcome *pipeline.Outcome) error {
	mapped, err := json.Marshal(outcome.Mapping.Mapped)
	if err != nil {
		return fmt.Errorf("documentService.persist: %w", err)
	}
	unmapped, err := json.Marshal(outcome.Mapping.Unmapped)
	if err != nil {
		return fmt.Errorf("documentService.persist: %w", err)
	}
	breakdown, err := json.Marshal(outcome.Confidence.Breakdown)
	if err != nil {
		return fmt.Errorf("documentService.persist: %w", err)
	}

	rec := &domain.ProcessingResultRecord{
		DocumentID:        pctx.DocumentID,
		OrganizationID:    pctx.OrganizationID,
		FormatID:          pctx.FormatID,
		MappedFields:      mapped,
		UnmappedFields:    unmapped,
		OverallConfidence: outcome.Confidence.OverallConfidence,
		FactorBreakdown:   breakdown,
		ScopeBonus:        outcome.Confidence.ScopeBonus,
		Decision:          outcome.Confidence.Decision,
		Explanation:       outcome.Confidence.Explanation,
	}
	return s.resultRepo.Create(ctx, rec)
}

// notifyReviewers alerts every active reviewer about a full-review document.
// Alerting is best effort and never blocks the processing response.
func (s *documentService) notifyReviewers(documentID uuid.UUID, result domain.ConfidenceResult) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		reviewers, err := s.userRepo.ListByRole(ctx, domain.RoleReviewer)
		if err != nil {
			log.Printf("documentService.notifyReviewers: listing reviewers failed: %v", err)
			return
		}
		for _, reviewer := range reviewers {
			if err := s.email.SendReviewAlert(ctx, reviewer.Email, documentID, result.OverallConfidence, result.Decision); err != nil {
				log.Printf("documentService.notifyReviewers: alert to %s failed: %v", reviewer.Email, err)
			}
		}
	}()
}

func (s *documentService) GetResult(ctx context.Context, documentID uuid.UUID) (*domain.ProcessingResultRecord, error) {
	return s.resultRepo.GetByDocumentID(ctx, documentID)
}

func (s *documentService) ListResults(ctx context.Context, offset, limit int) ([]domain.ProcessingResultRecord, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.resultRepo.List(ctx, offset, limit)
}

func (s *documentService) AttachScan(ctx context.Context, documentID uuid.UUID, contentType string, body io.Reader) error {
	key := fmt.Sprintf("scans/%s", documentID)
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         key,
		Body:        body,
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("documentService.AttachScan: %w", domain.ErrUploadFailed)
	}
	return s.resultRepo.UpdateScanLocation(ctx, documentID, s.s3cfg.Bucket, key)
}

func (s *documentService) ScanURL(ctx context.Context, documentID uuid.UUID) (string, error) {
	rec, err := s.resultRepo.GetByDocumentID(ctx, documentID)
	if err != nil {
		return "", err
	}
	if rec.ScanBucket == "" || rec.ScanKey == "" {
		return "", domain.ErrNotFound
	}
	return s.storage.GetPresignedURL(ctx, rec.ScanBucket, rec.ScanKey, s.s3cfg.PresignExpiry)
}
