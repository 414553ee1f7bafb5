package main

import (
	"fmt"
	"log"

	"docflow/internal/config"
	"docflow/internal/confidence"
	"docflow/internal/email/noop"
	"docflow/internal/email/ses"
	"docflow/internal/handler"
	"docflow/internal/pipeline"
	"docflow/internal/port"
	"docflow/internal/repository/postgres"
	"docflow/internal/router"
	"docflow/internal/scope"
	"docflow/internal/service"
	s3storage "docflow/internal/storage/s3"
	"docflow/internal/term"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	configRepo := postgres.NewConfigurationRepo(db)
	termRepo := postgres.NewTermRepo(db)
	reviewRepo := postgres.NewReviewRepo(db)
	thresholdRepo := postgres.NewThresholdRepo(db)
	thresholdAuditRepo := postgres.NewThresholdAuditRepo(db)
	resultRepo := postgres.NewResultRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email
	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.ReviewBaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailSender = noop.NewNoopSender()
	}

	// Assemble the decision pipeline
	resolver := scope.NewResolver(configRepo)
	recorder := term.NewRecorder(termRepo)
	gatherer := confidence.NewGatherer(
		confidence.NewHistoryProvider(reviewRepo),
		confidence.NewTermMatchProvider(recorder),
	)
	weights := confidence.DefaultWeights().Overlay(cfg.Confidence.Overrides())
	pipe := pipeline.New(resolver, recorder, gatherer, thresholdRepo, &weights)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	configSvc := service.NewConfigurationService(configRepo)
	thresholdSvc := service.NewThresholdService(thresholdRepo, thresholdAuditRepo)
	reviewSvc := service.NewReviewService(reviewRepo)
	vocabSvc := service.NewVocabularyService(termRepo)
	documentSvc := service.NewDocumentService(
		pipe, resultRepo, userRepo, s3Client, emailSender, cfg.S3, cfg.Pipeline.Timeout())

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	configH := handler.NewConfigurationHandler(configSvc)
	thresholdH := handler.NewThresholdHandler(thresholdSvc)
	documentH := handler.NewDocumentHandler(documentSvc)
	reviewH := handler.NewReviewHandler(reviewSvc)
	vocabH := handler.NewVocabularyHandler(vocabSvc)
	reportH := handler.NewReportHandler(documentSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins,
		authH, configH, thresholdH, documentH, reviewH, vocabH, reportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
