package router

import (
	"github.com/gin-gonic/gin"

	"docflow/internal/domain"
	"docflow/internal/handler"
	"docflow/internal/middleware"
	"docflow/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	allowedOrigins []string,
	authH *handler.AuthHandler,
	configH *handler.ConfigurationHandler,
	thresholdH *handler.ThresholdHandler,
	documentH *handler.DocumentHandler,
	reviewH *handler.ReviewHandler,
	vocabH *handler.VocabularyHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Live)
	r.GET("/readyz", healthH.Ready)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Operator accounts
	users := protected.Group("/users")
	users.POST("", middleware.RequireRole(domain.RoleAdmin), authH.CreateUser)

	// Scoped configurations
	configs := protected.Group("/configurations")
	configs.POST("", middleware.RequireRole(domain.RoleAdmin), configH.Create)
	configs.PUT("/:id", middleware.RequireRole(domain.RoleAdmin), configH.Update)
	configs.GET("", configH.List)
	configs.GET("/:id", configH.Get)

	// Routing thresholds
	thresholds := protected.Group("/thresholds")
	thresholds.GET("", thresholdH.Get)
	thresholds.PUT("", middleware.RequireRole(domain.RoleAdmin), thresholdH.Update)
	thresholds.GET("/audit", middleware.RequireRole(domain.RoleAdmin), thresholdH.AuditLog)

	// Document processing and results
	documents := protected.Group("/documents")
	documents.POST("/process", documentH.Process)
	documents.GET("/results", documentH.ListResults)
	documents.GET("/:id/result", documentH.GetResult)
	documents.POST("/:id/scan", documentH.AttachScan)
	documents.GET("/:id/scan-url", documentH.ScanURL)

	// Review outcomes
	reviews := protected.Group("/reviews")
	reviews.POST("", middleware.RequireRole(domain.RoleAdmin, domain.RoleReviewer), reviewH.Record)

	// Per-format vocabulary
	formats := protected.Group("/formats")
	formats.GET("/:id/terms", vocabH.ListTerms)

	// Reports
	reports := protected.Group("/reports")
	reports.GET("/results.csv", reportH.ExportCSV)

	return r
}
