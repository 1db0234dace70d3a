package api

import (
	"github.com/Conceptual-Machines/fretboard-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/fretboard-api/internal/api/middleware"
	"github.com/Conceptual-Machines/fretboard-api/internal/config"
	"github.com/Conceptual-Machines/fretboard-api/internal/metrics"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg *config.Config, cloudwatch *metrics.Client, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking())

	// CORS middleware
	router.Use(apimiddleware.CORS())

	// Health check
	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version)
	router.GET("/api/v1/metrics", metricsHandler.GetMetrics)

	// Engine endpoints (open; the gateway handles auth upstream when
	// one is deployed)
	v1 := router.Group("/api/v1")
	{
		instrumentsHandler := handlers.NewInstrumentsHandler()
		v1.GET("/instruments", instrumentsHandler.ListInstruments)

		fingeringsHandler := handlers.NewFingeringsHandler(cfg, cloudwatch)
		v1.POST("/fingerings", fingeringsHandler.GenerateFingerings)

		analyzeHandler := handlers.NewAnalyzeHandler()
		v1.POST("/analyze", analyzeHandler.AnalyzeFingering)

		progressionsHandler := handlers.NewProgressionsHandler(cfg, cloudwatch)
		v1.POST("/progressions", progressionsHandler.GenerateProgression)
	}

	// Library endpoints (identified; owner comes from gateway headers
	// or the anonymous fallback)
	library := router.Group("/api/v1/library")
	if cfg.IsGatewayMode() {
		library.Use(apimiddleware.GatewayAuth())
	} else {
		library.Use(apimiddleware.NoAuth())
	}
	{
		libraryHandler := handlers.NewLibraryHandler(db)
		library.POST("/progressions", libraryHandler.SaveProgression)
		library.GET("/progressions", libraryHandler.ListProgressions)
		library.GET("/progressions/:id", libraryHandler.GetProgression)
		library.DELETE("/progressions/:id", libraryHandler.DeleteProgression)

		library.POST("/fingerings", libraryHandler.SaveFavorite)
		library.GET("/fingerings", libraryHandler.ListFavorites)
		library.DELETE("/fingerings/:id", libraryHandler.DeleteFavorite)
	}

	return router
}
