package routes

import (
	"log/slog"
	"net/http"

	"github.com/ArowuTest/quizseason-admin/internal/config"
	"github.com/ArowuTest/quizseason-admin/internal/handlers"
	"github.com/ArowuTest/quizseason-admin/internal/metrics"
	"github.com/ArowuTest/quizseason-admin/internal/middleware"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies holds everything the router needs to serve requests
type HandlerDependencies struct {
	SeasonHandler       *handlers.SeasonHandler
	FundingHandler      *handlers.FundingHandler
	QuestionHandler     *handlers.QuestionHandler
	NotificationHandler *handlers.NotificationHandler
	Recorder            metrics.Recorder
	MetricsHandler      http.Handler // nil disables /metrics
	Logger              *slog.Logger
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	recorder := deps.Recorder
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}

	// Create router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.MetricsMiddleware(recorder))

	if deps.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	api := router.Group("/api/v1")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		merchant := api.Group("/merchants/:merchantId")

		// Season routes
		seasons := merchant.Group("/seasons")
		{
			seasons.GET("", deps.SeasonHandler.ListSeasons)
			seasons.POST("", deps.SeasonHandler.CreateSeason)
			seasons.GET("/:id", deps.SeasonHandler.GetSeason)
			seasons.DELETE("/:id", deps.SeasonHandler.DeleteSeason)
			seasons.PUT("/:id/status", deps.SeasonHandler.SetStatus)
			seasons.POST("/:id/extend", deps.SeasonHandler.ExtendSeason)
			seasons.PUT("/:id/prizes", deps.SeasonHandler.UpdatePrizes)

			seasons.POST("/:id/selection-rounds", deps.SeasonHandler.AddSelectionRound)
			seasons.PUT("/:id/selection-rounds/:index", deps.SeasonHandler.UpdateSelectionRound)
			seasons.DELETE("/:id/selection-rounds/:index", deps.SeasonHandler.RemoveSelectionRound)

			seasons.POST("/:id/tv-rounds", deps.SeasonHandler.AddTVRound)
			seasons.PUT("/:id/tv-rounds/:index", deps.SeasonHandler.UpdateTVRound)
			seasons.DELETE("/:id/tv-rounds/:index", deps.SeasonHandler.RemoveTVRound)
		}

		// Wallet routes
		wallet := merchant.Group("/wallet")
		{
			wallet.GET("", deps.FundingHandler.GetStatus)
			wallet.GET("/history", deps.FundingHandler.GetHistory)
			wallet.POST("/fund", deps.FundingHandler.FundWallet)
			wallet.POST("/waiver", deps.FundingHandler.RequestWaiver)
			wallet.POST("/waiver/approve", deps.FundingHandler.ApproveWaiver)
		}

		// Question bank routes
		questions := merchant.Group("/questions")
		{
			questions.GET("/available", deps.QuestionHandler.ListAvailable)
			questions.GET("/integrated", deps.QuestionHandler.ListIntegrated)
			questions.POST("/integrated", deps.QuestionHandler.Integrate)
			questions.DELETE("/integrated/:sourceId", deps.QuestionHandler.Remove)
			questions.PUT("/integrated/:sourceId/answers", deps.QuestionHandler.UpdateAlternativeAnswers)
		}

		merchant.GET("/notifications", deps.NotificationHandler.GetNotifications)
	}

	return router
}
