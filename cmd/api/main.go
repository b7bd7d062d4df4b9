package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ArowuTest/quizseason-admin/api/routes"
	"github.com/ArowuTest/quizseason-admin/internal/config"
	"github.com/ArowuTest/quizseason-admin/internal/handlers"
	"github.com/ArowuTest/quizseason-admin/internal/metrics"
	"github.com/ArowuTest/quizseason-admin/internal/repositories/memory"
	"github.com/ArowuTest/quizseason-admin/internal/services"
	"github.com/ArowuTest/quizseason-admin/internal/utils"
	"github.com/ArowuTest/quizseason-admin/pkg/currency"
	"github.com/ArowuTest/quizseason-admin/pkg/toastgateway"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info(".env file not found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	formatter, err := currency.NewFormatter(cfg.Currency.Code, cfg.Currency.Locale)
	if err != nil {
		logger.Error("Failed to build currency formatter", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize repositories
	seasonRepo := memory.NewSeasonRepository()
	walletRepo := memory.NewWalletRepository()
	integrationRepo := memory.NewIntegrationRepository()
	notificationRepo := memory.NewNotificationRepository(cfg.Notifications.HistoryLimit)
	poolRepo := memory.NewQuestionPoolRepository(nil, nil)
	if err := loadQuestionPools(cfg, poolRepo, logger); err != nil {
		logger.Error("Failed to load question pools", "error", err)
		os.Exit(1)
	}

	// Toast bus: the gateway publishes, the consumer keeps the recent feed
	bus := toastgateway.NewInMemoryBus(logger)
	defer bus.Close()
	if err := toastgateway.Consume(ctx, bus, cfg.Notifications.Topic, notificationRepo.Create, logger); err != nil {
		logger.Error("Failed to subscribe to toasts", "error", err)
		os.Exit(1)
	}
	gateway := toastgateway.NewWatermillGateway(bus, cfg.Notifications.Topic)

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		promRecorder := metrics.NewPrometheusRecorder(registry)
		recorder = promRecorder
		metricsHandler = promRecorder.Handler()
	}

	// Initialize services
	policy := services.FundingPolicy{
		MinWalletPercent: decimal.NewFromFloat(cfg.Funding.MinWalletPercent),
		WaiverRequestFee: decimal.NewFromFloat(cfg.Funding.WaiverRequestFee),
	}
	notificationService := services.NewToastNotificationService(gateway, notificationRepo, formatter, logger)
	seasonService := services.NewSeasonService(seasonRepo, notificationService, recorder, logger)
	fundingService := services.NewFundingService(walletRepo, seasonRepo, policy, notificationService, recorder, logger)
	questionService := services.NewQuestionIntegrationService(integrationRepo, poolRepo, notificationService, recorder, logger)

	handlerDeps := routes.HandlerDependencies{
		SeasonHandler:       handlers.NewSeasonHandler(seasonService, formatter),
		FundingHandler:      handlers.NewFundingHandler(fundingService, formatter),
		QuestionHandler:     handlers.NewQuestionHandler(questionService),
		NotificationHandler: handlers.NewNotificationHandler(notificationService),
		Recorder:            recorder,
		MetricsHandler:      metricsHandler,
		Logger:              logger,
	}
	router := routes.SetupRouter(cfg, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	logger.Info("Server starting", "port", cfg.Server.Port, "currency", formatter.Code())

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server stopped unexpectedly", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exiting")
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func loadQuestionPools(cfg *config.Config, poolRepo *memory.QuestionPoolRepository, logger *slog.Logger) error {
	importer := utils.NewQuestionPoolImporter()

	if cfg.Pools.AdminFile != "" {
		questions, result, err := importer.ImportAdminFile(cfg.Pools.AdminFile)
		if err != nil {
			return err
		}
		poolRepo.ReplaceAdminQuestions(questions)
		logger.Info("Admin question pool loaded", "file", cfg.Pools.AdminFile, "imported", result.Imported, "skipped", len(result.Errors))
	}

	if cfg.Pools.MerchantFile != "" {
		questions, result, err := importer.ImportMerchantFile(cfg.Pools.MerchantFile)
		if err != nil {
			return err
		}
		poolRepo.ReplaceMerchantQuestions(questions)
		logger.Info("Merchant question pool loaded", "file", cfg.Pools.MerchantFile, "imported", result.Imported, "skipped", len(result.Errors))
	}

	return nil
}
