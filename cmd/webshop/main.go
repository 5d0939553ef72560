package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielPopoola/webshop-vip/internal/api"
	"github.com/DanielPopoola/webshop-vip/internal/application/services"
	"github.com/DanielPopoola/webshop-vip/internal/config"
	"github.com/DanielPopoola/webshop-vip/internal/infrastructure/gateway"
	"github.com/DanielPopoola/webshop-vip/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/webshop-vip/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/webshop-vip/internal/interfaces/rest/middleware"
	"github.com/DanielPopoola/webshop-vip/internal/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting webshop vip service",
		"env", cfg.Primary.Env,
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
		"gateway", cfg.Gateway.Provider,
	)

	ctx := context.Background()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(cfg.Database.ConnString(), logger); err != nil {
			logger.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	paymentRepo := postgres.NewPaymentRepository(db)
	listingRepo := postgres.NewListingRepository(db)
	txCoordinator := postgres.NewTransactionCoordinator(db)

	gatewayClient := gateway.New(cfg.Gateway, logger)

	createService := services.NewCreatePaymentService(txCoordinator, logger)
	completeService := services.NewCompletePaymentService(paymentRepo, txCoordinator, gatewayClient, logger)
	queryService := services.NewQueryService(paymentRepo, listingRepo)
	activationService := services.NewActivationService(paymentRepo, listingRepo, txCoordinator, logger)

	doc, err := api.Load(ctx)
	if err != nil {
		logger.Error("failed to load API document", "error", err)
		os.Exit(1)
	}
	if err := api.Register(doc); err != nil {
		logger.Error("failed to register API document", "error", err)
		os.Exit(1)
	}
	validator, err := middleware.OpenAPIValidator(doc, logger)
	if err != nil {
		logger.Error("failed to build request validator", "error", err)
		os.Exit(1)
	}

	metrics.Setup(cfg.Metrics, logger)

	h := handlers.NewHandlers(
		createService,
		completeService,
		queryService,
		activationService,
		logger,
	)

	router := h.Router(handlers.RouterConfig{
		RequestTimeout: cfg.Server.RequestTimeout,
		MetricsPath:    cfg.Metrics.Path,
		Metrics:        metrics.Handler(),
		Docs:           api.DocsHandler,
		Health:         db,
		Validator:      validator,
	})

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
