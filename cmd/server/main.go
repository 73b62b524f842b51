package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexuscommerce/decision-service/internal/application/usecase"
	"github.com/nexuscommerce/decision-service/internal/domain/port"
	"github.com/nexuscommerce/decision-service/internal/domain/service"
	"github.com/nexuscommerce/decision-service/internal/infrastructure/brain"
	"github.com/nexuscommerce/decision-service/internal/infrastructure/config"
	"github.com/nexuscommerce/decision-service/internal/infrastructure/messaging"
	"github.com/nexuscommerce/decision-service/internal/infrastructure/postgres"
	grpcpresentation "github.com/nexuscommerce/decision-service/internal/presentation/grpc"
	"github.com/nexuscommerce/decision-service/internal/presentation/rest"
	"github.com/nexuscommerce/decision-service/pkg/kafka"
	"github.com/nexuscommerce/decision-service/pkg/observability"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	// Initialize structured logger.
	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  "json",
		Service: "decision-service",
	})

	logger.Info("starting decision-service")

	// Load the business policy set.
	policies, err := config.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		logger.Error("failed to load policy file", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.PolicyFile != "" {
		logger.Info("loaded policy overrides", slog.String("file", cfg.PolicyFile))
	}

	// Connect to PostgreSQL.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Error("failed to ping database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Initialize infrastructure adapters.
	decisionRepo := postgres.NewDecisionRepository(pool)

	producer := kafka.NewProducer(kafka.Config{Brokers: []string{cfg.KafkaBroker}})
	defer producer.Close()
	eventPublisher := messaging.NewKafkaPublisher(producer, logger)

	// Initialize the rule override client.
	var overrideClient port.RuleOverrideClient
	if cfg.BrainEnabled() {
		overrideClient = brain.NewClient(cfg.BrainURL, cfg.BrainAPIKey, cfg.BrainTimeout, logger)
		logger.Info("rule override service enabled", slog.String("url", cfg.BrainURL))
	} else {
		overrideClient = brain.NewStubClient(logger)
	}

	// Initialize domain services, each wrapped with the override boundary.
	assessor := brain.NewOverrideAssessor(
		service.NewRiskScorer(policies.Risk),
		overrideClient, cfg.BrainTimeout, logger,
	)
	router := brain.NewOverrideRouter(
		service.NewApprovalRouter(policies.Approval),
		overrideClient, cfg.BrainTimeout, logger,
	)
	cartDiscounter := brain.NewOverrideDiscounter(
		service.NewCartDiscounter(policies.CartDiscount),
		overrideClient, cfg.BrainTimeout, logger,
	)
	profileDiscounter := brain.NewOverrideDiscounter(
		service.NewProfileDiscounter(policies.ProfileDiscount),
		overrideClient, cfg.BrainTimeout, logger,
	)

	// Initialize use cases.
	evaluateOrderUC := usecase.NewEvaluateOrder(decisionRepo, eventPublisher, assessor, router)
	calculateDiscountUC := usecase.NewCalculateDiscount(cartDiscounter, profileDiscounter)
	getDecisionUC := usecase.NewGetDecision(decisionRepo)
	checkEligibilityUC := usecase.NewCheckEligibility(
		service.NewCreditScorer(),
		service.NewEligibilityChecker(policies.Eligibility.RestrictedCountries, policies.Eligibility.B2BDomains),
	)

	// Initialize gRPC handler and server.
	grpcHandler := grpcpresentation.NewDecisionServiceHandler(evaluateOrderUC, calculateDiscountUC, getDecisionUC, checkEligibilityUC, logger)
	grpcServer := grpcpresentation.NewServer(grpcHandler, cfg.GRPCAddress(), logger)

	// Initialize HTTP health and metrics server.
	httpMux := http.NewServeMux()
	rest.NewHealthHandler(logger, pool).RegisterRoutes(httpMux)

	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: "decision-service"})
	if err != nil {
		logger.Error("failed to initialize metrics", slog.String("error", err.Error()))
		os.Exit(1)
	}
	httpMux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      httpMux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", slog.String("address", cfg.HTTPAddress()))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("decision-service started",
		slog.String("grpc_address", cfg.GRPCAddress()),
		slog.String("http_address", cfg.HTTPAddress()),
		slog.String("environment", cfg.Environment),
	)

	// Wait for shutdown signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("server error", slog.String("error", err.Error()))
	}

	// Graceful shutdown.
	logger.Info("shutting down decision-service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	grpcServer.Stop()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("decision-service stopped")
}
