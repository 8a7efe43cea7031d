package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bibbank/consolidation-service/internal/application/usecase"
	"github.com/bibbank/consolidation-service/internal/auth"
	"github.com/bibbank/consolidation-service/internal/domain/port"
	"github.com/bibbank/consolidation-service/internal/domain/service"
	"github.com/bibbank/consolidation-service/internal/infrastructure/config"
	"github.com/bibbank/consolidation-service/internal/infrastructure/messaging"
	pgRepo "github.com/bibbank/consolidation-service/internal/infrastructure/persistence/postgres"
	"github.com/bibbank/consolidation-service/internal/observability"
	grpcPresentation "github.com/bibbank/consolidation-service/internal/presentation/grpc"
	"github.com/bibbank/consolidation-service/internal/presentation/rest"
)

func main() {
	logger := observability.InitLogger(observability.LogConfig{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: "json",
	})

	cfg := config.Load()
	logger.Info("starting consolidation service",
		"grpc_port", cfg.GRPCPort,
		"http_port", cfg.HTTPPort,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Database -----------------------------------------------------------
	if err := pgRepo.RunMigrations(cfg.DB.DSN(), "file://./migrations"); err != nil {
		logger.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	pool, err := pgRepo.NewPool(ctx, cfg.DB.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// --- Offer catalog ------------------------------------------------------
	// The catalog is loaded once at startup; a broken catalog is a
	// deployment problem, so it fails the boot rather than individual
	// requests.
	var catalogRepo port.OfferCatalogRepository = pgRepo.NewOfferCatalogRepo(pool, cfg.Engine.ScoreMin, cfg.Engine.ScoreMax)
	catalog, err := catalogRepo.LoadCatalog(ctx)
	if err != nil {
		logger.Error("failed to load offer catalog", "error", err)
		os.Exit(1)
	}
	logger.Info("offer catalog loaded", "offers", len(catalog.Offers()))

	// --- Infrastructure adapters -------------------------------------------
	publisher := messaging.NewKafkaEventPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	defer publisher.Close() //nolint:errcheck

	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret: cfg.JWTSecret,
		Issuer: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to configure JWT validation", "error", err)
		os.Exit(1)
	}

	// --- Domain services and use cases --------------------------------------
	simulator := service.NewScenarioSimulator(service.SimulatorConfig{
		HorizonMonths: cfg.Engine.HorizonMonths,
	})
	engine := service.NewEligibilityEngine(simulator)

	evaluateUC := usecase.NewEvaluateCustomerUseCase(engine, simulator, catalog, publisher)
	offersUC := usecase.NewListOffersUseCase(catalog)

	// --- gRPC server --------------------------------------------------------
	handler := grpcPresentation.NewHandler(evaluateUC, offersUC, logger)
	grpcServer := grpcPresentation.NewServer(handler, logger, jwtService)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			logger.Error("gRPC server error", "error", err)
			os.Exit(1)
		}
	}()

	// --- HTTP health and metrics server --------------------------------------
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			logger.Error("meter provider shutdown error", "error", err)
		}
	}()

	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(logger)
	healthHandler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: mux,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// --- Graceful shutdown --------------------------------------------------
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received shutdown signal", "signal", sig.String())

	grpcServer.GracefulStop()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("consolidation service stopped")
}
