package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flighttracker-service/internal/infrastructure/config"
	"flighttracker-service/internal/infrastructure/persistence"
	"flighttracker-service/internal/infrastructure/router"
	"flighttracker-service/internal/interface/api"
	"flighttracker-service/internal/interface/repository"
	"flighttracker-service/internal/usecase"
	"flighttracker-service/pkg/localtime"
	"flighttracker-service/pkg/logger"
	"flighttracker-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Fatal("Failed to load config", "error", err)
	}

	// Create logger
	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting Flight Tracker Service", "version", cfg.AppVersion)

	mapper, err := localtime.NewMapper(cfg.StatsTimezone)
	if err != nil {
		log.Fatal("Unsupported stats timezone", "timezone", cfg.StatsTimezone, "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword, log)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	db := persistence.GetDatabase(mongoClient, cfg.MongoDB)

	m := metrics.NewMetrics("flighttracker", prometheus.DefaultRegisterer)

	// Set up repositories
	flightRepo := repository.NewMongoFlightRepository(db, log)
	observationRepo := repository.NewMongoObservationRepository(db, log)

	// Set up usecases
	calculator := usecase.NewStatsCalculator(mapper)
	flightStats := usecase.NewFlightStats(flightRepo, observationRepo, calculator, m, log)
	ranker := usecase.NewFlexWindowRanker(flightRepo, observationRepo, mapper.Zone(), cfg.FlexConcurrency, m, log)

	httpRouter := router.NewHTTPRouter(router.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RequestTimeout: cfg.WriteTimeout * 9 / 10,
		MetricsHandler: promhttp.Handler(),
	}, log, api.Instrument(m, log))

	httpRouter.Register(api.NewFlightHandler(flightStats, log))
	httpRouter.Register(api.NewRouteHandler(ranker, cfg.FlexMaxDays, log))

	// Saved route queries live in Postgres and are optional
	if cfg.PostgresDSN != "" {
		gormDB, err := persistence.NewPostgresDB(cfg.PostgresDSN, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		queryRepo := repository.NewGormRouteQueryRepository(gormDB, log)
		routeQueries := usecase.NewRouteQueries(queryRepo, ranker, cfg.FlexMaxDays, log)
		httpRouter.Register(api.NewQueryHandler(routeQueries, log))
	} else {
		log.Warn("POSTGRES_DSN not set, saved route queries are disabled")
	}

	if cfg.DevEndpoints {
		seeder := usecase.NewDataSeeder(flightRepo, observationRepo, log)
		httpRouter.Register(api.NewDevHandler(seeder, log))
		log.Warn("Dev endpoints enabled")
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpRouter.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Flight Tracker Service stopped")
}
