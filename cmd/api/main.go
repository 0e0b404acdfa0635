package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/clinicore/clinic-backend/internal/adapters/cache"
	"github.com/clinicore/clinic-backend/internal/adapters/database"
	"github.com/clinicore/clinic-backend/internal/adapters/events"
	"github.com/clinicore/clinic-backend/internal/adapters/memory"
	"github.com/clinicore/clinic-backend/internal/api/handlers"
	"github.com/clinicore/clinic-backend/internal/api/middleware"
	"github.com/clinicore/clinic-backend/internal/api/routes"
	"github.com/clinicore/clinic-backend/internal/application/services"
	"github.com/clinicore/clinic-backend/internal/domain/providers"
	"github.com/clinicore/clinic-backend/internal/infrastructure/clients/postgres"
	redisclient "github.com/clinicore/clinic-backend/internal/infrastructure/clients/redis"
	"github.com/clinicore/clinic-backend/internal/infrastructure/observability"
	"github.com/clinicore/clinic-backend/internal/seed"
	"github.com/clinicore/clinic-backend/pkg/config"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Environment)
	logger := observability.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Storage backend: in-memory by default, Postgres when configured
	stores, cleanup, err := buildStores(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	defer cleanup()
	logger.Info().Str("backend", cfg.Storage.Backend).Msg("storage initialized")

	// Redis is optional: without it caching is skipped and events stay
	// in-process
	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	redisClient, err := redisclient.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, using in-process event bus")
		eventBus = events.NewLocalEventBus()
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient)
		logger.Info().Msg("redis initialized")
	}
	defer eventBus.Close()

	if cfg.Storage.Backend == config.StorageMemory && cfg.Storage.DemoData {
		if err := seed.Load(ctx, stores); err != nil {
			logger.Fatal().Err(err).Msg("failed to load demo data")
		}
		logger.Info().Msg("demo data loaded")
	}

	tokenTTL := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
	authService := services.NewAuthService(stores.Users, cfg.Auth.JWTSecret, tokenTTL)
	userService := services.NewUserService(stores.Users, stores.Appointments)
	notificationService := services.NewNotificationService(stores.Notifications, eventBus)
	appointmentService := services.NewAppointmentService(stores.Appointments, stores.Users, eventBus)
	messageService := services.NewMessageService(stores.Messages, stores.Users, notificationService, eventBus)
	diagnosisService := services.NewDiagnosisService(stores.Diagnoses, stores.Users, notificationService)
	statisticsService := services.NewStatisticsService(stores.Users, stores.Appointments, cacheProvider, metrics)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
	}

	router := routes.NewRouter(
		handlers.NewAuthHandler(authService),
		handlers.NewUserHandler(userService),
		handlers.NewAppointmentHandler(appointmentService),
		handlers.NewMessageHandler(messageService),
		handlers.NewNotificationHandler(notificationService),
		handlers.NewDiagnosisHandler(diagnosisService),
		handlers.NewStatisticsHandler(statisticsService),
		authService,
		middleware.NewRateLimiter(rate.Limit(1), 10),
		cacheMiddleware,
		metrics,
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
}

// buildStores wires the repository set for the configured backend
func buildStores(cfg *config.Config) (seed.Stores, func(), error) {
	if cfg.Storage.Backend == config.StoragePostgres {
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			return seed.Stores{}, nil, err
		}
		return seed.Stores{
			Users:         database.NewUserAdapter(pgClient),
			Appointments:  database.NewAppointmentAdapter(pgClient),
			Messages:      database.NewMessageAdapter(pgClient),
			Notifications: database.NewNotificationAdapter(pgClient),
			Diagnoses:     database.NewDiagnosisAdapter(pgClient),
		}, func() { pgClient.Close() }, nil
	}

	return seed.Stores{
		Users:         memory.NewUserAdapter(),
		Appointments:  memory.NewAppointmentAdapter(),
		Messages:      memory.NewMessageAdapter(),
		Notifications: memory.NewNotificationAdapter(),
		Diagnoses:     memory.NewDiagnosisAdapter(),
	}, func() {}, nil
}
