package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	billingmemory "github.com/femisayo-autos/autoshop-api/internal/domains/billing/adapters/memory"
	billingpostgres "github.com/femisayo-autos/autoshop-api/internal/domains/billing/adapters/persistence/postgres"
	billingapp "github.com/femisayo-autos/autoshop-api/internal/domains/billing/application"
	billingports "github.com/femisayo-autos/autoshop-api/internal/domains/billing/ports"
	dashboardapp "github.com/femisayo-autos/autoshop-api/internal/domains/dashboard/application"
	identitymemory "github.com/femisayo-autos/autoshop-api/internal/domains/identity/adapters/memory"
	identitypostgres "github.com/femisayo-autos/autoshop-api/internal/domains/identity/adapters/persistence/postgres"
	identityapp "github.com/femisayo-autos/autoshop-api/internal/domains/identity/application"
	identityports "github.com/femisayo-autos/autoshop-api/internal/domains/identity/ports"
	rentalsmemory "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/adapters/memory"
	rentalsobs "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/adapters/observability"
	rentalspostgres "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/adapters/persistence/postgres"
	rentalsworkflows "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/adapters/workflows"
	rentalsapp "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/application"
	rentalsports "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/ports"
	workshopmemory "github.com/femisayo-autos/autoshop-api/internal/domains/workshop/adapters/memory"
	workshopobs "github.com/femisayo-autos/autoshop-api/internal/domains/workshop/adapters/observability"
	workshoppostgres "github.com/femisayo-autos/autoshop-api/internal/domains/workshop/adapters/persistence/postgres"
	workshopapp "github.com/femisayo-autos/autoshop-api/internal/domains/workshop/application"
	workshopports "github.com/femisayo-autos/autoshop-api/internal/domains/workshop/ports"
	platformmigrations "github.com/femisayo-autos/autoshop-api/internal/platform/migrations"
	platformobservability "github.com/femisayo-autos/autoshop-api/internal/platform/observability"
	platformpostgres "github.com/femisayo-autos/autoshop-api/internal/platform/postgres"
	"github.com/femisayo-autos/autoshop-api/internal/server"
	"github.com/femisayo-autos/autoshop-api/internal/shared/auth"
)

// repositories bundles every context's storage port so the builder can
// swap the whole set between Postgres and memory at once.
type repositories struct {
	profiles identityports.Repository
	sessions identityports.SessionStore
	vehicles workshopports.VehicleRepository
	jobs     workshopports.JobOrderRepository
	cars     rentalsports.CarRepository
	bookings rentalsports.BookingRepository
	invoices billingports.Repository
}

// Run boots the autoshop HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "autoshop-api"
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	repos, cleanupRepos := buildRepositories(ctx, cfg, logger)
	defer cleanupRepos()

	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to configure token issuer: %w", err)
	}

	identityService := identityapp.NewService(repos.profiles, repos.sessions, tokens)
	workshopService := workshopobs.New(
		workshopapp.NewService(repos.vehicles, repos.jobs),
		workshopobs.WithLogger(logger),
		workshopobs.WithTracer(instruments.Tracer("internal.workshop.application")),
		workshopobs.WithMeter(instruments.Meter("internal.workshop.application")),
	)
	rentalsService := rentalsobs.New(
		rentalsapp.NewService(repos.cars, repos.bookings),
		rentalsobs.WithLogger(logger),
		rentalsobs.WithTracer(instruments.Tracer("internal.rentals.application")),
		rentalsobs.WithMeter(instruments.Meter("internal.rentals.application")),
	)
	billingService := billingapp.NewService(repos.invoices)
	dashboardService := dashboardapp.NewService(repos.jobs, repos.bookings, repos.invoices)

	var bookingWorkflows rentalsports.BookingOrchestrator = rentalsworkflows.NewInlineBookingWorkflows(rentalsService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline CreateBooking", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		bookingWorkflows = rentalsworkflows.NewTemporalBookingWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := server.ApiHandleFunctions{
		AuthAPI:      server.NewAuthAPI(identityService),
		WorkshopAPI:  server.NewWorkshopAPI(workshopService),
		RentalsAPI:   server.NewRentalsAPI(rentalsService, bookingWorkflows),
		FleetAPI:     server.NewFleetAPI(rentalsService),
		BillingAPI:   server.NewBillingAPI(billingService),
		DashboardAPI: server.NewDashboardAPI(dashboardService),
	}

	router := server.NewRouter(handlers, server.NewAuthMiddleware(tokens))
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("autoshop API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("autoshop API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (repositories, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return memoryRepositories(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return memoryRepositories(), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return memoryRepositories(), func() {}
	}
	if err := platformmigrations.Run(db); err != nil {
		logger.Warn("failed to run migrations, falling back to memory", slog.String("error", err.Error()))
		_ = sqlDB.Close()
		return memoryRepositories(), func() {}
	}
	logger.Info("repositories configured with postgres")
	return repositories{
		profiles: identitypostgres.NewRepository(db),
		sessions: identitypostgres.NewSessionStore(db, identitypostgres.DefaultSessionTTL),
		vehicles: workshoppostgres.NewVehicleRepository(db),
		jobs:     workshoppostgres.NewJobOrderRepository(db),
		cars:     rentalspostgres.NewCarRepository(db),
		bookings: rentalspostgres.NewBookingRepository(db),
		invoices: billingpostgres.NewRepository(db),
	}, func() { _ = sqlDB.Close() }
}

func memoryRepositories() repositories {
	return repositories{
		profiles: identitymemory.NewRepository(),
		sessions: identitymemory.NewSessionStore(),
		vehicles: workshopmemory.NewVehicleRepository(),
		jobs:     workshopmemory.NewJobOrderRepository(),
		cars:     rentalsmemory.NewCarRepository(),
		bookings: rentalsmemory.NewBookingRepository(),
		invoices: billingmemory.NewRepository(),
	}
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
