package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	rentalsmemory "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/adapters/memory"
	rentalsobs "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/adapters/observability"
	rentalspostgres "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/adapters/persistence/postgres"
	rentalsapp "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/application"
	rentalsports "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/ports"
	bookingactivities "github.com/femisayo-autos/autoshop-api/internal/durable/temporal/activities/bookings"
	bookingworkflows "github.com/femisayo-autos/autoshop-api/internal/durable/temporal/workflows/bookings"
	platformobservability "github.com/femisayo-autos/autoshop-api/internal/platform/observability"
	platformpostgres "github.com/femisayo-autos/autoshop-api/internal/platform/postgres"
)

func main() {
	ctx := context.Background()
	const serviceName = "autoshop-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cars, bookings, cleanupRepos := buildRentalsRepositories(ctx, logger)
	defer cleanupRepos()
	rentalsService := rentalsobs.New(
		rentalsapp.NewService(cars, bookings),
		rentalsobs.WithLogger(logger),
		rentalsobs.WithTracer(instruments.Tracer("internal.rentals.application")),
		rentalsobs.WithMeter(instruments.Meter("internal.rentals.application")),
	)
	activities := bookingactivities.NewActivities(rentalsService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, bookingworkflows.BookingCreationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(bookingworkflows.BookingCreationWorkflow, workflow.RegisterOptions{Name: bookingworkflows.BookingCreationWorkflowName})
	w.RegisterActivityWithOptions(activities.PersistBooking, activity.RegisterOptions{Name: bookingactivities.PersistBookingActivityName})

	logger.Info("worker listening", slog.String("taskQueue", bookingworkflows.BookingCreationTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildRentalsRepositories(ctx context.Context, logger *slog.Logger) (rentalsports.CarRepository, rentalsports.BookingRepository, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		logger.Warn("worker falling back to in-memory rentals repositories")
		return rentalsmemory.NewCarRepository(), rentalsmemory.NewBookingRepository(), cleanup
	}
	logger.Info("worker rentals repositories configured with postgres")
	return rentalspostgres.NewCarRepository(db), rentalspostgres.NewBookingRepository(db), cleanup
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
