//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	rentalspostgres "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/adapters/persistence/postgres"
	"github.com/femisayo-autos/autoshop-api/internal/domains/rentals/domain"
	"github.com/femisayo-autos/autoshop-api/internal/domains/rentals/ports"
	"github.com/femisayo-autos/autoshop-api/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("autoshop_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	// Run migrations
	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func newCar(t *testing.T, id string, features ...string) *domain.RentalCar {
	t.Helper()
	car, err := domain.NewRentalCar(id, "Toyota", "Corolla", 2021, "sedan", 15000, "KJA-"+id, features)
	require.NoError(t, err)
	return car
}

func newBooking(t *testing.T, id, carID, customerID string, start, end time.Time) *domain.RentalBooking {
	t.Helper()
	booking, err := domain.NewRentalBooking(id, carID, customerID, start, end, 15000)
	require.NoError(t, err)
	return booking
}

func TestCarRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := rentalspostgres.NewCarRepository(db)
	ctx := context.Background()

	saved, err := repo.Save(ctx, newCar(t, "car-1", "AC", "Bluetooth"))
	require.NoError(t, err)
	assert.Equal(t, "Toyota", saved.Make)
	assert.True(t, saved.Available)

	retrieved, err := repo.GetByID(ctx, "car-1")
	require.NoError(t, err)
	assert.Equal(t, "Corolla", retrieved.Model)
	assert.Equal(t, []string{"AC", "Bluetooth"}, retrieved.Features)
	assert.Equal(t, "KJA-CAR-1", retrieved.LicensePlate)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrCarNotFound)
}

func TestCarRepository_ToggleAvailabilityPersists(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := rentalspostgres.NewCarRepository(db)
	ctx := context.Background()

	car := newCar(t, "car-1")
	_, err := repo.Save(ctx, car)
	require.NoError(t, err)

	car.ToggleAvailability()
	updated, err := repo.Save(ctx, car)
	require.NoError(t, err)
	assert.False(t, updated.Available)

	available, err := repo.ListAvailable(ctx)
	require.NoError(t, err)
	assert.Empty(t, available)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCarRepository_ListAvailable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := rentalspostgres.NewCarRepository(db)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		car := newCar(t, fmt.Sprintf("car-%d", i))
		if i == 3 {
			car.ToggleAvailability()
		}
		_, err := repo.Save(ctx, car)
		require.NoError(t, err)
	}

	available, err := repo.ListAvailable(ctx)
	require.NoError(t, err)
	assert.Len(t, available, 2)
}

func TestBookingRepository_SaveAndList(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := rentalspostgres.NewBookingRepository(db)
	ctx := context.Background()

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := repo.Save(ctx, newBooking(t, "bk-1", "car-1", "cust-1", start, start.AddDate(0, 0, 2)))
	require.NoError(t, err)
	_, err = repo.Save(ctx, newBooking(t, "bk-2", "car-2", "cust-2", start, start.AddDate(0, 0, 4)))
	require.NoError(t, err)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := repo.ListByCustomer(ctx, "cust-1")
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "bk-1", own[0].ID)
	assert.Equal(t, 30000.0, own[0].TotalAmount)

	count, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = repo.CountByCustomer(ctx, "cust-2")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrBookingNotFound)
}

func TestBookingRepository_StatusTransitionPersists(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := rentalspostgres.NewBookingRepository(db)
	ctx := context.Background()

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	booking := newBooking(t, "bk-1", "car-1", "cust-1", start, start.AddDate(0, 0, 2))
	_, err := repo.Save(ctx, booking)
	require.NoError(t, err)

	require.NoError(t, booking.Transition(domain.BookingConfirmed))
	_, err = repo.Save(ctx, booking)
	require.NoError(t, err)

	retrieved, err := repo.GetByID(ctx, "bk-1")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, retrieved.Status)
}

func TestBookingRepository_FindActiveOverlapping(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := rentalspostgres.NewBookingRepository(db)
	ctx := context.Background()

	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 5)

	held := newBooking(t, "bk-held", "car-1", "cust-1", start, end)
	_, err := repo.Save(ctx, held)
	require.NoError(t, err)

	cancelled := newBooking(t, "bk-cancelled", "car-1", "cust-2", start, end)
	require.NoError(t, cancelled.Transition(domain.BookingCancelled))
	_, err = repo.Save(ctx, cancelled)
	require.NoError(t, err)

	otherCar := newBooking(t, "bk-other", "car-2", "cust-3", start, end)
	_, err = repo.Save(ctx, otherCar)
	require.NoError(t, err)

	// Intersecting window shows only the live booking on the same car.
	overlapping, err := repo.FindActiveOverlapping(ctx, "car-1", start.AddDate(0, 0, 2), end.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Len(t, overlapping, 1)
	assert.Equal(t, "bk-held", overlapping[0].ID)

	// Back-to-back windows share a boundary instant but do not overlap.
	after, err := repo.FindActiveOverlapping(ctx, "car-1", end, end.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Empty(t, after)

	before, err := repo.FindActiveOverlapping(ctx, "car-1", start.AddDate(0, 0, -3), start)
	require.NoError(t, err)
	assert.Empty(t, before)
}
