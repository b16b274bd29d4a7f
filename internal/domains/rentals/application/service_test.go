package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/femisayo-autos/autoshop-api/internal/domains/rentals/adapters/memory"
	"github.com/femisayo-autos/autoshop-api/internal/domains/rentals/domain"
	"github.com/femisayo-autos/autoshop-api/internal/domains/rentals/ports"
	"github.com/femisayo-autos/autoshop-api/internal/shared/auth"
)

var (
	staff    = auth.Identity{ID: "staff-1", Email: "staff@example.com", Role: auth.RoleAdmin}
	customer = auth.Identity{ID: "cust-1", Email: "cust@example.com", Role: auth.RoleCustomer}
	stranger = auth.Identity{ID: "cust-2", Email: "other@example.com", Role: auth.RoleCustomer}
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestService() *Service {
	return NewService(memory.NewCarRepository(), memory.NewBookingRepository())
}

func addCar(t *testing.T, svc *Service, dailyRate float64) *domain.RentalCar {
	t.Helper()
	car, err := svc.AddCar(context.Background(), staff, ports.AddCarInput{
		Make:         "Toyota",
		Model:        "Corolla",
		Year:         2022,
		CarType:      "sedan",
		DailyRate:    dailyRate,
		LicensePlate: "KJA-123",
		Features:     []string{"AC"},
	})
	require.NoError(t, err)
	return car
}

func bookingInput(caller auth.Identity, carID string, start, end time.Time) ports.CreateBookingInput {
	return ports.CreateBookingInput{Caller: caller, CarID: carID, StartDate: start, EndDate: end}
}

func TestAddCar_CustomerRejected(t *testing.T) {
	svc := newTestService()
	_, err := svc.AddCar(context.Background(), customer, ports.AddCarInput{
		Make: "Toyota", Model: "Corolla", Year: 2022, CarType: "sedan", DailyRate: 100, LicensePlate: "KJA-1",
	})
	require.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestToggleAvailability_Idempotence(t *testing.T) {
	svc := newTestService()
	car := addCar(t, svc, 100)
	require.True(t, car.Available)

	toggled, err := svc.ToggleAvailability(context.Background(), staff, car.ID)
	require.NoError(t, err)
	require.False(t, toggled.Available)

	restored, err := svc.ToggleAvailability(context.Background(), staff, car.ID)
	require.NoError(t, err)
	require.True(t, restored.Available)
}

func TestToggleAvailability_CustomerRejected(t *testing.T) {
	svc := newTestService()
	car := addCar(t, svc, 100)

	_, err := svc.ToggleAvailability(context.Background(), customer, car.ID)
	require.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestToggleAvailability_UnknownCar(t *testing.T) {
	svc := newTestService()
	_, err := svc.ToggleAvailability(context.Background(), staff, "missing")
	require.ErrorIs(t, err, ports.ErrCarNotFound)
}

func TestCreateBooking_PricesWholeDays(t *testing.T) {
	svc := newTestService()
	car := addCar(t, svc, 5000)

	booking, err := svc.CreateBooking(context.Background(), bookingInput(customer, car.ID, date(2024, 1, 1), date(2024, 1, 4)))
	require.NoError(t, err)
	require.Equal(t, domain.BookingPending, booking.Status)
	require.Equal(t, 15000.0, booking.TotalAmount)
	require.Equal(t, customer.ID, booking.CustomerID)
}

func TestCreateBooking_UnknownCar(t *testing.T) {
	svc := newTestService()
	_, err := svc.CreateBooking(context.Background(), bookingInput(customer, "missing", date(2024, 1, 1), date(2024, 1, 4)))
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateBooking_InvalidRange(t *testing.T) {
	svc := newTestService()
	car := addCar(t, svc, 100)

	_, err := svc.CreateBooking(context.Background(), bookingInput(customer, car.ID, date(2024, 1, 4), date(2024, 1, 4)))
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateBooking_UnavailableCarRejected(t *testing.T) {
	svc := newTestService()
	car := addCar(t, svc, 100)
	_, err := svc.ToggleAvailability(context.Background(), staff, car.ID)
	require.NoError(t, err)

	_, err = svc.CreateBooking(context.Background(), bookingInput(customer, car.ID, date(2024, 1, 1), date(2024, 1, 4)))
	require.ErrorIs(t, err, ErrCarUnavailable)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateBooking_OverlapRejected(t *testing.T) {
	svc := newTestService()
	car := addCar(t, svc, 100)

	_, err := svc.CreateBooking(context.Background(), bookingInput(customer, car.ID, date(2024, 1, 10), date(2024, 1, 15)))
	require.NoError(t, err)

	_, err = svc.CreateBooking(context.Background(), bookingInput(stranger, car.ID, date(2024, 1, 12), date(2024, 1, 14)))
	require.ErrorIs(t, err, ErrBookingConflict)

	// Back-to-back ranges stay legal under half-open semantics.
	_, err = svc.CreateBooking(context.Background(), bookingInput(stranger, car.ID, date(2024, 1, 15), date(2024, 1, 18)))
	require.NoError(t, err)
}

func TestCreateBooking_CancelledBookingFreesCar(t *testing.T) {
	svc := newTestService()
	car := addCar(t, svc, 100)

	first, err := svc.CreateBooking(context.Background(), bookingInput(customer, car.ID, date(2024, 1, 10), date(2024, 1, 15)))
	require.NoError(t, err)

	_, err = svc.UpdateBookingStatus(context.Background(), staff, first.ID, "cancelled")
	require.NoError(t, err)

	_, err = svc.CreateBooking(context.Background(), bookingInput(stranger, car.ID, date(2024, 1, 12), date(2024, 1, 14)))
	require.NoError(t, err)
}

func TestUpdateBookingStatus_TerminalGuard(t *testing.T) {
	svc := newTestService()
	car := addCar(t, svc, 100)

	booking, err := svc.CreateBooking(context.Background(), bookingInput(customer, car.ID, date(2024, 1, 1), date(2024, 1, 4)))
	require.NoError(t, err)

	booking, err = svc.UpdateBookingStatus(context.Background(), staff, booking.ID, "completed")
	require.NoError(t, err)
	require.Equal(t, domain.BookingCompleted, booking.Status)

	_, err = svc.UpdateBookingStatus(context.Background(), staff, booking.ID, "cancelled")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateBookingStatus_CustomerRejected(t *testing.T) {
	svc := newTestService()
	car := addCar(t, svc, 100)

	booking, err := svc.CreateBooking(context.Background(), bookingInput(customer, car.ID, date(2024, 1, 1), date(2024, 1, 4)))
	require.NoError(t, err)

	_, err = svc.UpdateBookingStatus(context.Background(), customer, booking.ID, "confirmed")
	require.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestListBookings_Scoping(t *testing.T) {
	svc := newTestService()
	car := addCar(t, svc, 100)

	_, err := svc.CreateBooking(context.Background(), bookingInput(customer, car.ID, date(2024, 1, 1), date(2024, 1, 4)))
	require.NoError(t, err)
	_, err = svc.CreateBooking(context.Background(), bookingInput(stranger, car.ID, date(2024, 2, 1), date(2024, 2, 4)))
	require.NoError(t, err)

	own, err := svc.ListBookings(context.Background(), customer)
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Equal(t, customer.ID, own[0].CustomerID)

	all, err := svc.ListBookings(context.Background(), staff)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestListAvailableCars_ExcludesWithdrawn(t *testing.T) {
	svc := newTestService()
	car := addCar(t, svc, 100)
	_, err := svc.ToggleAvailability(context.Background(), staff, car.ID)
	require.NoError(t, err)

	available, err := svc.ListAvailableCars(context.Background(), customer)
	require.NoError(t, err)
	require.Empty(t, available)

	fleet, err := svc.ListFleet(context.Background(), staff)
	require.NoError(t, err)
	require.Len(t, fleet, 1)
}
