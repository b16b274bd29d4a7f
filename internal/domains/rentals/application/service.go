package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/femisayo-autos/autoshop-api/internal/domains/rentals/domain"
	"github.com/femisayo-autos/autoshop-api/internal/domains/rentals/ports"
	"github.com/femisayo-autos/autoshop-api/internal/shared/auth"
)

// Service orchestrates the rentals bounded context use cases.
type Service struct {
	cars     ports.CarRepository
	bookings ports.BookingRepository
}

// NewService wires the rentals service with its repositories.
func NewService(cars ports.CarRepository, bookings ports.BookingRepository) *Service {
	return &Service{cars: cars, bookings: bookings}
}

// AddCar registers a new fleet car. Staff only.
func (s *Service) AddCar(ctx context.Context, caller auth.Identity, input ports.AddCarInput) (*domain.RentalCar, error) {
	if err := caller.Require(auth.CapManageFleet); err != nil {
		return nil, err
	}
	car, err := domain.NewRentalCar(uuid.NewString(), input.Make, input.Model, input.Year, input.CarType, input.DailyRate, input.LicensePlate, input.Features)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.cars.Save(ctx, car)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// ListFleet returns every fleet car regardless of availability. Staff only.
func (s *Service) ListFleet(ctx context.Context, caller auth.Identity) ([]*domain.RentalCar, error) {
	if err := caller.Require(auth.CapManageFleet); err != nil {
		return nil, err
	}
	return s.cars.List(ctx)
}

// ListAvailableCars returns the cars currently offered for booking.
func (s *Service) ListAvailableCars(ctx context.Context, caller auth.Identity) ([]*domain.RentalCar, error) {
	if err := caller.Require(auth.CapViewAvailableFleet); err != nil {
		return nil, err
	}
	return s.cars.ListAvailable(ctx)
}

// ToggleAvailability flips whether a car is offered for booking. Staff
// only. Existing bookings are untouched: withdrawing a car stops new
// reservations without cancelling reservations already made.
func (s *Service) ToggleAvailability(ctx context.Context, caller auth.Identity, carID string) (*domain.RentalCar, error) {
	if err := caller.Require(auth.CapManageFleet); err != nil {
		return nil, err
	}
	car, err := s.cars.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	car.ToggleAvailability()
	saved, err := s.cars.Save(ctx, car)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// CreateBooking reserves a car for the caller over [start, end). The
// car must be available and free of active bookings intersecting the
// range; the total is priced from the car's current daily rate.
func (s *Service) CreateBooking(ctx context.Context, input ports.CreateBookingInput) (*domain.RentalBooking, error) {
	caller := input.Caller
	if err := caller.Require(auth.CapCreateBooking); err != nil {
		return nil, err
	}
	car, err := s.cars.GetByID(ctx, input.CarID)
	if err != nil {
		// A dangling car reference is a caller mistake, not a 404.
		return nil, mapError(err)
	}
	if !car.Available {
		return nil, mapError(ErrCarUnavailable)
	}
	booking, err := domain.NewRentalBooking(uuid.NewString(), car.ID, caller.ID, input.StartDate, input.EndDate, car.DailyRate)
	if err != nil {
		return nil, mapError(err)
	}
	conflicts, err := s.bookings.FindActiveOverlapping(ctx, car.ID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, mapError(err)
	}
	if len(conflicts) > 0 {
		return nil, mapError(ErrBookingConflict)
	}
	saved, err := s.bookings.Save(ctx, booking)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// ListBookings returns the caller's bookings, newest first; admins see
// every customer's bookings.
func (s *Service) ListBookings(ctx context.Context, caller auth.Identity) ([]*domain.RentalBooking, error) {
	if caller.IsAdmin() {
		if err := caller.Require(auth.CapViewAllBookings); err != nil {
			return nil, err
		}
		return s.bookings.List(ctx)
	}
	if err := caller.Require(auth.CapViewOwnRecords); err != nil {
		return nil, err
	}
	return s.bookings.ListByCustomer(ctx, caller.ID)
}

// UpdateBookingStatus applies a staff-initiated lifecycle move.
func (s *Service) UpdateBookingStatus(ctx context.Context, caller auth.Identity, bookingID, newStatus string) (*domain.RentalBooking, error) {
	if err := caller.Require(auth.CapManageBookings); err != nil {
		return nil, err
	}
	status, err := domain.ParseBookingStatus(newStatus)
	if err != nil {
		return nil, mapError(err)
	}
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := booking.Transition(status); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.bookings.Save(ctx, booking)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

var _ ports.Service = (*Service)(nil)
