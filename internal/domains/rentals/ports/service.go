package ports

import (
	"context"
	"time"

	"github.com/femisayo-autos/autoshop-api/internal/domains/rentals/domain"
	"github.com/femisayo-autos/autoshop-api/internal/shared/auth"
)

// AddCarInput carries the fields needed to add a fleet car.
type AddCarInput struct {
	Make         string
	Model        string
	Year         int
	CarType      string
	DailyRate    float64
	LicensePlate string
	Features     []string
}

// CreateBookingInput carries the fields needed to reserve a car.
type CreateBookingInput struct {
	Caller    auth.Identity
	CarID     string
	StartDate time.Time
	EndDate   time.Time
}

// Service exposes the rentals bounded context use cases. Every method
// takes the authenticated caller so role and row scoping are enforced at
// this boundary rather than in the storage layer.
type Service interface {
	AddCar(ctx context.Context, caller auth.Identity, input AddCarInput) (*domain.RentalCar, error)
	ListFleet(ctx context.Context, caller auth.Identity) ([]*domain.RentalCar, error)
	ListAvailableCars(ctx context.Context, caller auth.Identity) ([]*domain.RentalCar, error)
	ToggleAvailability(ctx context.Context, caller auth.Identity, carID string) (*domain.RentalCar, error)
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.RentalBooking, error)
	ListBookings(ctx context.Context, caller auth.Identity) ([]*domain.RentalBooking, error)
	UpdateBookingStatus(ctx context.Context, caller auth.Identity, bookingID, newStatus string) (*domain.RentalBooking, error)
}
