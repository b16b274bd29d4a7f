package ports

import (
	"context"
	"errors"
	"time"

	"github.com/femisayo-autos/autoshop-api/internal/domains/rentals/domain"
)

var (
	ErrCarNotFound     = errors.New("rental car not found")
	ErrBookingNotFound = errors.New("rental booking not found")
)

// CarRepository persists the rental fleet.
type CarRepository interface {
	Save(ctx context.Context, car *domain.RentalCar) (*domain.RentalCar, error)
	GetByID(ctx context.Context, id string) (*domain.RentalCar, error)
	ListAvailable(ctx context.Context) ([]*domain.RentalCar, error)
	List(ctx context.Context) ([]*domain.RentalCar, error)
}

// BookingRepository persists rental bookings. List results are ordered
// newest first, matching the screens that consume them.
type BookingRepository interface {
	Save(ctx context.Context, booking *domain.RentalBooking) (*domain.RentalBooking, error)
	GetByID(ctx context.Context, id string) (*domain.RentalBooking, error)
	List(ctx context.Context) ([]*domain.RentalBooking, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.RentalBooking, error)
	// FindActiveOverlapping returns non-cancelled, non-completed bookings
	// for the car whose [start, end) range intersects the given one.
	FindActiveOverlapping(ctx context.Context, carID string, start, end time.Time) ([]*domain.RentalBooking, error)
	CountAll(ctx context.Context) (int64, error)
	CountByCustomer(ctx context.Context, customerID string) (int64, error)
}
