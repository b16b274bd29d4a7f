package bookings

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	rentalsdomain "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/domain"
	rentalsports "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/ports"
)

// PersistBookingActivityName validates and stores a booking through the rentals service.
const PersistBookingActivityName = "rentals.activities.PersistBooking"

// Activities groups activities that operate on the rentals bounded context.
type Activities struct {
	service rentalsports.Service
}

// NewActivities wires the rentals service into the Temporal activities bundle.
func NewActivities(service rentalsports.Service) *Activities {
	return &Activities{service: service}
}

// PersistBooking runs the full booking use case, availability and
// conflict checks included, and returns the stored booking.
func (a *Activities) PersistBooking(ctx context.Context, input rentalsports.CreateBookingInput) (*rentalsdomain.RentalBooking, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("booking persist activity not initialized", "carId", input.CarID)
		return nil, errors.New("booking persist activity not initialized")
	}
	logger.Info("PersistBooking activity started", "carId", input.CarID)
	booking, err := a.service.CreateBooking(ctx, input)
	if err != nil {
		logger.Error("PersistBooking activity failed", "carId", input.CarID, "error", err)
		return nil, err
	}
	logger.Info("PersistBooking activity completed", "bookingId", booking.ID)
	return booking, nil
}
