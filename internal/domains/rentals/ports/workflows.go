package ports

import (
	"context"

	"github.com/femisayo-autos/autoshop-api/internal/domains/rentals/domain"
)

// BookingOrchestrator exposes durable workflow operations required by the
// rentals bounded context. Booking creation runs through a workflow so the
// reservation survives worker restarts, with an inline fallback when no
// workflow engine is configured.
type BookingOrchestrator interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.RentalBooking, error)
}
