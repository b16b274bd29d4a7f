package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	rentalsdomain "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/domain"
	rentalsports "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/ports"
	bookingactivities "github.com/femisayo-autos/autoshop-api/internal/durable/temporal/activities/bookings"
)

// RunBookingPersistenceSequence executes the ordered set of activities needed to persist a booking.
func RunBookingPersistenceSequence(ctx workflow.Context, input rentalsports.CreateBookingInput) (*rentalsdomain.RentalBooking, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("booking persistence sequence started", "carId", input.CarID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var booking rentalsdomain.RentalBooking
	err := workflow.ExecuteActivity(ctx, bookingactivities.PersistBookingActivityName, input).Get(ctx, &booking)
	if err != nil {
		logger.Error("booking persistence sequence failed", "carId", input.CarID, "error", err)
		return nil, err
	}
	logger.Info("booking persistence sequence completed", "bookingId", booking.ID)
	return &booking, nil
}
