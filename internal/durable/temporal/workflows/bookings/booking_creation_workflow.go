package bookings

import (
	"go.temporal.io/sdk/workflow"

	rentalsdomain "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/domain"
	rentalsports "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/ports"
	"github.com/femisayo-autos/autoshop-api/internal/durable/temporal/sequences"
)

const (
	// BookingCreationWorkflowName is the public identifier for registering the workflow.
	BookingCreationWorkflowName = "rentals.workflows.BookingCreation"
	// BookingCreationTaskQueue is the queue consumed by the worker processing booking workflows.
	BookingCreationTaskQueue = "BOOKING_CREATION"
)

// BookingCreationWorkflowInput captures the payload required to reserve a car.
type BookingCreationWorkflowInput struct {
	Command rentalsports.CreateBookingInput
	TraceID string
}

// BookingCreationWorkflow orchestrates the activities needed to persist a booking.
func BookingCreationWorkflow(ctx workflow.Context, input BookingCreationWorkflowInput) (*rentalsdomain.RentalBooking, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("BookingCreationWorkflow started", withTraceID(input.TraceID, "carId", input.Command.CarID)...)
	booking, err := sequences.RunBookingPersistenceSequence(ctx, input.Command)
	if err != nil {
		logger.Error("BookingCreationWorkflow failed", withTraceID(input.TraceID, "carId", input.Command.CarID, "error", err)...)
		return nil, err
	}
	if booking != nil {
		logger.Info("BookingCreationWorkflow completed", withTraceID(input.TraceID, "bookingId", booking.ID)...)
	} else {
		logger.Info("BookingCreationWorkflow completed", withTraceID(input.TraceID)...)
	}
	return booking, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
