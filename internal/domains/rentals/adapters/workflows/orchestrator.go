package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/femisayo-autos/autoshop-api/internal/domains/rentals/domain"
	"github.com/femisayo-autos/autoshop-api/internal/domains/rentals/ports"
	bookingworkflows "github.com/femisayo-autos/autoshop-api/internal/durable/temporal/workflows/bookings"
)

var (
	_ ports.BookingOrchestrator = (*TemporalBookingWorkflows)(nil)
	_ ports.BookingOrchestrator = (*InlineBookingWorkflows)(nil)
)

// TemporalBookingWorkflows starts booking workflows on a Temporal cluster.
type TemporalBookingWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalBookingWorkflows wires a Temporal client into the orchestrator.
func NewTemporalBookingWorkflows(c client.Client) *TemporalBookingWorkflows {
	return &TemporalBookingWorkflows{client: c, taskQueue: bookingworkflows.BookingCreationTaskQueue}
}

// CreateBooking starts the Temporal workflow that reserves a car.
func (o *TemporalBookingWorkflows) CreateBooking(ctx context.Context, input ports.CreateBookingInput) (*domain.RentalBooking, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal booking workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildBookingCreationWorkflowID(input, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		bookingworkflows.BookingCreationWorkflow,
		bookingworkflows.BookingCreationWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var booking domain.RentalBooking
			if err := existingRun.Get(ctx, &booking); err != nil {
				return nil, err
			}
			return &booking, nil
		}
		return nil, err
	}
	var booking domain.RentalBooking
	if err := run.Get(ctx, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// InlineBookingWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineBookingWorkflows struct {
	service ports.Service
}

// NewInlineBookingWorkflows wraps the rentals service for synchronous execution.
func NewInlineBookingWorkflows(service ports.Service) *InlineBookingWorkflows {
	return &InlineBookingWorkflows{service: service}
}

// CreateBooking delegates to the application service without durable orchestration.
func (o *InlineBookingWorkflows) CreateBooking(ctx context.Context, input ports.CreateBookingInput) (*domain.RentalBooking, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline booking workflows not configured")
	}
	return o.service.CreateBooking(ctx, input)
}

func buildBookingCreationWorkflowID(input ports.CreateBookingInput, traceComponent string) string {
	return fmt.Sprintf("booking-creation-%s-%s-%s", input.CarID, input.Caller.ID, traceComponent)
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
