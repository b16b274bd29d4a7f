package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/femisayo-autos/autoshop-api/internal/domains/rentals/domain"
	"github.com/femisayo-autos/autoshop-api/internal/domains/rentals/ports"
	"github.com/femisayo-autos/autoshop-api/internal/shared/auth"
)

const tracerName = "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/adapters/observability/service"

// Service decorates the rentals application port with tracing, logging,
// and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// AddCar registers a fleet car with instrumentation.
func (s *Service) AddCar(ctx context.Context, caller auth.Identity, input ports.AddCarInput) (*domain.RentalCar, error) {
	ctx, span := s.startSpan(ctx, "Service.AddCar", attribute.String("caller.role", string(caller.Role)))
	defer span.End()

	result, err := s.inner.AddCar(ctx, caller, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add rental car")
	}
	s.logInfo(ctx, "rental car added", slog.String("car.id", result.ID))
	return result, nil
}

// ListFleet returns every fleet car with instrumentation.
func (s *Service) ListFleet(ctx context.Context, caller auth.Identity) ([]*domain.RentalCar, error) {
	ctx, span := s.startSpan(ctx, "Service.ListFleet", attribute.String("caller.role", string(caller.Role)))
	defer span.End()

	result, err := s.inner.ListFleet(ctx, caller)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list fleet")
	}
	return result, nil
}

// ListAvailableCars returns bookable cars with instrumentation.
func (s *Service) ListAvailableCars(ctx context.Context, caller auth.Identity) ([]*domain.RentalCar, error) {
	ctx, span := s.startSpan(ctx, "Service.ListAvailableCars")
	defer span.End()

	result, err := s.inner.ListAvailableCars(ctx, caller)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list available cars")
	}
	return result, nil
}

// ToggleAvailability flips a car's availability with instrumentation.
func (s *Service) ToggleAvailability(ctx context.Context, caller auth.Identity, carID string) (*domain.RentalCar, error) {
	ctx, span := s.startSpan(ctx, "Service.ToggleAvailability", attribute.String("car.id", carID))
	defer span.End()

	result, err := s.inner.ToggleAvailability(ctx, caller, carID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to toggle car availability", slog.String("car.id", carID))
	}
	s.logInfo(ctx, "car availability toggled", slog.String("car.id", result.ID), slog.Bool("available", result.Available))
	return result, nil
}

// CreateBooking reserves a car with instrumentation.
func (s *Service) CreateBooking(ctx context.Context, input ports.CreateBookingInput) (*domain.RentalBooking, error) {
	ctx, span := s.startSpan(ctx, "Service.CreateBooking", attribute.String("car.id", input.CarID))
	defer span.End()

	result, err := s.inner.CreateBooking(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create booking", slog.String("car.id", input.CarID))
	}
	s.metrics.recordBookingCreated(ctx)
	s.logInfo(ctx, "booking created",
		slog.String("booking.id", result.ID),
		slog.String("car.id", result.CarID),
		slog.Float64("total", result.TotalAmount),
	)
	return result, nil
}

// ListBookings returns visible bookings with instrumentation.
func (s *Service) ListBookings(ctx context.Context, caller auth.Identity) ([]*domain.RentalBooking, error) {
	ctx, span := s.startSpan(ctx, "Service.ListBookings", attribute.String("caller.role", string(caller.Role)))
	defer span.End()

	result, err := s.inner.ListBookings(ctx, caller)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list bookings")
	}
	return result, nil
}

// UpdateBookingStatus applies a lifecycle move with instrumentation.
func (s *Service) UpdateBookingStatus(ctx context.Context, caller auth.Identity, bookingID, newStatus string) (*domain.RentalBooking, error) {
	ctx, span := s.startSpan(ctx, "Service.UpdateBookingStatus",
		attribute.String("booking.id", bookingID),
		attribute.String("booking.status", newStatus),
	)
	defer span.End()

	result, err := s.inner.UpdateBookingStatus(ctx, caller, bookingID, newStatus)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update booking status", slog.String("booking.id", bookingID))
	}
	s.metrics.recordBookingTransition(ctx, result.Status)
	s.logInfo(ctx, "booking status updated", slog.String("booking.id", result.ID), slog.String("status", string(result.Status)))
	return result, nil
}

var _ ports.Service = (*Service)(nil)

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
	return err
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	bookingsCreated    metric.Int64Counter
	bookingTransitions metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("rentals.bookings.created")
	transitions, _ := m.Int64Counter("rentals.bookings.transitions")
	return serviceMetrics{bookingsCreated: created, bookingTransitions: transitions}
}

func (m serviceMetrics) recordBookingCreated(ctx context.Context) {
	if m.bookingsCreated == nil {
		return
	}
	m.bookingsCreated.Add(ctx, 1)
}

func (m serviceMetrics) recordBookingTransition(ctx context.Context, status domain.BookingStatus) {
	if m.bookingTransitions == nil {
		return
	}
	m.bookingTransitions.Add(ctx, 1, metric.WithAttributes(attribute.String("status", string(status))))
}
