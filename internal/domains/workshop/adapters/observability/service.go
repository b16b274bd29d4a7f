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

	"github.com/femisayo-autos/autoshop-api/internal/domains/workshop/domain"
	"github.com/femisayo-autos/autoshop-api/internal/domains/workshop/ports"
	"github.com/femisayo-autos/autoshop-api/internal/shared/auth"
)

const tracerName = "github.com/femisayo-autos/autoshop-api/internal/domains/workshop/adapters/observability/service"

// Service decorates the workshop application port with tracing, logging,
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

// RegisterVehicle stores a vehicle with instrumentation.
func (s *Service) RegisterVehicle(ctx context.Context, caller auth.Identity, input ports.RegisterVehicleInput) (*domain.Vehicle, error) {
	ctx, span := s.startSpan(ctx, "Service.RegisterVehicle", attribute.String("caller.role", string(caller.Role)))
	defer span.End()

	result, err := s.inner.RegisterVehicle(ctx, caller, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register vehicle")
	}
	s.logInfo(ctx, "vehicle registered", slog.String("vehicle.id", result.ID))
	return result, nil
}

// ListVehicles returns the caller's vehicles with instrumentation.
func (s *Service) ListVehicles(ctx context.Context, caller auth.Identity) ([]*domain.Vehicle, error) {
	ctx, span := s.startSpan(ctx, "Service.ListVehicles", attribute.String("caller.role", string(caller.Role)))
	defer span.End()

	result, err := s.inner.ListVehicles(ctx, caller)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list vehicles")
	}
	return result, nil
}

// CreateJobOrder registers a repair request with instrumentation.
func (s *Service) CreateJobOrder(ctx context.Context, caller auth.Identity, vehicleID, description string) (*domain.JobOrder, error) {
	ctx, span := s.startSpan(ctx, "Service.CreateJobOrder", attribute.String("vehicle.id", vehicleID))
	defer span.End()

	result, err := s.inner.CreateJobOrder(ctx, caller, vehicleID, description)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create job order", slog.String("vehicle.id", vehicleID))
	}
	s.metrics.recordJobCreated(ctx)
	s.logInfo(ctx, "job order created", slog.String("job.id", result.ID), slog.String("status", string(result.Status)))
	return result, nil
}

// ListJobOrders returns visible jobs with instrumentation.
func (s *Service) ListJobOrders(ctx context.Context, caller auth.Identity, statusFilter string) ([]*domain.JobOrder, error) {
	ctx, span := s.startSpan(ctx, "Service.ListJobOrders", attribute.String("filter.status", statusFilter))
	defer span.End()

	result, err := s.inner.ListJobOrders(ctx, caller, statusFilter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list job orders")
	}
	return result, nil
}

// UpdateJobStatus applies a lifecycle move with instrumentation.
func (s *Service) UpdateJobStatus(ctx context.Context, caller auth.Identity, jobID, newStatus string) (*domain.JobOrder, error) {
	ctx, span := s.startSpan(ctx, "Service.UpdateJobStatus",
		attribute.String("job.id", jobID),
		attribute.String("job.status", newStatus),
	)
	defer span.End()

	result, err := s.inner.UpdateJobStatus(ctx, caller, jobID, newStatus)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update job status", slog.String("job.id", jobID))
	}
	s.metrics.recordJobTransition(ctx, result.Status)
	s.logInfo(ctx, "job status updated", slog.String("job.id", result.ID), slog.String("status", string(result.Status)))
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
	jobsCreated    metric.Int64Counter
	jobTransitions metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("workshop.jobs.created")
	transitions, _ := m.Int64Counter("workshop.jobs.transitions")
	return serviceMetrics{jobsCreated: created, jobTransitions: transitions}
}

func (m serviceMetrics) recordJobCreated(ctx context.Context) {
	if m.jobsCreated == nil {
		return
	}
	m.jobsCreated.Add(ctx, 1)
}

func (m serviceMetrics) recordJobTransition(ctx context.Context, status domain.Status) {
	if m.jobTransitions == nil {
		return
	}
	m.jobTransitions.Add(ctx, 1, metric.WithAttributes(attribute.String("status", string(status))))
}
