package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/femisayo-autos/autoshop-api/internal/domains/workshop/domain"
	"github.com/femisayo-autos/autoshop-api/internal/domains/workshop/ports"
	"github.com/femisayo-autos/autoshop-api/internal/shared/auth"
)

// Service orchestrates the workshop bounded context use cases.
type Service struct {
	vehicles ports.VehicleRepository
	jobs     ports.JobOrderRepository
}

// NewService wires the workshop service with its repositories.
func NewService(vehicles ports.VehicleRepository, jobs ports.JobOrderRepository) *Service {
	return &Service{vehicles: vehicles, jobs: jobs}
}

// RegisterVehicle stores a vehicle. Customers may only register their
// own; admins may register on behalf of any customer.
func (s *Service) RegisterVehicle(ctx context.Context, caller auth.Identity, input ports.RegisterVehicleInput) (*domain.Vehicle, error) {
	if err := caller.Require(auth.CapRegisterVehicle); err != nil {
		return nil, err
	}
	ownerID := input.CustomerID
	if ownerID == "" || !caller.IsAdmin() {
		ownerID = caller.ID
	}
	vehicle, err := domain.NewVehicle(uuid.NewString(), ownerID, input.Make, input.Model, input.Year, input.LicensePlate)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.vehicles.Save(ctx, vehicle)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// ListVehicles returns the caller's vehicles; admins see the whole book.
func (s *Service) ListVehicles(ctx context.Context, caller auth.Identity) ([]*domain.Vehicle, error) {
	if err := caller.Require(auth.CapViewOwnRecords); err != nil {
		return nil, err
	}
	if caller.IsAdmin() {
		return s.vehicles.List(ctx)
	}
	return s.vehicles.ListByCustomer(ctx, caller.ID)
}

// CreateJobOrder registers a repair request for an existing vehicle.
// The job is attributed to the vehicle's owner so an admin submitting at
// the counter still produces a customer-scoped row.
func (s *Service) CreateJobOrder(ctx context.Context, caller auth.Identity, vehicleID, description string) (*domain.JobOrder, error) {
	if err := caller.Require(auth.CapCreateJobOrder); err != nil {
		return nil, err
	}
	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		// A dangling vehicle reference is a caller mistake, not a 404.
		return nil, mapError(err)
	}
	if !caller.IsAdmin() && !caller.Owns(vehicle.CustomerID) {
		return nil, auth.ErrUnauthorized
	}
	job, err := domain.NewJobOrder(uuid.NewString(), vehicle.ID, vehicle.CustomerID, description)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.jobs.Save(ctx, job)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// ListJobOrders returns jobs visible to the caller, newest first. The
// optional status filter mirrors the staff job board.
func (s *Service) ListJobOrders(ctx context.Context, caller auth.Identity, statusFilter string) ([]*domain.JobOrder, error) {
	if caller.IsAdmin() {
		if err := caller.Require(auth.CapViewAllJobOrders); err != nil {
			return nil, err
		}
		var status domain.Status
		if statusFilter != "" {
			parsed, err := domain.ParseStatus(statusFilter)
			if err != nil {
				return nil, mapError(err)
			}
			status = parsed
		}
		return s.jobs.List(ctx, status)
	}
	if err := caller.Require(auth.CapViewOwnRecords); err != nil {
		return nil, err
	}
	return s.jobs.ListByCustomer(ctx, caller.ID)
}

// UpdateJobStatus applies a staff-initiated lifecycle move.
func (s *Service) UpdateJobStatus(ctx context.Context, caller auth.Identity, jobID, newStatus string) (*domain.JobOrder, error) {
	if err := caller.Require(auth.CapUpdateJobStatus); err != nil {
		return nil, err
	}
	status, err := domain.ParseStatus(newStatus)
	if err != nil {
		return nil, mapError(err)
	}
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := job.Transition(status); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.jobs.Save(ctx, job)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

var _ ports.Service = (*Service)(nil)
