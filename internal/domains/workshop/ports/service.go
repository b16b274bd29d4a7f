package ports

import (
	"context"

	"github.com/femisayo-autos/autoshop-api/internal/domains/workshop/domain"
	"github.com/femisayo-autos/autoshop-api/internal/shared/auth"
)

// RegisterVehicleInput carries the fields needed to register a vehicle.
type RegisterVehicleInput struct {
	CustomerID   string
	Make         string
	Model        string
	Year         int
	LicensePlate string
}

// Service exposes the workshop bounded context use cases. Every method
// takes the authenticated caller so role and row scoping are enforced at
// this boundary rather than in the storage layer.
type Service interface {
	RegisterVehicle(ctx context.Context, caller auth.Identity, input RegisterVehicleInput) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context, caller auth.Identity) ([]*domain.Vehicle, error)
	CreateJobOrder(ctx context.Context, caller auth.Identity, vehicleID, description string) (*domain.JobOrder, error)
	ListJobOrders(ctx context.Context, caller auth.Identity, statusFilter string) ([]*domain.JobOrder, error)
	UpdateJobStatus(ctx context.Context, caller auth.Identity, jobID, newStatus string) (*domain.JobOrder, error)
}
