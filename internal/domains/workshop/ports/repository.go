package ports

import (
	"context"
	"errors"

	"github.com/femisayo-autos/autoshop-api/internal/domains/workshop/domain"
)

var (
	ErrVehicleNotFound  = errors.New("vehicle not found")
	ErrJobOrderNotFound = errors.New("job order not found")
)

// VehicleRepository persists customer vehicles.
type VehicleRepository interface {
	Save(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Vehicle, error)
	List(ctx context.Context) ([]*domain.Vehicle, error)
}

// JobOrderRepository persists repair job orders. List results are
// ordered newest first, matching the screens that consume them.
type JobOrderRepository interface {
	Save(ctx context.Context, job *domain.JobOrder) (*domain.JobOrder, error)
	GetByID(ctx context.Context, id string) (*domain.JobOrder, error)
	List(ctx context.Context, status domain.Status) ([]*domain.JobOrder, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.JobOrder, error)
	CountAll(ctx context.Context) (int64, error)
	CountByCustomer(ctx context.Context, customerID string) (int64, error)
}
