package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/femisayo-autos/autoshop-api/internal/domains/workshop/domain"
	"github.com/femisayo-autos/autoshop-api/internal/domains/workshop/ports"
)

var (
	_ ports.VehicleRepository  = (*VehicleRepository)(nil)
	_ ports.JobOrderRepository = (*JobOrderRepository)(nil)
)

// VehicleRepository is an in-memory vehicle persistence adapter.
type VehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*domain.Vehicle
}

func NewVehicleRepository() *VehicleRepository {
	return &VehicleRepository{vehicles: map[string]*domain.Vehicle{}}
}

func (r *VehicleRepository) Save(_ context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	if vehicle == nil {
		return nil, errors.New("vehicle is nil")
	}
	clone := *vehicle
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vehicles[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *VehicleRepository) GetByID(_ context.Context, id string) (*domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	vehicle, ok := r.vehicles[id]
	if !ok {
		return nil, ports.ErrVehicleNotFound
	}
	clone := *vehicle
	return &clone, nil
}

func (r *VehicleRepository) ListByCustomer(_ context.Context, customerID string) ([]*domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Vehicle
	for _, vehicle := range r.vehicles {
		if vehicle.CustomerID == customerID {
			clone := *vehicle
			list = append(list, &clone)
		}
	}
	sortVehicles(list)
	return list, nil
}

func (r *VehicleRepository) List(_ context.Context) ([]*domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Vehicle, 0, len(r.vehicles))
	for _, vehicle := range r.vehicles {
		clone := *vehicle
		list = append(list, &clone)
	}
	sortVehicles(list)
	return list, nil
}

func sortVehicles(list []*domain.Vehicle) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}

// JobOrderRepository is an in-memory job order persistence adapter.
type JobOrderRepository struct {
	mu   sync.RWMutex
	jobs map[string]*domain.JobOrder
}

func NewJobOrderRepository() *JobOrderRepository {
	return &JobOrderRepository{jobs: map[string]*domain.JobOrder{}}
}

func (r *JobOrderRepository) Save(_ context.Context, job *domain.JobOrder) (*domain.JobOrder, error) {
	if job == nil {
		return nil, errors.New("job order is nil")
	}
	clone := *job
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *JobOrderRepository) GetByID(_ context.Context, id string) (*domain.JobOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, ports.ErrJobOrderNotFound
	}
	clone := *job
	return &clone, nil
}

func (r *JobOrderRepository) List(_ context.Context, status domain.Status) ([]*domain.JobOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.JobOrder
	for _, job := range r.jobs {
		if status != "" && job.Status != status {
			continue
		}
		clone := *job
		list = append(list, &clone)
	}
	sortJobs(list)
	return list, nil
}

func (r *JobOrderRepository) ListByCustomer(_ context.Context, customerID string) ([]*domain.JobOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.JobOrder
	for _, job := range r.jobs {
		if job.CustomerID == customerID {
			clone := *job
			list = append(list, &clone)
		}
	}
	sortJobs(list)
	return list, nil
}

func (r *JobOrderRepository) CountAll(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.jobs)), nil
}

func (r *JobOrderRepository) CountByCustomer(_ context.Context, customerID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, job := range r.jobs {
		if job.CustomerID == customerID {
			count++
		}
	}
	return count, nil
}

func sortJobs(list []*domain.JobOrder) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
