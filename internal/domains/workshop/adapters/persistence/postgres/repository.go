package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/femisayo-autos/autoshop-api/internal/domains/workshop/domain"
	"github.com/femisayo-autos/autoshop-api/internal/domains/workshop/ports"
)

var (
	_ ports.VehicleRepository  = (*VehicleRepository)(nil)
	_ ports.JobOrderRepository = (*JobOrderRepository)(nil)
)

// VehicleRepository persists vehicles in PostgreSQL using GORM.
type VehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	repo := &VehicleRepository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&vehicleRecord{})
	}
	return repo
}

// vehicleRecord maps the vehicle aggregate to a relational table.
type vehicleRecord struct {
	ID           string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	CustomerID   string    `gorm:"column:customer_id;index"`
	Make         string    `gorm:"column:make"`
	Model        string    `gorm:"column:model"`
	Year         int       `gorm:"column:year"`
	LicensePlate string    `gorm:"column:license_plate"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (vehicleRecord) TableName() string { return "vehicles" }

// Save inserts or updates a vehicle.
func (r *VehicleRepository) Save(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, errors.New("vehicle is nil")
	}
	record := toVehicleRecord(vehicle)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"customer_id":   record.CustomerID,
				"make":          record.Make,
				"model":         record.Model,
				"year":          record.Year,
				"license_plate": record.LicensePlate,
				"updated_at":    gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a vehicle by identifier.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	var record vehicleRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrVehicleNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// ListByCustomer returns a customer's vehicles, newest first.
func (r *VehicleRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Vehicle, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	var records []vehicleRecord
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toVehicles(records), nil
}

// List returns all vehicles, newest first.
func (r *VehicleRepository) List(ctx context.Context) ([]*domain.Vehicle, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	var records []vehicleRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return toVehicles(records), nil
}

// JobOrderRepository persists job orders in PostgreSQL using GORM.
type JobOrderRepository struct {
	db *gorm.DB
}

// NewJobOrderRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewJobOrderRepository(db *gorm.DB) *JobOrderRepository {
	repo := &JobOrderRepository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&jobOrderRecord{})
	}
	return repo
}

// jobOrderRecord maps the job order aggregate to a relational table.
type jobOrderRecord struct {
	ID          string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	VehicleID   string    `gorm:"column:vehicle_id;index"`
	CustomerID  string    `gorm:"column:customer_id;index:idx_job_orders_customer_status"`
	Description string    `gorm:"column:description"`
	Status      string    `gorm:"column:status;type:varchar(32);index:idx_job_orders_customer_status"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (jobOrderRecord) TableName() string { return "job_orders" }

// Save inserts or updates a job order.
func (r *JobOrderRepository) Save(ctx context.Context, job *domain.JobOrder) (*domain.JobOrder, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	if job == nil {
		return nil, errors.New("job order is nil")
	}
	record := toJobOrderRecord(job)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"vehicle_id":  record.VehicleID,
				"customer_id": record.CustomerID,
				"description": record.Description,
				"status":      record.Status,
				"updated_at":  gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a job order by identifier.
func (r *JobOrderRepository) GetByID(ctx context.Context, id string) (*domain.JobOrder, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	var record jobOrderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrJobOrderNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all job orders, newest first, optionally filtered by status.
func (r *JobOrderRepository) List(ctx context.Context, status domain.Status) ([]*domain.JobOrder, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	var records []jobOrderRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return toJobOrders(records), nil
}

// ListByCustomer returns a customer's job orders, newest first.
func (r *JobOrderRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.JobOrder, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	var records []jobOrderRecord
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toJobOrders(records), nil
}

// CountAll returns the number of job orders across all customers.
func (r *JobOrderRepository) CountAll(ctx context.Context) (int64, error) {
	if err := ensureDB(r.db); err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&jobOrderRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByCustomer returns the number of job orders for one customer.
func (r *JobOrderRepository) CountByCustomer(ctx context.Context, customerID string) (int64, error) {
	if err := ensureDB(r.db); err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&jobOrderRecord{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func ensureDB(db *gorm.DB) error {
	if db == nil {
		return errors.New("postgres workshop repository not configured")
	}
	return nil
}

func toVehicleRecord(vehicle *domain.Vehicle) vehicleRecord {
	return vehicleRecord{
		ID:           vehicle.ID,
		CustomerID:   vehicle.CustomerID,
		Make:         vehicle.Make,
		Model:        vehicle.Model,
		Year:         vehicle.Year,
		LicensePlate: vehicle.LicensePlate,
		CreatedAt:    vehicle.CreatedAt,
	}
}

func (r vehicleRecord) toDomain() *domain.Vehicle {
	return &domain.Vehicle{
		ID:           r.ID,
		CustomerID:   r.CustomerID,
		Make:         r.Make,
		Model:        r.Model,
		Year:         r.Year,
		LicensePlate: r.LicensePlate,
		CreatedAt:    r.CreatedAt,
	}
}

func toVehicles(records []vehicleRecord) []*domain.Vehicle {
	vehicles := make([]*domain.Vehicle, 0, len(records))
	for i := range records {
		vehicles = append(vehicles, records[i].toDomain())
	}
	return vehicles
}

func toJobOrderRecord(job *domain.JobOrder) jobOrderRecord {
	return jobOrderRecord{
		ID:          job.ID,
		VehicleID:   job.VehicleID,
		CustomerID:  job.CustomerID,
		Description: job.Description,
		Status:      string(job.Status),
		CreatedAt:   job.CreatedAt,
	}
}

func (r jobOrderRecord) toDomain() *domain.JobOrder {
	return &domain.JobOrder{
		ID:          r.ID,
		VehicleID:   r.VehicleID,
		CustomerID:  r.CustomerID,
		Description: r.Description,
		Status:      domain.Status(r.Status),
		CreatedAt:   r.CreatedAt,
	}
}

func toJobOrders(records []jobOrderRecord) []*domain.JobOrder {
	jobs := make([]*domain.JobOrder, 0, len(records))
	for i := range records {
		jobs = append(jobs, records[i].toDomain())
	}
	return jobs
}
