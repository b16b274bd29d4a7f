package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/femisayo-autos/autoshop-api/internal/domains/rentals/domain"
	"github.com/femisayo-autos/autoshop-api/internal/domains/rentals/ports"
)

var (
	_ ports.CarRepository     = (*CarRepository)(nil)
	_ ports.BookingRepository = (*BookingRepository)(nil)
)

// activeBookingStatuses are the statuses that still hold a car.
var activeBookingStatuses = []string{
	string(domain.BookingPending),
	string(domain.BookingConfirmed),
	string(domain.BookingInProgress),
}

// CarRepository persists the rental fleet in PostgreSQL using GORM.
type CarRepository struct {
	db *gorm.DB
}

// NewCarRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewCarRepository(db *gorm.DB) *CarRepository {
	repo := &CarRepository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&rentalCarRecord{})
	}
	return repo
}

// rentalCarRecord maps the fleet car aggregate to a relational table.
// Features uses a native text[] column instead of a join table.
type rentalCarRecord struct {
	ID           string         `gorm:"primaryKey;column:id;type:varchar(64)"`
	Make         string         `gorm:"column:make"`
	Model        string         `gorm:"column:model"`
	Year         int            `gorm:"column:year"`
	CarType      string         `gorm:"column:car_type"`
	DailyRate    float64        `gorm:"column:daily_rate"`
	LicensePlate string         `gorm:"column:license_plate"`
	Available    bool           `gorm:"column:available;index"`
	Features     pq.StringArray `gorm:"column:features;type:text[]"`
	CreatedAt    time.Time      `gorm:"column:created_at;index"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
}

func (rentalCarRecord) TableName() string { return "rental_cars" }

// Save inserts or updates a fleet car.
func (r *CarRepository) Save(ctx context.Context, car *domain.RentalCar) (*domain.RentalCar, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	if car == nil {
		return nil, errors.New("rental car is nil")
	}
	record := toCarRecord(car)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"make":          record.Make,
				"model":         record.Model,
				"year":          record.Year,
				"car_type":      record.CarType,
				"daily_rate":    record.DailyRate,
				"license_plate": record.LicensePlate,
				"available":     record.Available,
				"features":      record.Features,
				"updated_at":    gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a fleet car by identifier.
func (r *CarRepository) GetByID(ctx context.Context, id string) (*domain.RentalCar, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	var record rentalCarRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrCarNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// ListAvailable returns cars currently offered for booking, newest first.
func (r *CarRepository) ListAvailable(ctx context.Context) ([]*domain.RentalCar, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	var records []rentalCarRecord
	if err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toCars(records), nil
}

// List returns the whole fleet, newest first.
func (r *CarRepository) List(ctx context.Context) ([]*domain.RentalCar, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	var records []rentalCarRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return toCars(records), nil
}

// BookingRepository persists rental bookings in PostgreSQL using GORM.
type BookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewBookingRepository(db *gorm.DB) *BookingRepository {
	repo := &BookingRepository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&rentalBookingRecord{})
	}
	return repo
}

// rentalBookingRecord maps the booking aggregate to a relational table.
type rentalBookingRecord struct {
	ID          string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	CarID       string    `gorm:"column:car_id;index:idx_rental_bookings_car_status"`
	CustomerID  string    `gorm:"column:customer_id;index"`
	StartDate   time.Time `gorm:"column:start_date"`
	EndDate     time.Time `gorm:"column:end_date"`
	TotalAmount float64   `gorm:"column:total_amount"`
	Status      string    `gorm:"column:status;type:varchar(32);index:idx_rental_bookings_car_status"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (rentalBookingRecord) TableName() string { return "rental_bookings" }

// Save inserts or updates a booking.
func (r *BookingRepository) Save(ctx context.Context, booking *domain.RentalBooking) (*domain.RentalBooking, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, errors.New("rental booking is nil")
	}
	record := toBookingRecord(booking)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"car_id":       record.CarID,
				"customer_id":  record.CustomerID,
				"start_date":   record.StartDate,
				"end_date":     record.EndDate,
				"total_amount": record.TotalAmount,
				"status":       record.Status,
				"updated_at":   gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a booking by identifier.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.RentalBooking, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	var record rentalBookingRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrBookingNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all bookings, newest first.
func (r *BookingRepository) List(ctx context.Context) ([]*domain.RentalBooking, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	var records []rentalBookingRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return toBookings(records), nil
}

// ListByCustomer returns a customer's bookings, newest first.
func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.RentalBooking, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	var records []rentalBookingRecord
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toBookings(records), nil
}

// FindActiveOverlapping returns non-cancelled, non-completed bookings for
// the car whose [start, end) range intersects the given one.
func (r *BookingRepository) FindActiveOverlapping(ctx context.Context, carID string, start, end time.Time) ([]*domain.RentalBooking, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	var records []rentalBookingRecord
	if err := r.db.WithContext(ctx).
		Where("car_id = ?", carID).
		Where("status IN ?", activeBookingStatuses).
		Where("start_date < ? AND end_date > ?", end, start).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toBookings(records), nil
}

// CountAll returns the number of bookings across all customers.
func (r *BookingRepository) CountAll(ctx context.Context) (int64, error) {
	if err := ensureDB(r.db); err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&rentalBookingRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByCustomer returns the number of bookings for one customer.
func (r *BookingRepository) CountByCustomer(ctx context.Context, customerID string) (int64, error) {
	if err := ensureDB(r.db); err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&rentalBookingRecord{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func ensureDB(db *gorm.DB) error {
	if db == nil {
		return errors.New("postgres rentals repository not configured")
	}
	return nil
}

func toCarRecord(car *domain.RentalCar) rentalCarRecord {
	return rentalCarRecord{
		ID:           car.ID,
		Make:         car.Make,
		Model:        car.Model,
		Year:         car.Year,
		CarType:      car.CarType,
		DailyRate:    car.DailyRate,
		LicensePlate: car.LicensePlate,
		Available:    car.Available,
		Features:     pq.StringArray(car.Features),
		CreatedAt:    car.CreatedAt,
	}
}

func (r rentalCarRecord) toDomain() *domain.RentalCar {
	return &domain.RentalCar{
		ID:           r.ID,
		Make:         r.Make,
		Model:        r.Model,
		Year:         r.Year,
		CarType:      r.CarType,
		DailyRate:    r.DailyRate,
		LicensePlate: r.LicensePlate,
		Available:    r.Available,
		Features:     []string(r.Features),
		CreatedAt:    r.CreatedAt,
	}
}

func toCars(records []rentalCarRecord) []*domain.RentalCar {
	cars := make([]*domain.RentalCar, 0, len(records))
	for i := range records {
		cars = append(cars, records[i].toDomain())
	}
	return cars
}

func toBookingRecord(booking *domain.RentalBooking) rentalBookingRecord {
	return rentalBookingRecord{
		ID:          booking.ID,
		CarID:       booking.CarID,
		CustomerID:  booking.CustomerID,
		StartDate:   booking.StartDate,
		EndDate:     booking.EndDate,
		TotalAmount: booking.TotalAmount,
		Status:      string(booking.Status),
		CreatedAt:   booking.CreatedAt,
	}
}

func (r rentalBookingRecord) toDomain() *domain.RentalBooking {
	return &domain.RentalBooking{
		ID:          r.ID,
		CarID:       r.CarID,
		CustomerID:  r.CustomerID,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		TotalAmount: r.TotalAmount,
		Status:      domain.BookingStatus(r.Status),
		CreatedAt:   r.CreatedAt,
	}
}

func toBookings(records []rentalBookingRecord) []*domain.RentalBooking {
	bookings := make([]*domain.RentalBooking, 0, len(records))
	for i := range records {
		bookings = append(bookings, records[i].toDomain())
	}
	return bookings
}
