// Package migrations owns the relational schema for every bounded
// context so the adapters do not need per-adapter automigrate calls.
package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for all collections used by the application.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&profileRecord{},
		&sessionRecord{},
		&vehicleRecord{},
		&jobOrderRecord{},
		&rentalCarRecord{},
		&rentalBookingRecord{},
		&invoiceRecord{},
	)
}

// Profile schema mirrors the identity Postgres adapter.
type profileRecord struct {
	ID           string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	FullName     string    `gorm:"column:full_name"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role;type:varchar(16);index"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (profileRecord) TableName() string { return "profiles" }

// Session schema mirrors the identity session store.
type sessionRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	ProfileID string     `gorm:"column:profile_id;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at;index"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

// Vehicle schema mirrors the workshop Postgres adapter.
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

// Job order schema mirrors the workshop Postgres adapter.
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

// Rental car schema mirrors the rentals Postgres adapter.
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

// Rental booking schema mirrors the rentals Postgres adapter.
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

// Invoice schema mirrors the billing Postgres adapter.
type invoiceRecord struct {
	ID          string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	CustomerID  string    `gorm:"column:customer_id;index"`
	JobOrderID  string    `gorm:"column:job_order_id;index"`
	Description string    `gorm:"column:description"`
	Total       float64   `gorm:"column:total"`
	Status      string    `gorm:"column:status;type:varchar(32)"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (invoiceRecord) TableName() string { return "invoices" }
