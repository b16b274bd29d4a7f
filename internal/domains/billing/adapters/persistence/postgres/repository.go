package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/femisayo-autos/autoshop-api/internal/domains/billing/domain"
	"github.com/femisayo-autos/autoshop-api/internal/domains/billing/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists invoices in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&invoiceRecord{})
	}
	return repo
}

// invoiceRecord maps the invoice read model to a relational table.
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

// Save inserts or updates an invoice.
func (r *Repository) Save(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, errors.New("invoice is nil")
	}
	record := toRecord(invoice)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"customer_id":  record.CustomerID,
				"job_order_id": record.JobOrderID,
				"description":  record.Description,
				"total":        record.Total,
				"status":       record.Status,
				"updated_at":   gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an invoice by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	var record invoiceRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrInvoiceNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all invoices, newest first.
func (r *Repository) List(ctx context.Context) ([]*domain.Invoice, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	var records []invoiceRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return toInvoices(records), nil
}

// ListByCustomer returns a customer's invoices, newest first.
func (r *Repository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Invoice, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	var records []invoiceRecord
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toInvoices(records), nil
}

// Summarize aggregates all invoices. NaN totals count as zero.
func (r *Repository) Summarize(ctx context.Context) (ports.Summary, error) {
	return r.summarize(ctx, r.db)
}

// SummarizeByCustomer aggregates one customer's invoices.
func (r *Repository) SummarizeByCustomer(ctx context.Context, customerID string) (ports.Summary, error) {
	if err := ensureDB(r.db); err != nil {
		return ports.Summary{}, err
	}
	return r.summarize(ctx, r.db.Where("customer_id = ?", customerID))
}

func (r *Repository) summarize(ctx context.Context, query *gorm.DB) (ports.Summary, error) {
	if err := ensureDB(r.db); err != nil {
		return ports.Summary{}, err
	}
	var summary ports.Summary
	if err := query.WithContext(ctx).Model(&invoiceRecord{}).
		Select("COUNT(*) AS count, COALESCE(SUM(NULLIF(total, 'NaN'::float8)), 0) AS total").
		Scan(&summary).Error; err != nil {
		return ports.Summary{}, err
	}
	return summary, nil
}

func ensureDB(db *gorm.DB) error {
	if db == nil {
		return errors.New("postgres billing repository not configured")
	}
	return nil
}

func toRecord(invoice *domain.Invoice) invoiceRecord {
	return invoiceRecord{
		ID:          invoice.ID,
		CustomerID:  invoice.CustomerID,
		JobOrderID:  invoice.JobOrderID,
		Description: invoice.Description,
		Total:       invoice.Total,
		Status:      invoice.Status,
		CreatedAt:   invoice.CreatedAt,
	}
}

func (r invoiceRecord) toDomain() *domain.Invoice {
	return &domain.Invoice{
		ID:          r.ID,
		CustomerID:  r.CustomerID,
		JobOrderID:  r.JobOrderID,
		Description: r.Description,
		Total:       r.Total,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
	}
}

func toInvoices(records []invoiceRecord) []*domain.Invoice {
	invoices := make([]*domain.Invoice, 0, len(records))
	for i := range records {
		invoices = append(invoices, records[i].toDomain())
	}
	return invoices
}
