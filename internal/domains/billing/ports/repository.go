package ports

import (
	"context"
	"errors"

	"github.com/femisayo-autos/autoshop-api/internal/domains/billing/domain"
)

var ErrInvoiceNotFound = errors.New("invoice not found")

// Summary aggregates invoices for dashboard cards.
type Summary struct {
	Count int64
	Total float64
}

// Repository persists invoices. List results are ordered newest first.
type Repository interface {
	Save(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error)
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	List(ctx context.Context) ([]*domain.Invoice, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Invoice, error)
	Summarize(ctx context.Context) (Summary, error)
	SummarizeByCustomer(ctx context.Context, customerID string) (Summary, error)
}
