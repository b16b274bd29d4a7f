package ports

import (
	"context"

	billingports "github.com/femisayo-autos/autoshop-api/internal/domains/billing/ports"
	"github.com/femisayo-autos/autoshop-api/internal/shared/auth"
)

// Stats is the card row at the top of the dashboard screen.
type Stats struct {
	ActiveJobs int64   `json:"activeJobs"`
	Bookings   int64   `json:"bookings"`
	Invoices   int64   `json:"invoices"`
	TotalSpent float64 `json:"totalSpent"`
}

// JobOrderSource counts job orders. Satisfied by the workshop repositories.
type JobOrderSource interface {
	CountAll(ctx context.Context) (int64, error)
	CountByCustomer(ctx context.Context, customerID string) (int64, error)
}

// BookingSource counts bookings. Satisfied by the rentals repositories.
type BookingSource interface {
	CountAll(ctx context.Context) (int64, error)
	CountByCustomer(ctx context.Context, customerID string) (int64, error)
}

// InvoiceSource aggregates invoices. Satisfied by the billing repositories.
type InvoiceSource interface {
	Summarize(ctx context.Context) (billingports.Summary, error)
	SummarizeByCustomer(ctx context.Context, customerID string) (billingports.Summary, error)
}

// Service aggregates counts across bounded contexts.
type Service interface {
	ComputeStats(ctx context.Context, caller auth.Identity) (Stats, error)
}
