package ports

import (
	"context"

	"github.com/femisayo-autos/autoshop-api/internal/domains/billing/domain"
	"github.com/femisayo-autos/autoshop-api/internal/shared/auth"
)

// Service exposes the billing read model.
type Service interface {
	ListInvoices(ctx context.Context, caller auth.Identity) ([]*domain.Invoice, error)
}
