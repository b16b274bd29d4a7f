package application

import (
	"context"

	"github.com/femisayo-autos/autoshop-api/internal/domains/billing/domain"
	"github.com/femisayo-autos/autoshop-api/internal/domains/billing/ports"
	"github.com/femisayo-autos/autoshop-api/internal/shared/auth"
)

// Service serves the billing read model.
type Service struct {
	invoices ports.Repository
}

// NewService wires the billing service with its repository.
func NewService(invoices ports.Repository) *Service {
	return &Service{invoices: invoices}
}

// ListInvoices returns the caller's invoices, newest first; admins see
// every customer's invoices.
func (s *Service) ListInvoices(ctx context.Context, caller auth.Identity) ([]*domain.Invoice, error) {
	if caller.IsAdmin() {
		if err := caller.Require(auth.CapViewAllInvoices); err != nil {
			return nil, err
		}
		return s.invoices.List(ctx)
	}
	if err := caller.Require(auth.CapViewOwnRecords); err != nil {
		return nil, err
	}
	return s.invoices.ListByCustomer(ctx, caller.ID)
}

var _ ports.Service = (*Service)(nil)
