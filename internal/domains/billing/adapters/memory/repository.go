package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/femisayo-autos/autoshop-api/internal/domains/billing/domain"
	"github.com/femisayo-autos/autoshop-api/internal/domains/billing/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory invoice persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	invoices map[string]*domain.Invoice
}

func NewRepository() *Repository {
	return &Repository{invoices: map[string]*domain.Invoice{}}
}

func (r *Repository) Save(_ context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	if invoice == nil {
		return nil, errors.New("invoice is nil")
	}
	clone := *invoice
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invoices[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	invoice, ok := r.invoices[id]
	if !ok {
		return nil, ports.ErrInvoiceNotFound
	}
	clone := *invoice
	return &clone, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Invoice, 0, len(r.invoices))
	for _, invoice := range r.invoices {
		clone := *invoice
		list = append(list, &clone)
	}
	sortInvoices(list)
	return list, nil
}

func (r *Repository) ListByCustomer(_ context.Context, customerID string) ([]*domain.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Invoice
	for _, invoice := range r.invoices {
		if invoice.CustomerID == customerID {
			clone := *invoice
			list = append(list, &clone)
		}
	}
	sortInvoices(list)
	return list, nil
}

func (r *Repository) Summarize(_ context.Context) (ports.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var summary ports.Summary
	for _, invoice := range r.invoices {
		summary.Count++
		summary.Total += invoice.EffectiveTotal()
	}
	return summary, nil
}

func (r *Repository) SummarizeByCustomer(_ context.Context, customerID string) (ports.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var summary ports.Summary
	for _, invoice := range r.invoices {
		if invoice.CustomerID != customerID {
			continue
		}
		summary.Count++
		summary.Total += invoice.EffectiveTotal()
	}
	return summary, nil
}

func sortInvoices(list []*domain.Invoice) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
