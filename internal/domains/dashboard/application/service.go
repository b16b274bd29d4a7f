package application

import (
	"context"

	"github.com/femisayo-autos/autoshop-api/internal/domains/dashboard/ports"
	"github.com/femisayo-autos/autoshop-api/internal/shared/auth"
)

// Service computes dashboard aggregates from the other contexts' stores.
type Service struct {
	jobs     ports.JobOrderSource
	bookings ports.BookingSource
	invoices ports.InvoiceSource
}

// NewService wires the dashboard service with its data sources.
func NewService(jobs ports.JobOrderSource, bookings ports.BookingSource, invoices ports.InvoiceSource) *Service {
	return &Service{jobs: jobs, bookings: bookings, invoices: invoices}
}

// ComputeStats returns job, booking, and invoice aggregates. Admins see
// company-wide figures; customers see only their own rows. Empty stores
// yield zeros, never errors.
func (s *Service) ComputeStats(ctx context.Context, caller auth.Identity) (ports.Stats, error) {
	if err := caller.Require(auth.CapViewOwnRecords); err != nil {
		return ports.Stats{}, err
	}
	if caller.IsAdmin() {
		return s.computeAll(ctx)
	}
	return s.computeForCustomer(ctx, caller.ID)
}

func (s *Service) computeAll(ctx context.Context) (ports.Stats, error) {
	var stats ports.Stats
	jobs, err := s.jobs.CountAll(ctx)
	if err != nil {
		return ports.Stats{}, err
	}
	bookings, err := s.bookings.CountAll(ctx)
	if err != nil {
		return ports.Stats{}, err
	}
	summary, err := s.invoices.Summarize(ctx)
	if err != nil {
		return ports.Stats{}, err
	}
	stats.ActiveJobs = jobs
	stats.Bookings = bookings
	stats.Invoices = summary.Count
	stats.TotalSpent = summary.Total
	return stats, nil
}

func (s *Service) computeForCustomer(ctx context.Context, customerID string) (ports.Stats, error) {
	var stats ports.Stats
	jobs, err := s.jobs.CountByCustomer(ctx, customerID)
	if err != nil {
		return ports.Stats{}, err
	}
	bookings, err := s.bookings.CountByCustomer(ctx, customerID)
	if err != nil {
		return ports.Stats{}, err
	}
	summary, err := s.invoices.SummarizeByCustomer(ctx, customerID)
	if err != nil {
		return ports.Stats{}, err
	}
	stats.ActiveJobs = jobs
	stats.Bookings = bookings
	stats.Invoices = summary.Count
	stats.TotalSpent = summary.Total
	return stats, nil
}

var _ ports.Service = (*Service)(nil)
