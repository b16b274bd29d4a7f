package domain

import (
	"math"
	"time"
)

// Invoice is a read-model row. Invoices are produced by back-office
// tooling outside this API; the service only lists and aggregates them.
type Invoice struct {
	ID          string
	CustomerID  string
	JobOrderID  string
	Description string
	Total       float64
	Status      string
	CreatedAt   time.Time
}

// EffectiveTotal returns the amount an invoice contributes to spend
// aggregates. Missing or NaN totals count as zero.
func (i *Invoice) EffectiveTotal() float64 {
	if math.IsNaN(i.Total) {
		return 0
	}
	return i.Total
}
