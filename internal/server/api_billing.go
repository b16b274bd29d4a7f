package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	billingdomain "github.com/femisayo-autos/autoshop-api/internal/domains/billing/domain"
	billingports "github.com/femisayo-autos/autoshop-api/internal/domains/billing/ports"
	"github.com/femisayo-autos/autoshop-api/internal/shared/auth"
)

// BillingAPI serves the invoice read model.
type BillingAPI struct {
	service billingports.Service
}

// NewBillingAPI wires dependencies.
func NewBillingAPI(service billingports.Service) BillingAPI {
	return BillingAPI{service: service}
}

type invoiceResponse struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customerId"`
	JobOrderID  string    `json:"jobOrderId,omitempty"`
	Description string    `json:"description,omitempty"`
	Total       float64   `json:"total"`
	Status      string    `json:"status,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toInvoiceResponses(invoices []*billingdomain.Invoice) []invoiceResponse {
	result := make([]invoiceResponse, 0, len(invoices))
	for _, invoice := range invoices {
		result = append(result, invoiceResponse{
			ID:          invoice.ID,
			CustomerID:  invoice.CustomerID,
			JobOrderID:  invoice.JobOrderID,
			Description: invoice.Description,
			Total:       invoice.EffectiveTotal(),
			Status:      invoice.Status,
			CreatedAt:   invoice.CreatedAt,
		})
	}
	return result
}

// Get /api/invoices
// List visible invoices
func (api *BillingAPI) ListInvoices(c *gin.Context) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	invoices, err := api.service.ListInvoices(c.Request.Context(), caller)
	if err != nil {
		respondBillingError(c, err)
		return
	}
	c.JSON(http.StatusOK, toInvoiceResponses(invoices))
}

func respondBillingError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		respondError(c, http.StatusForbidden, err)
	case errors.Is(err, billingports.ErrInvoiceNotFound):
		respondError(c, http.StatusNotFound, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
