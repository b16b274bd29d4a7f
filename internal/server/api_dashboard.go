package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	dashboardports "github.com/femisayo-autos/autoshop-api/internal/domains/dashboard/ports"
	"github.com/femisayo-autos/autoshop-api/internal/shared/auth"
)

// DashboardAPI serves the aggregate cards on the landing screen.
type DashboardAPI struct {
	service dashboardports.Service
}

// NewDashboardAPI wires dependencies.
func NewDashboardAPI(service dashboardports.Service) DashboardAPI {
	return DashboardAPI{service: service}
}

// Get /api/dashboard/stats
// Aggregate counts and spend for the caller's scope
func (api *DashboardAPI) GetStats(c *gin.Context) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	stats, err := api.service.ComputeStats(c.Request.Context(), caller)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			respondError(c, http.StatusForbidden, err)
			return
		}
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
