package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	workshopapp "github.com/femisayo-autos/autoshop-api/internal/domains/workshop/application"
	workshopdomain "github.com/femisayo-autos/autoshop-api/internal/domains/workshop/domain"
	workshopports "github.com/femisayo-autos/autoshop-api/internal/domains/workshop/ports"
	"github.com/femisayo-autos/autoshop-api/internal/shared/auth"
)

// WorkshopAPI implements the repair-services section: vehicles and
// job orders.
type WorkshopAPI struct {
	service workshopports.Service
}

// NewWorkshopAPI wires dependencies.
func NewWorkshopAPI(service workshopports.Service) WorkshopAPI {
	return WorkshopAPI{service: service}
}

type registerVehicleRequest struct {
	CustomerID   string `json:"customerId"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	LicensePlate string `json:"licensePlate"`
}

type vehicleResponse struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customerId"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	LicensePlate string    `json:"licensePlate"`
	CreatedAt    time.Time `json:"createdAt"`
}

type createJobOrderRequest struct {
	VehicleID   string `json:"vehicleId"`
	Description string `json:"description"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type jobOrderResponse struct {
	ID          string    `json:"id"`
	VehicleID   string    `json:"vehicleId"`
	CustomerID  string    `json:"customerId"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toVehicleResponse(vehicle *workshopdomain.Vehicle) vehicleResponse {
	return vehicleResponse{
		ID:           vehicle.ID,
		CustomerID:   vehicle.CustomerID,
		Make:         vehicle.Make,
		Model:        vehicle.Model,
		Year:         vehicle.Year,
		LicensePlate: vehicle.LicensePlate,
		CreatedAt:    vehicle.CreatedAt,
	}
}

func toVehicleResponses(vehicles []*workshopdomain.Vehicle) []vehicleResponse {
	result := make([]vehicleResponse, 0, len(vehicles))
	for _, vehicle := range vehicles {
		result = append(result, toVehicleResponse(vehicle))
	}
	return result
}

func toJobOrderResponse(job *workshopdomain.JobOrder) jobOrderResponse {
	return jobOrderResponse{
		ID:          job.ID,
		VehicleID:   job.VehicleID,
		CustomerID:  job.CustomerID,
		Description: job.Description,
		Status:      string(job.Status),
		CreatedAt:   job.CreatedAt,
	}
}

func toJobOrderResponses(jobs []*workshopdomain.JobOrder) []jobOrderResponse {
	result := make([]jobOrderResponse, 0, len(jobs))
	for _, job := range jobs {
		result = append(result, toJobOrderResponse(job))
	}
	return result
}

// Post /api/vehicles
// Register a vehicle
func (api *WorkshopAPI) RegisterVehicle(c *gin.Context) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	var payload registerVehicleRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := workshopports.RegisterVehicleInput{
		CustomerID:   payload.CustomerID,
		Make:         payload.Make,
		Model:        payload.Model,
		Year:         payload.Year,
		LicensePlate: payload.LicensePlate,
	}
	vehicle, err := api.service.RegisterVehicle(c.Request.Context(), caller, input)
	if err != nil {
		respondWorkshopError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toVehicleResponse(vehicle))
}

// Get /api/vehicles
// List the caller's vehicles
func (api *WorkshopAPI) ListVehicles(c *gin.Context) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	vehicles, err := api.service.ListVehicles(c.Request.Context(), caller)
	if err != nil {
		respondWorkshopError(c, err)
		return
	}
	c.JSON(http.StatusOK, toVehicleResponses(vehicles))
}

// Post /api/jobs
// Submit a repair request
func (api *WorkshopAPI) CreateJobOrder(c *gin.Context) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	var payload createJobOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	job, err := api.service.CreateJobOrder(c.Request.Context(), caller, payload.VehicleID, payload.Description)
	if err != nil {
		respondWorkshopError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toJobOrderResponse(job))
}

// Get /api/jobs
// List visible job orders, optionally filtered by status
func (api *WorkshopAPI) ListJobOrders(c *gin.Context) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	jobs, err := api.service.ListJobOrders(c.Request.Context(), caller, c.Query("status"))
	if err != nil {
		respondWorkshopError(c, err)
		return
	}
	c.JSON(http.StatusOK, toJobOrderResponses(jobs))
}

// Patch /api/jobs/:jobId/status
// Move a job order through its lifecycle
func (api *WorkshopAPI) UpdateJobStatus(c *gin.Context) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	jobID := c.Param("jobId")
	var payload updateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	job, err := api.service.UpdateJobStatus(c.Request.Context(), caller, jobID, payload.Status)
	if err != nil {
		respondWorkshopError(c, err)
		return
	}
	c.JSON(http.StatusOK, toJobOrderResponse(job))
}

func respondWorkshopError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		respondError(c, http.StatusForbidden, err)
	case errors.Is(err, workshopapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	case errors.Is(err, workshopports.ErrVehicleNotFound), errors.Is(err, workshopports.ErrJobOrderNotFound):
		respondError(c, http.StatusNotFound, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
