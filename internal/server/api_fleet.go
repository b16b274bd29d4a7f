package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	rentalsports "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/ports"
)

// FleetAPI implements the staff-facing fleet management section.
type FleetAPI struct {
	service rentalsports.Service
}

// NewFleetAPI wires dependencies.
func NewFleetAPI(service rentalsports.Service) FleetAPI {
	return FleetAPI{service: service}
}

type addCarRequest struct {
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	CarType      string   `json:"carType"`
	DailyRate    float64  `json:"dailyRate"`
	LicensePlate string   `json:"licensePlate"`
	Features     []string `json:"features"`
}

// Post /api/fleet/cars
// Add a car to the rental fleet
func (api *FleetAPI) AddCar(c *gin.Context) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	var payload addCarRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := rentalsports.AddCarInput{
		Make:         payload.Make,
		Model:        payload.Model,
		Year:         payload.Year,
		CarType:      payload.CarType,
		DailyRate:    payload.DailyRate,
		LicensePlate: payload.LicensePlate,
		Features:     payload.Features,
	}
	car, err := api.service.AddCar(c.Request.Context(), caller, input)
	if err != nil {
		respondRentalsError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toRentalCarResponse(car))
}

// Get /api/fleet/cars
// List the whole fleet, available or not
func (api *FleetAPI) ListFleet(c *gin.Context) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	cars, err := api.service.ListFleet(c.Request.Context(), caller)
	if err != nil {
		respondRentalsError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRentalCarResponses(cars))
}

// Patch /api/fleet/cars/:carId/availability
// Flip whether a car accepts new bookings
func (api *FleetAPI) ToggleAvailability(c *gin.Context) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	car, err := api.service.ToggleAvailability(c.Request.Context(), caller, c.Param("carId"))
	if err != nil {
		respondRentalsError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRentalCarResponse(car))
}
