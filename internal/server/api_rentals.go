package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	rentalsapp "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/application"
	rentalsdomain "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/domain"
	rentalsports "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/ports"
	"github.com/femisayo-autos/autoshop-api/internal/shared/auth"
)

// RentalsAPI implements the customer-facing rentals section.
type RentalsAPI struct {
	service   rentalsports.Service
	workflows rentalsports.BookingOrchestrator
}

// NewRentalsAPI wires dependencies. workflows may be nil; booking
// creation then runs inline through the service.
func NewRentalsAPI(service rentalsports.Service, workflows rentalsports.BookingOrchestrator) RentalsAPI {
	return RentalsAPI{service: service, workflows: workflows}
}

type createBookingRequest struct {
	CarID     string    `json:"carId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

type rentalCarResponse struct {
	ID           string    `json:"id"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	CarType      string    `json:"carType"`
	DailyRate    float64   `json:"dailyRate"`
	LicensePlate string    `json:"licensePlate"`
	Available    bool      `json:"available"`
	Features     []string  `json:"features"`
	CreatedAt    time.Time `json:"createdAt"`
}

type bookingResponse struct {
	ID          string    `json:"id"`
	CarID       string    `json:"carId"`
	CustomerID  string    `json:"customerId"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	TotalAmount float64   `json:"totalAmount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toRentalCarResponse(car *rentalsdomain.RentalCar) rentalCarResponse {
	features := car.Features
	if features == nil {
		features = []string{}
	}
	return rentalCarResponse{
		ID:           car.ID,
		Make:         car.Make,
		Model:        car.Model,
		Year:         car.Year,
		CarType:      car.CarType,
		DailyRate:    car.DailyRate,
		LicensePlate: car.LicensePlate,
		Available:    car.Available,
		Features:     features,
		CreatedAt:    car.CreatedAt,
	}
}

func toRentalCarResponses(cars []*rentalsdomain.RentalCar) []rentalCarResponse {
	result := make([]rentalCarResponse, 0, len(cars))
	for _, car := range cars {
		result = append(result, toRentalCarResponse(car))
	}
	return result
}

func toBookingResponse(booking *rentalsdomain.RentalBooking) bookingResponse {
	return bookingResponse{
		ID:          booking.ID,
		CarID:       booking.CarID,
		CustomerID:  booking.CustomerID,
		StartDate:   booking.StartDate,
		EndDate:     booking.EndDate,
		TotalAmount: booking.TotalAmount,
		Status:      string(booking.Status),
		CreatedAt:   booking.CreatedAt,
	}
}

func toBookingResponses(bookings []*rentalsdomain.RentalBooking) []bookingResponse {
	result := make([]bookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		result = append(result, toBookingResponse(booking))
	}
	return result
}

// Get /api/rental-cars
// List cars currently offered for booking
func (api *RentalsAPI) ListAvailableCars(c *gin.Context) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	cars, err := api.service.ListAvailableCars(c.Request.Context(), caller)
	if err != nil {
		respondRentalsError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRentalCarResponses(cars))
}

// Post /api/bookings
// Reserve a car
func (api *RentalsAPI) CreateBooking(c *gin.Context) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	var payload createBookingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := rentalsports.CreateBookingInput{
		Caller:    caller,
		CarID:     payload.CarID,
		StartDate: payload.StartDate,
		EndDate:   payload.EndDate,
	}
	booking, err := api.createBooking(c.Request.Context(), input)
	if err != nil {
		respondRentalsError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(booking))
}

func (api *RentalsAPI) createBooking(ctx context.Context, input rentalsports.CreateBookingInput) (*rentalsdomain.RentalBooking, error) {
	if api.workflows != nil {
		return api.workflows.CreateBooking(ctx, input)
	}
	return api.service.CreateBooking(ctx, input)
}

// Get /api/bookings
// List visible bookings
func (api *RentalsAPI) ListBookings(c *gin.Context) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	bookings, err := api.service.ListBookings(c.Request.Context(), caller)
	if err != nil {
		respondRentalsError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

// Patch /api/bookings/:bookingId/status
// Move a booking through its lifecycle
func (api *RentalsAPI) UpdateBookingStatus(c *gin.Context) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	bookingID := c.Param("bookingId")
	var payload updateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	booking, err := api.service.UpdateBookingStatus(c.Request.Context(), caller, bookingID, payload.Status)
	if err != nil {
		respondRentalsError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(booking))
}

func respondRentalsError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		respondError(c, http.StatusForbidden, err)
	case errors.Is(err, rentalsapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	case errors.Is(err, rentalsports.ErrCarNotFound), errors.Is(err, rentalsports.ErrBookingNotFound):
		respondError(c, http.StatusNotFound, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
