// Package server is the gin transport for the autoshop API. Handlers
// are grouped per screen section, mirroring the pages that consume them.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route binds one HTTP operation to a handler.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	Secured     bool
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the per-section handler sets consumed by NewRouter.
type ApiHandleFunctions struct {
	AuthAPI      AuthAPI
	WorkshopAPI  WorkshopAPI
	RentalsAPI   RentalsAPI
	FleetAPI     FleetAPI
	BillingAPI   BillingAPI
	DashboardAPI DashboardAPI
}

// NewRouter returns a gin engine with all API routes registered. Secured
// routes run behind the bearer-token middleware.
func NewRouter(handlers ApiHandleFunctions, authn *AuthMiddleware) *gin.Engine {
	router := gin.Default()
	for _, route := range getRoutes(handlers) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		chain := make([]gin.HandlerFunc, 0, 2)
		if route.Secured && authn != nil {
			chain = append(chain, authn.Handler())
		}
		chain = append(chain, route.HandlerFunc)
		router.Handle(route.Method, route.Pattern, chain...)
	}
	return router
}

// DefaultHandleFunc answers unimplemented routes.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handlers ApiHandleFunctions) []Route {
	return []Route{
		{"SignUp", http.MethodPost, "/api/auth/signup", false, handlers.AuthAPI.SignUp},
		{"SignIn", http.MethodPost, "/api/auth/signin", false, handlers.AuthAPI.SignIn},
		{"SignOut", http.MethodPost, "/api/auth/signout", true, handlers.AuthAPI.SignOut},
		{"GetProfile", http.MethodGet, "/api/profile", true, handlers.AuthAPI.GetProfile},

		{"RegisterVehicle", http.MethodPost, "/api/vehicles", true, handlers.WorkshopAPI.RegisterVehicle},
		{"ListVehicles", http.MethodGet, "/api/vehicles", true, handlers.WorkshopAPI.ListVehicles},
		{"CreateJobOrder", http.MethodPost, "/api/jobs", true, handlers.WorkshopAPI.CreateJobOrder},
		{"ListJobOrders", http.MethodGet, "/api/jobs", true, handlers.WorkshopAPI.ListJobOrders},
		{"UpdateJobStatus", http.MethodPatch, "/api/jobs/:jobId/status", true, handlers.WorkshopAPI.UpdateJobStatus},

		{"ListAvailableCars", http.MethodGet, "/api/rental-cars", true, handlers.RentalsAPI.ListAvailableCars},
		{"CreateBooking", http.MethodPost, "/api/bookings", true, handlers.RentalsAPI.CreateBooking},
		{"ListBookings", http.MethodGet, "/api/bookings", true, handlers.RentalsAPI.ListBookings},
		{"UpdateBookingStatus", http.MethodPatch, "/api/bookings/:bookingId/status", true, handlers.RentalsAPI.UpdateBookingStatus},

		{"AddCar", http.MethodPost, "/api/fleet/cars", true, handlers.FleetAPI.AddCar},
		{"ListFleet", http.MethodGet, "/api/fleet/cars", true, handlers.FleetAPI.ListFleet},
		{"ToggleAvailability", http.MethodPatch, "/api/fleet/cars/:carId/availability", true, handlers.FleetAPI.ToggleAvailability},

		{"ListInvoices", http.MethodGet, "/api/invoices", true, handlers.BillingAPI.ListInvoices},
		{"GetStats", http.MethodGet, "/api/dashboard/stats", true, handlers.DashboardAPI.GetStats},
	}
}
