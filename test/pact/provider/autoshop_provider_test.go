//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	pacttest "github.com/femisayo-autos/autoshop-api/test/pact"

	billingmemory "github.com/femisayo-autos/autoshop-api/internal/domains/billing/adapters/memory"
	billingapp "github.com/femisayo-autos/autoshop-api/internal/domains/billing/application"
	dashboardapp "github.com/femisayo-autos/autoshop-api/internal/domains/dashboard/application"
	identitymemory "github.com/femisayo-autos/autoshop-api/internal/domains/identity/adapters/memory"
	identityapp "github.com/femisayo-autos/autoshop-api/internal/domains/identity/application"
	rentalsmemory "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/adapters/memory"
	rentalsobs "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/adapters/observability"
	rentalsworkflows "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/adapters/workflows"
	rentalsapp "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/application"
	rentalsdomain "github.com/femisayo-autos/autoshop-api/internal/domains/rentals/domain"
	workshopmemory "github.com/femisayo-autos/autoshop-api/internal/domains/workshop/adapters/memory"
	workshopobs "github.com/femisayo-autos/autoshop-api/internal/domains/workshop/adapters/observability"
	workshopapp "github.com/femisayo-autos/autoshop-api/internal/domains/workshop/application"
	apiserver "github.com/femisayo-autos/autoshop-api/internal/server"
	"github.com/femisayo-autos/autoshop-api/internal/shared/auth"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestAutoshopProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateFleetBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.rebuild(t)
			return nil, nil
		},
		pacttest.StateCarAvailable: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.rebuild(t)
			if setup {
				app.seedCar(t, pacttest.AvailableCarID)
			}
			return nil, nil
		},
		pacttest.StateBookingMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.rebuild(t)
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.rebuild(t)
			return nil
		},
	})
	require.NoError(t, err)
}

// staticTokenVerifier maps the fixed contract tokens to identities so
// the pact file does not have to carry real signed JWTs.
type staticTokenVerifier struct{}

func (staticTokenVerifier) Verify(token string) (auth.Identity, error) {
	switch token {
	case pacttest.CustomerToken:
		return auth.Identity{ID: pacttest.CustomerID, Email: "pact.customer@example.com", Role: auth.RoleCustomer}, nil
	case pacttest.AdminToken:
		return auth.Identity{ID: "pact-admin", Email: "pact.admin@example.com", Role: auth.RoleAdmin}, nil
	default:
		return auth.Identity{}, fmt.Errorf("unknown token")
	}
}

// contractProviderApp serves a fresh in-memory stack behind a stable
// base URL. State handlers swap the whole router between interactions.
type contractProviderApp struct {
	mu     sync.RWMutex
	router http.Handler
	cars   *rentalsmemory.CarRepository
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	app := &contractProviderApp{}
	app.rebuild(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		router := app.router
		app.mu.RUnlock()
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)
	app.server = server

	return app
}

func (a *contractProviderApp) rebuild(t testing.TB) {
	t.Helper()

	cars := rentalsmemory.NewCarRepository()
	bookings := rentalsmemory.NewBookingRepository()
	rentalsService := rentalsobs.New(rentalsapp.NewService(cars, bookings))
	workflows := rentalsworkflows.NewInlineBookingWorkflows(rentalsService)

	vehicles := workshopmemory.NewVehicleRepository()
	jobs := workshopmemory.NewJobOrderRepository()
	workshopService := workshopobs.New(workshopapp.NewService(vehicles, jobs))

	invoices := billingmemory.NewRepository()
	billingService := billingapp.NewService(invoices)
	dashboardService := dashboardapp.NewService(jobs, bookings, invoices)

	tokens, err := auth.NewTokenIssuer("pact-secret", "autoshop-pact", time.Hour)
	require.NoError(t, err)
	identityService := identityapp.NewService(identitymemory.NewRepository(), identitymemory.NewSessionStore(), tokens)

	handlers := apiserver.ApiHandleFunctions{
		AuthAPI:      apiserver.NewAuthAPI(identityService),
		WorkshopAPI:  apiserver.NewWorkshopAPI(workshopService),
		RentalsAPI:   apiserver.NewRentalsAPI(rentalsService, workflows),
		FleetAPI:     apiserver.NewFleetAPI(rentalsService),
		BillingAPI:   apiserver.NewBillingAPI(billingService),
		DashboardAPI: apiserver.NewDashboardAPI(dashboardService),
	}
	router := apiserver.NewRouter(handlers, apiserver.NewAuthMiddleware(staticTokenVerifier{}))

	a.mu.Lock()
	a.router = router
	a.cars = cars
	a.mu.Unlock()
}

func (a *contractProviderApp) seedCar(t testing.TB, id string) {
	t.Helper()
	car, err := rentalsdomain.NewRentalCar(id, "Toyota", "Corolla", 2021, "sedan", 15000, "KJA-123-XY", []string{"AC"})
	require.NoError(t, err)
	a.mu.RLock()
	cars := a.cars
	a.mu.RUnlock()
	_, err = cars.Save(context.Background(), car)
	require.NoError(t, err)
}
