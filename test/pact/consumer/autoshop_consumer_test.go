//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/femisayo-autos/autoshop-api/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type carPayload struct {
	ID           string   `json:"id"`
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	CarType      string   `json:"carType"`
	DailyRate    float64  `json:"dailyRate"`
	LicensePlate string   `json:"licensePlate"`
	Available    bool     `json:"available"`
	Features     []string `json:"features"`
}

type bookingRequest struct {
	CarID     string `json:"carId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type bookingPayload struct {
	ID          string  `json:"id"`
	CarID       string  `json:"carId"`
	CustomerID  string  `json:"customerId"`
	TotalAmount float64 `json:"totalAmount"`
	Status      string  `json:"status"`
}

type statusUpdate struct {
	Status string `json:"status"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func TestAutoshopPortalContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	carBodyMatcher := matchers.Map{
		"id":           matchers.Like(pacttest.AvailableCarID),
		"make":         matchers.Like("Toyota"),
		"model":        matchers.Like("Corolla"),
		"year":         matchers.Like(2021),
		"carType":      matchers.Like("sedan"),
		"dailyRate":    matchers.Like(15000.0),
		"licensePlate": matchers.Like("KJA-123-XY"),
		"available":    matchers.Like(true),
		"features":     matchers.ArrayMinLike("AC", 1),
	}
	bookingBodyMatcher := matchers.Map{
		"id":          matchers.Like("pact-booking-1"),
		"carId":       matchers.Like(pacttest.AvailableCarID),
		"customerId":  matchers.Like(pacttest.CustomerID),
		"totalAmount": matchers.Like(45000.0),
		"status":      matchers.Term("pending", "pending|confirmed|in_progress|completed|cancelled"),
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	bearerCustomer := matchers.S("Bearer " + pacttest.CustomerToken)

	pact.AddInteraction().
		Given(pacttest.StateCarAvailable).
		UponReceiving("a request for the available rental cars").
		WithRequest("GET", "/api/rental-cars", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", bearerCustomer)
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.EachLike(carBodyMatcher, 1))
		})

	pact.AddInteraction().
		Given(pacttest.StateCarAvailable).
		UponReceiving("a request to book an available car").
		WithRequest("POST", "/api/bookings", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", bearerCustomer)
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"carId":     matchers.Like(pacttest.AvailableCarID),
				"startDate": matchers.Regex("2024-06-10T00:00:00Z", `\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z`),
				"endDate":   matchers.Regex("2024-06-13T00:00:00Z", `\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z`),
			})
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(bookingBodyMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateBookingMissing).
		UponReceiving("a status update for a missing booking").
		WithRequest("PATCH", "/api/bookings/"+pacttest.MissingBookingID+"/status", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", matchers.S("Bearer "+pacttest.AdminToken))
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"status": matchers.S("confirmed"),
			})
		}).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newPortalClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		cars, err := client.ListAvailableCars(ctx, pacttest.CustomerToken)
		if err != nil {
			return fmt.Errorf("list available cars: %w", err)
		}
		if len(cars) == 0 {
			return fmt.Errorf("expected at least one available car")
		}

		booking, err := client.CreateBooking(ctx, pacttest.CustomerToken, bookingRequest{
			CarID:     pacttest.AvailableCarID,
			StartDate: "2024-06-10T00:00:00Z",
			EndDate:   "2024-06-13T00:00:00Z",
		})
		if err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		if booking == nil || booking.ID == "" {
			return fmt.Errorf("expected created booking ID to be set")
		}

		if _, err := client.UpdateBookingStatus(ctx, pacttest.AdminToken, pacttest.MissingBookingID, "confirmed"); err == nil {
			return fmt.Errorf("expected 404 for booking %s", pacttest.MissingBookingID)
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.Status())
		}

		return nil
	})
	require.NoError(t, err)
}

type portalClient struct {
	baseURL    string
	httpClient *http.Client
}

func newPortalClient(config pactconsumer.MockServerConfig) *portalClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &portalClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *portalClient) ListAvailableCars(ctx context.Context, token string) ([]carPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/rental-cars", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var payload []carPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *portalClient) CreateBooking(ctx context.Context, token string, booking bookingRequest) (*bookingPayload, error) {
	body, err := json.Marshal(booking)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/bookings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var payload bookingPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *portalClient) UpdateBookingStatus(ctx context.Context, token, bookingID, status string) (*bookingPayload, error) {
	body, err := json.Marshal(statusUpdate{Status: status})
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/bookings/%s/status", c.baseURL, bookingID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var payload bookingPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status: status,
		title:  problem.Title,
		detail: problem.Detail,
	}
}
