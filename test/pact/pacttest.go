//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "autoshop-api"
	ConsumerName = "autoshop-portal"

	StateFleetBaseline  = "rental fleet baseline"
	StateCarAvailable   = "available car pact-car-1 exists"
	StateBookingMissing = "no booking with id pact-booking-404"
)

const (
	AvailableCarID   = "pact-car-1"
	MissingBookingID = "pact-booking-404"

	CustomerID    = "pact-customer"
	CustomerToken = "pact-customer-token"
	AdminToken    = "pact-admin-token"
)

const (
	exampleBookingStart = "2024-06-10T00:00:00Z"
	exampleBookingEnd   = "2024-06-13T00:00:00Z"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleCarPayload provides stable test data for fleet interactions.
func ExampleCarPayload() map[string]any {
	return map[string]any{
		"id":           AvailableCarID,
		"make":         "Toyota",
		"model":        "Corolla",
		"year":         2021,
		"carType":      "sedan",
		"dailyRate":    15000.0,
		"licensePlate": "KJA-123-XY",
		"available":    true,
		"features":     []string{"AC"},
	}
}

// ExampleBookingRequest provides the booking creation body the portal sends.
func ExampleBookingRequest() map[string]any {
	return map[string]any{
		"carId":     AvailableCarID,
		"startDate": exampleBookingStart,
		"endDate":   exampleBookingEnd,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
