package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/femisayo-autos/autoshop-api/internal/domains/workshop/adapters/memory"
	"github.com/femisayo-autos/autoshop-api/internal/domains/workshop/domain"
	"github.com/femisayo-autos/autoshop-api/internal/domains/workshop/ports"
	"github.com/femisayo-autos/autoshop-api/internal/shared/auth"
)

var (
	staff    = auth.Identity{ID: "staff-1", Email: "staff@example.com", Role: auth.RoleAdmin}
	customer = auth.Identity{ID: "cust-1", Email: "cust@example.com", Role: auth.RoleCustomer}
	stranger = auth.Identity{ID: "cust-2", Email: "other@example.com", Role: auth.RoleCustomer}
)

func newTestService() *Service {
	return NewService(memory.NewVehicleRepository(), memory.NewJobOrderRepository())
}

func registerVehicle(t *testing.T, svc *Service, caller auth.Identity) *domain.Vehicle {
	t.Helper()
	vehicle, err := svc.RegisterVehicle(context.Background(), caller, ports.RegisterVehicleInput{
		Make:         "Toyota",
		Model:        "Camry",
		Year:         2020,
		LicensePlate: "ABC-123",
	})
	require.NoError(t, err)
	return vehicle
}

func TestRegisterVehicle_CustomerOwnsRow(t *testing.T) {
	svc := newTestService()
	vehicle := registerVehicle(t, svc, customer)
	require.Equal(t, customer.ID, vehicle.CustomerID)
}

func TestCreateJobOrder_StartsReceived(t *testing.T) {
	svc := newTestService()
	vehicle := registerVehicle(t, svc, customer)

	job, err := svc.CreateJobOrder(context.Background(), customer, vehicle.ID, "brake noise")
	require.NoError(t, err)
	require.Equal(t, domain.StatusReceived, job.Status)
	require.Equal(t, customer.ID, job.CustomerID)
}

func TestCreateJobOrder_UnknownVehicle(t *testing.T) {
	svc := newTestService()
	_, err := svc.CreateJobOrder(context.Background(), customer, "missing", "brake noise")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateJobOrder_StrangerVehicleRejected(t *testing.T) {
	svc := newTestService()
	vehicle := registerVehicle(t, svc, customer)

	_, err := svc.CreateJobOrder(context.Background(), stranger, vehicle.ID, "brake noise")
	require.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestCreateJobOrder_AdminOnBehalfOfOwner(t *testing.T) {
	svc := newTestService()
	vehicle := registerVehicle(t, svc, customer)

	job, err := svc.CreateJobOrder(context.Background(), staff, vehicle.ID, "oil change")
	require.NoError(t, err)
	require.Equal(t, customer.ID, job.CustomerID)
}

func TestUpdateJobStatus_UnknownJob(t *testing.T) {
	svc := newTestService()
	_, err := svc.UpdateJobStatus(context.Background(), staff, "missing", "completed")
	require.ErrorIs(t, err, ports.ErrJobOrderNotFound)
}

func TestUpdateJobStatus_CustomerRejected(t *testing.T) {
	svc := newTestService()
	vehicle := registerVehicle(t, svc, customer)
	job, err := svc.CreateJobOrder(context.Background(), customer, vehicle.ID, "brake noise")
	require.NoError(t, err)

	_, err = svc.UpdateJobStatus(context.Background(), customer, job.ID, "completed")
	require.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestJobLifecycle_TerminalGuard(t *testing.T) {
	svc := newTestService()
	vehicle := registerVehicle(t, svc, customer)

	job, err := svc.CreateJobOrder(context.Background(), customer, vehicle.ID, "brake noise")
	require.NoError(t, err)
	require.Equal(t, domain.StatusReceived, job.Status)

	job, err = svc.UpdateJobStatus(context.Background(), staff, job.ID, "completed")
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, job.Status)

	_, err = svc.UpdateJobStatus(context.Background(), staff, job.ID, "cancelled")
	require.ErrorIs(t, err, ErrInvalidInput)

	stored, err := svc.ListJobOrders(context.Background(), staff, "completed")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, domain.StatusCompleted, stored[0].Status)
}

func TestListJobOrders_Scoping(t *testing.T) {
	svc := newTestService()
	mine := registerVehicle(t, svc, customer)
	theirs := registerVehicle(t, svc, stranger)

	_, err := svc.CreateJobOrder(context.Background(), customer, mine.ID, "brake noise")
	require.NoError(t, err)
	_, err = svc.CreateJobOrder(context.Background(), stranger, theirs.ID, "flat tyre")
	require.NoError(t, err)

	own, err := svc.ListJobOrders(context.Background(), customer, "")
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Equal(t, customer.ID, own[0].CustomerID)

	all, err := svc.ListJobOrders(context.Background(), staff, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestListJobOrders_InvalidFilter(t *testing.T) {
	svc := newTestService()
	_, err := svc.ListJobOrders(context.Background(), staff, "finished")
	require.ErrorIs(t, err, ErrInvalidInput)
}
