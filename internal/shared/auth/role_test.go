package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	role, err := ParseRole("admin")
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, role)

	role, err = ParseRole("customer")
	require.NoError(t, err)
	require.Equal(t, RoleCustomer, role)

	_, err = ParseRole("superuser")
	require.ErrorIs(t, err, ErrUnknownRole)
}

func TestCapabilityGrants(t *testing.T) {
	staffOnly := []Capability{
		CapUpdateJobStatus,
		CapManageFleet,
		CapManageBookings,
		CapViewAllJobOrders,
		CapViewAllBookings,
		CapViewAllInvoices,
	}
	shared := []Capability{
		CapRegisterVehicle,
		CapCreateJobOrder,
		CapCreateBooking,
		CapViewAvailableFleet,
		CapViewOwnRecords,
	}

	for _, capability := range staffOnly {
		require.True(t, RoleAdmin.Can(capability), "admin should hold %s", capability)
		require.False(t, RoleCustomer.Can(capability), "customer should not hold %s", capability)
	}
	for _, capability := range shared {
		require.True(t, RoleAdmin.Can(capability), "admin should hold %s", capability)
		require.True(t, RoleCustomer.Can(capability), "customer should hold %s", capability)
	}
}

func TestIdentityRequire(t *testing.T) {
	admin := Identity{ID: "staff-1", Role: RoleAdmin}
	customer := Identity{ID: "cust-1", Role: RoleCustomer}
	anonymous := Identity{}

	require.NoError(t, admin.Require(CapManageFleet))
	require.ErrorIs(t, customer.Require(CapManageFleet), ErrUnauthorized)
	require.ErrorIs(t, anonymous.Require(CapViewOwnRecords), ErrUnauthorized)
}

func TestIdentityOwns(t *testing.T) {
	customer := Identity{ID: "cust-1", Role: RoleCustomer}
	require.True(t, customer.Owns("cust-1"))
	require.False(t, customer.Owns("cust-2"))
	require.False(t, Identity{}.Owns(""))
}
