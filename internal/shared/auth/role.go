// Package auth carries the caller identity, the role capability table,
// and the access-token helpers shared by every bounded context.
package auth

import (
	"errors"
	"fmt"
)

// Role is the authorization tag attached to an authenticated identity.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// ErrUnauthorized signals a role/capability mismatch. Callers must not
// receive partial data when this is returned.
var ErrUnauthorized = errors.New("operation not permitted for role")

// ErrUnknownRole signals a role claim outside the known set.
var ErrUnknownRole = errors.New("unknown role")

// ParseRole validates a raw role claim.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleCustomer:
		return RoleCustomer, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, raw)
	}
}

// Capability names a guarded operation. Services declare the capability
// they require and check it once per request through Identity.Require.
type Capability string

const (
	CapUpdateJobStatus     Capability = "workshop.jobs.update-status"
	CapManageFleet         Capability = "rentals.fleet.manage"
	CapManageBookings      Capability = "rentals.bookings.manage"
	CapViewAllJobOrders    Capability = "workshop.jobs.view-all"
	CapViewAllBookings     Capability = "rentals.bookings.view-all"
	CapViewAllInvoices     Capability = "billing.invoices.view-all"
	CapRegisterVehicle     Capability = "workshop.vehicles.register"
	CapCreateJobOrder      Capability = "workshop.jobs.create"
	CapCreateBooking       Capability = "rentals.bookings.create"
	CapViewAvailableFleet  Capability = "rentals.fleet.view-available"
	CapViewOwnRecords      Capability = "records.view-own"
)

// grants maps each role onto the capabilities it holds. Customer-grade
// capabilities are also granted to admins so staff can act on behalf of
// a customer at the counter.
var grants = map[Role]map[Capability]struct{}{
	RoleAdmin: capabilitySet(
		CapUpdateJobStatus,
		CapManageFleet,
		CapManageBookings,
		CapViewAllJobOrders,
		CapViewAllBookings,
		CapViewAllInvoices,
		CapRegisterVehicle,
		CapCreateJobOrder,
		CapCreateBooking,
		CapViewAvailableFleet,
		CapViewOwnRecords,
	),
	RoleCustomer: capabilitySet(
		CapRegisterVehicle,
		CapCreateJobOrder,
		CapCreateBooking,
		CapViewAvailableFleet,
		CapViewOwnRecords,
	),
}

func capabilitySet(caps ...Capability) map[Capability]struct{} {
	set := make(map[Capability]struct{}, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

// Can reports whether the role holds the capability.
func (r Role) Can(c Capability) bool {
	_, ok := grants[r][c]
	return ok
}
