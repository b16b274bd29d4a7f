package auth

import "fmt"

// Identity is the authenticated caller as seen by the domain services.
type Identity struct {
	ID       string
	Email    string
	FullName string
	Role     Role
}

// Require checks the capability once per request. Every guarded service
// method calls this before touching the repository.
func (i Identity) Require(c Capability) error {
	if i.ID == "" {
		return fmt.Errorf("%w: unauthenticated caller", ErrUnauthorized)
	}
	if !i.Role.Can(c) {
		return fmt.Errorf("%w: %s requires more than role %q", ErrUnauthorized, c, i.Role)
	}
	return nil
}

// IsAdmin reports whether the identity carries the admin role claim.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Owns reports whether a row keyed by customerID belongs to the caller.
func (i Identity) Owns(customerID string) bool {
	return i.ID != "" && i.ID == customerID
}
