package identity

import "github.com/google/uuid"

// Role granted by the external auth service. The core only consumes it for
// coarse route gating; fine-grained authorization lives outside this module.
type Role string

const (
	RoleAdmin           Role = "admin"
	RoleRevenueManager  Role = "revenue_manager"
	RolePropertyManager Role = "property_manager"
	RoleFrontDesk       Role = "front_desk"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleRevenueManager, RolePropertyManager, RoleFrontDesk:
		return true
	default:
		return false
	}
}

// Principal is the authenticated caller as supplied by the request layer.
// PropertyID is set for property-scoped staff and nil for group-level users.
type Principal struct {
	UserID     uuid.UUID
	Role       Role
	PropertyID *uuid.UUID
}
