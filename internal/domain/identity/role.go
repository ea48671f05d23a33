package identity

import (
	"strings"

	"github.com/JostinQuilca/FoodApp/internal/domain/shared"
)

// Role is the closed set of user roles known to the ordering platform
type Role string

const (
	RoleSeller Role = "VENDEDOR"
	RoleAdmin  Role = "ADMINISTRADOR"
	RoleClient Role = "CLIENTE"
)

// AllRoles returns every valid role
func AllRoles() []Role {
	return []Role{RoleSeller, RoleAdmin, RoleClient}
}

// ParseRole converts a stored role name into a Role.
// Matching ignores case and surrounding spaces.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", shared.NewValidationError("INVALID_ROLE", "unknown role: "+s)
	}
	return r, nil
}

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleSeller, RoleAdmin, RoleClient:
		return true
	default:
		return false
	}
}

// String returns the string representation
func (r Role) String() string {
	return string(r)
}

// CanIssueDirectInvoice reports whether the role may create a direct-sale invoice.
// Only sellers can.
func (r Role) CanIssueDirectInvoice() bool {
	switch r {
	case RoleSeller:
		return true
	case RoleAdmin, RoleClient:
		return false
	default:
		return false
	}
}

// CanReadAllInvoices reports whether the role may list invoices of every customer
func (r Role) CanReadAllInvoices() bool {
	switch r {
	case RoleSeller, RoleAdmin:
		return true
	case RoleClient:
		return false
	default:
		return false
	}
}

// CanChangeInvoiceStatus reports whether the role may pay or void invoices
func (r Role) CanChangeInvoiceStatus() bool {
	switch r {
	case RoleSeller, RoleAdmin:
		return true
	case RoleClient:
		return false
	default:
		return false
	}
}
