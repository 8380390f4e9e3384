package domain

// Role tags a tenant membership and controls an allow-list restriction
// independent of module gating.
type Role string

const (
	RoleEmployee   Role = "employee"
	RoleManager    Role = "manager"
	RoleHR         Role = "hr"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// IsAdmin reports whether the role may perform privileged operations
// (module administration, invites, impersonation).
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// Valid reports whether the role is one of the known tags. Unknown tags are
// tolerated on read paths but rejected on writes.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleHR, RoleAdmin, RoleSuperadmin:
		return true
	}
	return false
}
