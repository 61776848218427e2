package enum

// Role represents a user's access level
type Role string

const (
	// RoleAdmin can access every branch and manage users
	RoleAdmin Role = "admin"
	// RoleStaff is scoped to a single branch
	RoleStaff Role = "staff"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleStaff
}
