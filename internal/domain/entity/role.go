package entity

// Role is the closed set of roles an account can hold.
type Role string

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Roles lists every valid role.
func Roles() []Role {
	return []Role{RoleDoctor, RolePatient}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDoctor, RolePatient:
		return true
	}
	return false
}

// ParseRole maps a raw tag to a Role. An empty tag yields the default role.
func ParseRole(raw string) (Role, bool) {
	if raw == "" {
		return RolePatient, true
	}
	role := Role(raw)
	return role, role.Valid()
}

// DashboardPath is the landing page for a signed-in account of this role.
func (r Role) DashboardPath() string {
	switch r {
	case RoleDoctor:
		return "/dashboard/doctor/"
	case RolePatient:
		return "/dashboard/patient/"
	}
	return ""
}
