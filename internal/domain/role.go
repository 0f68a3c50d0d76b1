package domain

// Role constants define the closed set of user roles.
const (
	RoleSuperAdmin = "superadmin"
	RoleStoreOwner = "storeowner"
	RoleCustomer   = "customer"
)

// Role represents a named role row. The set is seeded at migration time and
// is not user-extensible.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ValidRoles returns the set of valid user roles.
func ValidRoles() []string {
	return []string{RoleSuperAdmin, RoleStoreOwner, RoleCustomer}
}

// IsValidRole checks whether the given role string is a valid user role.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles() {
		if r == role {
			return true
		}
	}
	return false
}
