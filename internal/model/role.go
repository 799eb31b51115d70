package model

import "fmt"

// Role is the closed set of account roles. Access control always goes through
// this type, never free-form string comparison.
type Role string

const (
	RoleManager Role = "Manager"
	RoleSales   Role = "Sales"
	RoleFinance Role = "Finance"
	RoleAdmin   Role = "Admin"
)

// Roles lists every valid role.
func Roles() []Role {
	return []Role{RoleManager, RoleSales, RoleFinance, RoleAdmin}
}

// ParseRole converts an external string into a Role, rejecting anything
// outside the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleManager, RoleSales, RoleFinance, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Singleton reports whether at most one active account may hold this role
// system-wide. Enforced at signup time, not continuously.
func (r Role) Singleton() bool {
	return r == RoleManager || r == RoleFinance
}

// SeesCostPrice reports whether the role may read product cost prices.
func (r Role) SeesCostPrice() bool {
	return r == RoleManager || r == RoleFinance
}
