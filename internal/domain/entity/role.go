package entity

import (
	"slices"
	"strings"
)

// RoleName identifies an entry in the role catalog.
type RoleName string

const (
	// RoleBuyer is the default marketplace shopper role.
	RoleBuyer RoleName = "BUYER"
	// RoleSeller owns a seller profile and lists products.
	RoleSeller RoleName = "SELLER"
	// RoleAdmin is the privileged back-office role. It is never self-assignable.
	RoleAdmin RoleName = "ADMIN"
)

// DefaultRoleCatalog is seeded into the roles table on migration.
var DefaultRoleCatalog = []RoleName{RoleBuyer, RoleSeller, RoleAdmin}

// ParseRoleName canonicalises user input: surrounding whitespace is dropped and the
// name is upper-cased, so "seller" and " Seller " both resolve to RoleSeller.
func ParseRoleName(s string) RoleName {
	return RoleName(strings.ToUpper(strings.TrimSpace(s)))
}

// String returns the string representation of the RoleName.
func (r RoleName) String() string {
	return string(r)
}

// IsPrivileged reports whether the role can only be granted by an administrator.
func (r RoleName) IsPrivileged() bool {
	return r == RoleAdmin
}

// Role is a role catalog entry.
type Role struct {
	ID   int64
	Name RoleName
}

// Roles is an ordered set of role names.
type Roles []RoleName

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role RoleName) bool {
	return slices.Contains(rs, role)
}

// ToStrings converts Roles to []string for JWT compatibility.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}

// RolesFromStrings converts []string to Roles, dropping blank entries.
func RolesFromStrings(ss []string) Roles {
	result := make(Roles, 0, len(ss))
	for _, s := range ss {
		role := ParseRoleName(s)
		if role != "" {
			result = append(result, role)
		}
	}

	return result
}
