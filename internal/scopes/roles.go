package scopes

import (
	"fmt"
	"strings"
)

// Role is the closed role enumeration. Role strings entering the system
// (registration, role updates, token claims) must parse against this set;
// an unrecognized value is rejected, never defaulted.
type Role string

const (
	// RoleSuperAdmin is the platform-level governance role. It is the only
	// role granted the audit and governance read permissions by default.
	RoleSuperAdmin Role = "SUPER_ADMIN"
	// RoleGovernanceAdmin oversees organizations on behalf of the program.
	RoleGovernanceAdmin Role = "GOVERNANCE_ADMIN"
	// RoleOrgAdmin administers a single organization.
	RoleOrgAdmin Role = "ORG_ADMIN"
	// RoleSchoolAdmin administers schools within a branch.
	RoleSchoolAdmin Role = "SCHOOL_ADMIN"
	// RoleSupplier is a meal vendor account.
	RoleSupplier Role = "SUPPLIER"
	// RoleParent is a student guardian account.
	RoleParent Role = "PARENT"
)

var allRoles = []Role{
	RoleSuperAdmin,
	RoleGovernanceAdmin,
	RoleOrgAdmin,
	RoleSchoolAdmin,
	RoleSupplier,
	RoleParent,
}

// AllRoles returns the closed role set.
func AllRoles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)

	return out
}

// ParseRole validates a role string against the closed enumeration.
func ParseRole(s string) (Role, error) {
	candidate := Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, r := range allRoles {
		if r == candidate {
			return r, nil
		}
	}

	return "", fmt.Errorf("unknown role %q", s)
}

// Valid reports whether the role belongs to the closed enumeration.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string {
	return string(r)
}
