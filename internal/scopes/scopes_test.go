package scopes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	role, err := ParseRole("super_admin")
	require.NoError(t, err)
	assert.Equal(t, RoleSuperAdmin, role)

	role, err = ParseRole("  PARENT ")
	require.NoError(t, err)
	assert.Equal(t, RoleParent, role)

	_, err = ParseRole("ADMIN")
	assert.Error(t, err)

	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestRoleValid(t *testing.T) {
	for _, r := range AllRoles() {
		assert.True(t, r.Valid(), r)
	}

	assert.False(t, Role("ROOT").Valid())
}

func TestPermissionCatalog(t *testing.T) {
	names := map[PermissionName]struct{}{}
	for _, p := range All() {
		_, dup := names[p.Name]
		require.False(t, dup, "duplicate permission %s", p.Name)
		names[p.Name] = struct{}{}

		assert.NotEmpty(t, p.Resource)
		assert.NotEmpty(t, p.Action)
	}

	perm, ok := Lookup(PermAuditRead)
	require.True(t, ok)
	assert.Equal(t, "AUDIT", perm.Resource)
}

func TestDefaultGrants(t *testing.T) {
	grants := DefaultGrants()

	catalog := map[PermissionName]struct{}{}
	for _, name := range AllNames() {
		catalog[name] = struct{}{}
	}

	for role, names := range grants {
		assert.True(t, role.Valid(), role)

		for _, name := range names {
			_, ok := catalog[name]
			assert.True(t, ok, "grant %s for %s not in catalog", name, role)
		}
	}

	// Audit and governance reads stay with the top governance role.
	for role, names := range grants {
		if role == RoleSuperAdmin {
			continue
		}

		for _, name := range names {
			assert.NotEqual(t, PermAuditRead, name, "role %s must not hold AUDIT_READ", role)
			assert.NotEqual(t, PermGovernanceRead, name, "role %s must not hold GOVERNANCE_READ", role)
		}
	}

	assert.Contains(t, grants[RoleSuperAdmin], PermAuditRead)
	assert.Contains(t, grants[RoleSuperAdmin], PermGovernanceRead)
}
