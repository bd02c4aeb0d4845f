package biz

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbgplatform/mbg/internal/authz"
	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/scopes"
)

func TestDefaultGrants(t *testing.T) {
	env := newTestEnv(t)
	ctx := systemCtx()

	t.Run("top governance role holds audit read", func(t *testing.T) {
		has, err := env.Permissions.HasPermission(ctx, scopes.RoleSuperAdmin, scopes.PermAuditRead)
		require.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("top governance role holds every permission", func(t *testing.T) {
		for _, name := range scopes.AllNames() {
			has, err := env.Permissions.HasPermission(ctx, scopes.RoleSuperAdmin, name)
			require.NoError(t, err)
			assert.True(t, has, "missing %s", name)
		}
	})

	t.Run("audit read is denied below the top role", func(t *testing.T) {
		for _, role := range []scopes.Role{
			scopes.RoleGovernanceAdmin,
			scopes.RoleOrgAdmin,
			scopes.RoleSchoolAdmin,
			scopes.RoleSupplier,
			scopes.RoleParent,
		} {
			has, err := env.Permissions.HasPermission(ctx, role, scopes.PermAuditRead)
			require.NoError(t, err)
			assert.False(t, has, "role %s", role)
		}
	})

	t.Run("parent cannot manage users", func(t *testing.T) {
		has, err := env.Permissions.HasPermission(ctx, scopes.RoleParent, scopes.PermUserManage)
		require.NoError(t, err)
		assert.False(t, has)
	})
}

func TestGrantRevoke(t *testing.T) {
	env := newTestEnv(t)
	ctx := systemCtx()

	has, err := env.Permissions.HasPermission(ctx, scopes.RoleParent, scopes.PermMealRead)
	require.NoError(t, err)
	require.True(t, has, "seeded grant expected")

	t.Run("revoke takes effect immediately", func(t *testing.T) {
		require.NoError(t, env.Permissions.Revoke(ctx, scopes.RoleParent, scopes.PermMealRead))

		has, err := env.Permissions.HasPermission(ctx, scopes.RoleParent, scopes.PermMealRead)
		require.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("grant takes effect immediately", func(t *testing.T) {
		require.NoError(t, env.Permissions.Grant(ctx, scopes.RoleParent, scopes.PermMealRead))

		has, err := env.Permissions.HasPermission(ctx, scopes.RoleParent, scopes.PermMealRead)
		require.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("double grant conflicts", func(t *testing.T) {
		err := env.Permissions.Grant(ctx, scopes.RoleParent, scopes.PermMealRead)
		require.Error(t, err)
		assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	})

	t.Run("unknown permission is not found", func(t *testing.T) {
		err := env.Permissions.Grant(ctx, scopes.RoleParent, scopes.PermissionName("nothing:at-all"))
		require.Error(t, err)
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})

	t.Run("unknown role is a bad request", func(t *testing.T) {
		err := env.Permissions.Grant(ctx, scopes.Role("WIZARD"), scopes.PermMealRead)
		require.Error(t, err)
		assert.Equal(t, errs.KindBadRequest, errs.KindOf(err))
	})
}

func TestRequirePermission(t *testing.T) {
	env := newTestEnv(t)

	userID := uuid.New()

	t.Run("user with grant passes", func(t *testing.T) {
		ctx := authz.NewUserContext(context.Background(), userID, scopes.RoleSuperAdmin)
		assert.NoError(t, authz.RequirePermission(ctx, env.Permissions, scopes.PermAuditRead))
	})

	t.Run("user without grant is forbidden", func(t *testing.T) {
		ctx := authz.NewUserContext(context.Background(), userID, scopes.RoleParent)
		err := authz.RequirePermission(ctx, env.Permissions, scopes.PermAuditRead)
		require.Error(t, err)
		assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
	})

	t.Run("no principal is forbidden", func(t *testing.T) {
		err := authz.RequirePermission(context.Background(), env.Permissions, scopes.PermMealRead)
		require.Error(t, err)
		assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
	})

	t.Run("system principal bypasses", func(t *testing.T) {
		assert.NoError(t, authz.RequirePermission(systemCtx(), env.Permissions, scopes.PermAuditRead))
	})
}
