package authz

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbgplatform/mbg/internal/scopes"
)

func TestWithPrincipalSetOnce(t *testing.T) {
	userID := uuid.New()
	p := Principal{Type: PrincipalTypeUser, UserID: &userID, Role: scopes.RoleParent}

	ctx, err := WithPrincipal(context.Background(), p)
	require.NoError(t, err)

	got, ok := GetPrincipal(ctx)
	require.True(t, ok)
	assert.Equal(t, p, got)

	t.Run("same principal is idempotent", func(t *testing.T) {
		_, err := WithPrincipal(ctx, p)
		assert.NoError(t, err)
	})

	t.Run("different principal conflicts", func(t *testing.T) {
		otherID := uuid.New()
		_, err := WithPrincipal(ctx, Principal{Type: PrincipalTypeUser, UserID: &otherID, Role: scopes.RoleParent})
		assert.Error(t, err)
	})
}

func TestNewUserContext(t *testing.T) {
	userID := uuid.New()
	ctx := NewUserContext(context.Background(), userID, scopes.RoleOrgAdmin)

	p := MustGetPrincipal(ctx)
	assert.True(t, p.IsUser())
	assert.Equal(t, userID, *p.UserID)
	assert.Equal(t, scopes.RoleOrgAdmin, p.Role)
	assert.Equal(t, "user:"+userID.String(), p.String())
}

func TestRequirePrincipal(t *testing.T) {
	assert.Error(t, RequirePrincipal(context.Background()))
	assert.NoError(t, RequirePrincipal(NewTestContext(context.Background())))
}

func TestRunWithSystemBypass(t *testing.T) {
	got, err := RunWithSystemBypass(context.Background(), "unit-test", func(ctx context.Context) (string, error) {
		p := MustGetPrincipal(ctx)
		assert.True(t, p.IsSystem())

		return "done", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "done", got)
}

type allowNothing struct{}

func (allowNothing) HasPermission(context.Context, scopes.Role, scopes.PermissionName) (bool, error) {
	return false, nil
}

func TestHasPermissionBypasses(t *testing.T) {
	checker := allowNothing{}

	t.Run("system principal passes", func(t *testing.T) {
		ok, err := HasPermission(NewSystemContext(context.Background()), checker, scopes.PermAuditRead)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("no principal denied", func(t *testing.T) {
		ok, err := HasPermission(context.Background(), checker, scopes.PermAuditRead)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("user goes through the checker", func(t *testing.T) {
		ctx := NewUserContext(context.Background(), uuid.New(), scopes.RoleParent)
		ok, err := HasPermission(ctx, checker, scopes.PermAuditRead)
		require.NoError(t, err)
		assert.False(t, ok)

		err = RequirePermission(ctx, checker, scopes.PermAuditRead)
		assert.Error(t, err)
	})
}
