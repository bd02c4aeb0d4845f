package biz

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/scopes"
	"github.com/mbgplatform/mbg/internal/store"
)

const permissionCacheTTL = 5 * time.Minute

type PermissionServiceParams struct {
	fx.In

	Store *store.Store
	Audit *AuditService
}

func NewPermissionService(params PermissionServiceParams) *PermissionService {
	return &PermissionService{
		AbstractService: &AbstractService{store: params.Store},
		audit:           params.Audit,
		cache:           cache.New(permissionCacheTTL, 2*permissionCacheTTL),
	}
}

// PermissionService resolves role grants. Resolved sets are cached per role;
// grant changes invalidate the affected role immediately, so a revocation is
// never masked longer than one cache window on other processes.
type PermissionService struct {
	*AbstractService

	audit *AuditService
	cache *cache.Cache
}

// HasPermission reports whether the role's granted set contains the
// permission. Implements the authorization checker contract.
func (s *PermissionService) HasPermission(ctx context.Context, role scopes.Role, name scopes.PermissionName) (bool, error) {
	grants, err := s.grantsFor(ctx, role)
	if err != nil {
		return false, err
	}

	_, ok := grants[name]

	return ok, nil
}

func (s *PermissionService) grantsFor(ctx context.Context, role scopes.Role) (map[scopes.PermissionName]struct{}, error) {
	key := "role-grants:" + string(role)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(map[scopes.PermissionName]struct{}), nil
	}

	perms, err := s.store.RolePermissions.PermissionsForRole(ctx, role)
	if err != nil {
		return nil, errs.Unexpected(err)
	}

	grants := make(map[scopes.PermissionName]struct{}, len(perms))
	for _, perm := range perms {
		grants[perm.Name] = struct{}{}
	}

	s.cache.Set(key, grants, cache.DefaultExpiration)

	return grants, nil
}

func (s *PermissionService) invalidate(role scopes.Role) {
	s.cache.Delete("role-grants:" + string(role))
}

// List returns the full permission catalog.
func (s *PermissionService) List(ctx context.Context) ([]*store.Permission, error) {
	perms, err := s.store.Permissions.List(ctx)
	if err != nil {
		return nil, errs.Unexpected(err)
	}

	return perms, nil
}

// PermissionsForRole returns the names granted to a role.
func (s *PermissionService) PermissionsForRole(ctx context.Context, role scopes.Role) ([]scopes.PermissionName, error) {
	grants, err := s.grantsFor(ctx, role)
	if err != nil {
		return nil, err
	}

	return lo.Keys(grants), nil
}

// Grant adds a permission to a role's set.
func (s *PermissionService) Grant(ctx context.Context, role scopes.Role, name scopes.PermissionName) error {
	if !role.Valid() {
		return errs.BadRequest("unknown role: " + string(role))
	}

	perm, err := s.store.Permissions.GetByName(ctx, name)
	if err != nil {
		return storeErr(err, "permission", "")
	}

	if err := s.store.RolePermissions.Grant(ctx, role, perm.ID); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return errs.Conflict("permission already granted")
		}

		return errs.Unexpected(err)
	}

	s.invalidate(role)
	s.audit.Record(ctx, Entry{
		Action:       "PERMISSION_GRANT",
		ResourceType: "ROLE_PERMISSION",
		ResourceID:   &perm.ID,
		Details:      map[string]any{"role": role, "permission": name},
	})

	return nil
}

// Revoke removes a permission from a role's set.
func (s *PermissionService) Revoke(ctx context.Context, role scopes.Role, name scopes.PermissionName) error {
	if !role.Valid() {
		return errs.BadRequest("unknown role: " + string(role))
	}

	perm, err := s.store.Permissions.GetByName(ctx, name)
	if err != nil {
		return storeErr(err, "permission", "")
	}

	if err := s.store.RolePermissions.Revoke(ctx, role, perm.ID); err != nil {
		return storeErr(err, "role grant", "")
	}

	s.invalidate(role)
	s.audit.Record(ctx, Entry{
		Action:       "PERMISSION_REVOKE",
		ResourceType: "ROLE_PERMISSION",
		ResourceID:   &perm.ID,
		Details:      map[string]any{"role": role, "permission": name},
	})

	return nil
}
