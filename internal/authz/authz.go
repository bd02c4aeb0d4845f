// Package authz decides whether the current request principal may perform an
// operation. Permission sets are resolved through a Checker (the RBAC
// resolver) so the decision point stays decoupled from storage.
package authz

import (
	"context"

	"github.com/samber/lo"

	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/log"
	"github.com/mbgplatform/mbg/internal/scopes"
)

// Checker resolves a role's granted permission set.
type Checker interface {
	HasPermission(ctx context.Context, role scopes.Role, name scopes.PermissionName) (bool, error)
}

// HasPermission reports whether the context principal holds the permission.
// System and test principals pass unconditionally; an absent principal never
// does.
func HasPermission(ctx context.Context, checker Checker, required scopes.PermissionName) (bool, error) {
	p, ok := GetPrincipal(ctx)
	if !ok {
		return false, nil
	}

	switch p.Type {
	case PrincipalTypeSystem, PrincipalTypeTest:
		return true, nil
	case PrincipalTypeUser:
		return checker.HasPermission(ctx, p.Role, required)
	default:
		return false, nil
	}
}

// RequirePermission returns Forbidden unless the context principal holds the
// permission. The decision is logged with the principal for audit trails.
func RequirePermission(ctx context.Context, checker Checker, required scopes.PermissionName) error {
	has, err := HasPermission(ctx, checker, required)
	if err != nil {
		return err
	}

	p, _ := GetPrincipal(ctx)

	log.Debug(ctx, "authz: permission decision",
		log.String("principal", p.String()),
		log.String("permission", string(required)),
		log.String("decision", lo.Ternary(has, "allow", "deny")),
	)

	if !has {
		return errs.Forbidden("insufficient permission: " + string(required))
	}

	return nil
}
