package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mbgplatform/mbg/internal/scopes"
)

// Seed inserts the permission catalog and the default role grants when
// absent. It is idempotent and safe to run on every startup.
func Seed(ctx context.Context, s *Store) error {
	byName := make(map[scopes.PermissionName]uuid.UUID, len(scopes.All()))

	for _, p := range scopes.All() {
		existing, err := s.Permissions.GetByName(ctx, p.Name)
		if err == nil {
			byName[p.Name] = existing.ID
			continue
		}

		if !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("seed: lookup permission %s: %w", p.Name, err)
		}

		perm := &Permission{
			ID:          uuid.New(),
			Name:        p.Name,
			Resource:    p.Resource,
			Action:      p.Action,
			Description: p.Description,
		}
		if err := s.Permissions.Create(ctx, perm); err != nil {
			return fmt.Errorf("seed: create permission %s: %w", p.Name, err)
		}

		byName[p.Name] = perm.ID
	}

	for role, names := range scopes.DefaultGrants() {
		granted, err := s.RolePermissions.PermissionsForRole(ctx, role)
		if err != nil {
			return fmt.Errorf("seed: list grants for %s: %w", role, err)
		}

		have := make(map[scopes.PermissionName]bool, len(granted))
		for _, p := range granted {
			have[p.Name] = true
		}

		for _, name := range names {
			if have[name] {
				continue
			}

			if err := s.RolePermissions.Grant(ctx, role, byName[name]); err != nil {
				return fmt.Errorf("seed: grant %s to %s: %w", name, role, err)
			}
		}
	}

	return nil
}
