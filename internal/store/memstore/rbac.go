package memstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mbgplatform/mbg/internal/scopes"
	"github.com/mbgplatform/mbg/internal/store"
)

type permissionRepo struct {
	d *data
}

func (r *permissionRepo) Create(_ context.Context, perm *store.Permission) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	ensureID(&perm.ID)
	stamp(&perm.CreatedAt, nil)

	for _, existing := range r.d.perms {
		if existing.Name == perm.Name {
			return store.ErrConflict
		}
	}

	r.d.perms[perm.ID] = clone(perm)

	return nil
}

func (r *permissionRepo) GetByName(_ context.Context, name scopes.PermissionName) (*store.Permission, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	for _, perm := range r.d.perms {
		if perm.Name == name {
			return clone(perm), nil
		}
	}

	return nil, store.ErrNotFound
}

func (r *permissionRepo) List(_ context.Context) ([]*store.Permission, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var perms []*store.Permission
	for _, perm := range r.d.perms {
		perms = append(perms, clone(perm))
	}

	return perms, nil
}

type rolePermissionRepo struct {
	d *data
}

func (r *rolePermissionRepo) Grant(_ context.Context, role scopes.Role, permissionID uuid.UUID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	grants, ok := r.d.rolePerms[role]
	if !ok {
		grants = map[uuid.UUID]struct{}{}
		r.d.rolePerms[role] = grants
	}

	if _, exists := grants[permissionID]; exists {
		return store.ErrConflict
	}

	grants[permissionID] = struct{}{}

	return nil
}

func (r *rolePermissionRepo) Revoke(_ context.Context, role scopes.Role, permissionID uuid.UUID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	grants, ok := r.d.rolePerms[role]
	if !ok {
		return store.ErrNotFound
	}

	if _, exists := grants[permissionID]; !exists {
		return store.ErrNotFound
	}

	delete(grants, permissionID)

	return nil
}

func (r *rolePermissionRepo) PermissionsForRole(_ context.Context, role scopes.Role) ([]*store.Permission, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var perms []*store.Permission
	for id := range r.d.rolePerms[role] {
		if perm, ok := r.d.perms[id]; ok {
			perms = append(perms, clone(perm))
		}
	}

	return perms, nil
}

type auditLogRepo struct {
	d *data
}

func (r *auditLogRepo) Create(_ context.Context, entry *store.AuditLog) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	ensureID(&entry.ID)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	r.d.audits = append(r.d.audits, clone(entry))

	return nil
}

func (r *auditLogRepo) List(_ context.Context, filter store.AuditFilter, params store.ListParams) ([]*store.AuditLog, int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var entries []*store.AuditLog
	for _, entry := range r.d.audits {
		if filter.UserID != nil && (entry.UserID == nil || *entry.UserID != *filter.UserID) {
			continue
		}

		if filter.ResourceType != "" && entry.ResourceType != filter.ResourceType {
			continue
		}

		if filter.From != nil && entry.CreatedAt.Before(*filter.From) {
			continue
		}

		if filter.To != nil && entry.CreatedAt.After(*filter.To) {
			continue
		}

		entries = append(entries, clone(entry))
	}

	entries, total := page(entries, func(a *store.AuditLog) time.Time { return a.CreatedAt }, params)

	return entries, total, nil
}

func (r *auditLogRepo) Analytics(_ context.Context) (*store.AuditAnalytics, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	analytics := &store.AuditAnalytics{
		TotalActions:      int64(len(r.d.audits)),
		ActionsByType:     map[string]int64{},
		ActionsByResource: map[string]int64{},
		ActionsByActor:    map[string]int64{},
		ActionsPerDay:     map[string]int64{},
	}

	for _, entry := range r.d.audits {
		analytics.ActionsByType[entry.Action]++
		analytics.ActionsByResource[entry.ResourceType]++

		actor := "system"
		if entry.UserID != nil {
			actor = entry.UserID.String()
		}

		analytics.ActionsByActor[actor]++
		analytics.ActionsPerDay[entry.CreatedAt.Format("2006-01-02")]++
	}

	return analytics, nil
}

func (r *auditLogRepo) CountSince(_ context.Context, since time.Time) (int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var total int64
	for _, entry := range r.d.audits {
		if !entry.CreatedAt.Before(since) {
			total++
		}
	}

	return total, nil
}
