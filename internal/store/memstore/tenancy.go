package memstore

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mbgplatform/mbg/internal/scopes"
	"github.com/mbgplatform/mbg/internal/store"
)

func clone[T any](v *T) *T {
	c := *v
	return &c
}

type organizationRepo struct {
	d *data
}

func (r *organizationRepo) Create(_ context.Context, org *store.Organization) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	ensureID(&org.ID)
	stamp(&org.CreatedAt, &org.UpdatedAt)

	for _, existing := range r.d.orgs {
		if strings.EqualFold(existing.Code, org.Code) {
			return store.ErrConflict
		}
	}

	r.d.orgs[org.ID] = clone(org)

	return nil
}

func (r *organizationRepo) GetByID(_ context.Context, id uuid.UUID) (*store.Organization, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	org, ok := r.d.orgs[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	return clone(org), nil
}

func (r *organizationRepo) GetByCode(_ context.Context, code string) (*store.Organization, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	for _, org := range r.d.orgs {
		if strings.EqualFold(org.Code, code) {
			return clone(org), nil
		}
	}

	return nil, store.ErrNotFound
}

func (r *organizationRepo) List(_ context.Context, params store.ListParams) ([]*store.Organization, int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var orgs []*store.Organization
	for _, org := range r.d.orgs {
		orgs = append(orgs, clone(org))
	}

	orgs, total := page(orgs, func(o *store.Organization) time.Time { return o.CreatedAt }, params)

	return orgs, total, nil
}

func (r *organizationRepo) Update(_ context.Context, org *store.Organization) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if _, ok := r.d.orgs[org.ID]; !ok {
		return store.ErrNotFound
	}

	stamp(nil, &org.UpdatedAt)
	r.d.orgs[org.ID] = clone(org)

	return nil
}

type branchRepo struct {
	d *data
}

func (r *branchRepo) Create(ctx context.Context, branch *store.Branch) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	ensureID(&branch.ID)
	defaultTenant(ctx, &branch.OrganizationID, nil)
	stamp(&branch.CreatedAt, &branch.UpdatedAt)

	for _, existing := range r.d.branches {
		if existing.OrganizationID == branch.OrganizationID && strings.EqualFold(existing.Code, branch.Code) {
			return store.ErrConflict
		}
	}

	r.d.branches[branch.ID] = clone(branch)

	return nil
}

func (r *branchRepo) GetByID(ctx context.Context, id uuid.UUID) (*store.Branch, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	branch, ok := r.d.branches[id]
	if !ok || !orgVisible(ctx, branch.OrganizationID) {
		return nil, store.ErrNotFound
	}

	return clone(branch), nil
}

func (r *branchRepo) GetByCode(_ context.Context, orgID uuid.UUID, code string) (*store.Branch, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	for _, branch := range r.d.branches {
		if branch.OrganizationID == orgID && strings.EqualFold(branch.Code, code) {
			return clone(branch), nil
		}
	}

	return nil, store.ErrNotFound
}

func (r *branchRepo) List(ctx context.Context, params store.ListParams) ([]*store.Branch, int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var branches []*store.Branch
	for _, branch := range r.d.branches {
		if orgVisible(ctx, branch.OrganizationID) {
			branches = append(branches, clone(branch))
		}
	}

	branches, total := page(branches, func(b *store.Branch) time.Time { return b.CreatedAt }, params)

	return branches, total, nil
}

func (r *branchRepo) CountByOrganization(_ context.Context, orgID uuid.UUID) (int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var total int64
	for _, branch := range r.d.branches {
		if branch.OrganizationID == orgID {
			total++
		}
	}

	return total, nil
}

func (r *branchRepo) Update(_ context.Context, branch *store.Branch) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if _, ok := r.d.branches[branch.ID]; !ok {
		return store.ErrNotFound
	}

	stamp(nil, &branch.UpdatedAt)
	r.d.branches[branch.ID] = clone(branch)

	return nil
}

func (r *branchRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	branch, ok := r.d.branches[id]
	if !ok || !orgVisible(ctx, branch.OrganizationID) {
		return store.ErrNotFound
	}

	delete(r.d.branches, id)

	return nil
}

type userRepo struct {
	d *data
}

func (r *userRepo) Create(_ context.Context, user *store.User) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	ensureID(&user.ID)
	stamp(&user.CreatedAt, &user.UpdatedAt)

	for _, existing := range r.d.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return store.ErrConflict
		}
	}

	r.d.users[user.ID] = clone(user)

	return nil
}

func (r *userRepo) GetByID(_ context.Context, id uuid.UUID) (*store.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	user, ok := r.d.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	return clone(user), nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*store.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	for _, user := range r.d.users {
		if strings.EqualFold(user.Email, email) {
			return clone(user), nil
		}
	}

	return nil, store.ErrNotFound
}

func (r *userRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	for _, user := range r.d.users {
		if strings.EqualFold(user.Email, email) {
			return true, nil
		}
	}

	return false, nil
}

func (r *userRepo) List(ctx context.Context, params store.ListParams) ([]*store.User, int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var users []*store.User
	for _, user := range r.d.users {
		if orgPtrVisible(ctx, user.OrganizationID) {
			users = append(users, clone(user))
		}
	}

	users, total := page(users, func(u *store.User) time.Time { return u.CreatedAt }, params)

	return users, total, nil
}

func (r *userRepo) Update(_ context.Context, user *store.User) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if _, ok := r.d.users[user.ID]; !ok {
		return store.ErrNotFound
	}

	stamp(nil, &user.UpdatedAt)
	r.d.users[user.ID] = clone(user)

	return nil
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var total int64
	for _, user := range r.d.users {
		if orgPtrVisible(ctx, user.OrganizationID) {
			total++
		}
	}

	return total, nil
}

func (r *userRepo) CountByRole(ctx context.Context, role scopes.Role) (int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var total int64
	for _, user := range r.d.users {
		if user.Role == role && orgPtrVisible(ctx, user.OrganizationID) {
			total++
		}
	}

	return total, nil
}

func (r *userRepo) CountByActive(ctx context.Context, active bool) (int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var total int64
	for _, user := range r.d.users {
		if user.IsActive == active && orgPtrVisible(ctx, user.OrganizationID) {
			total++
		}
	}

	return total, nil
}
