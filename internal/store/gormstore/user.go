package gormstore

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbgplatform/mbg/internal/scopes"
	"github.com/mbgplatform/mbg/internal/store"
)

type userRepo struct {
	db *gorm.DB
}

func (r *userRepo) Create(ctx context.Context, user *store.User) error {
	ensureID(&user.ID)
	return translateErr(r.db.WithContext(ctx).Create(user).Error)
}

// GetByID is not tenant-filtered: identities are resolved before the tenant
// scope exists (token verification) and audit entries must keep resolving
// actors across organizations.
func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*store.User, error) {
	var user store.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}

	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*store.User, error) {
	var user store.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, translateErr(err)
	}

	return &user, nil
}

func (r *userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&store.User{}).
		Where("email = ?", email).
		Count(&total).Error

	return total > 0, translateErr(err)
}

func (r *userRepo) List(ctx context.Context, params store.ListParams) ([]*store.User, int64, error) {
	params = params.Normalize()

	var total int64
	if err := orgScoped(ctx, r.db.WithContext(ctx).Model(&store.User{})).Count(&total).Error; err != nil {
		return nil, 0, translateErr(err)
	}

	var users []*store.User
	err := orgScoped(ctx, r.db.WithContext(ctx)).
		Order("created_at DESC").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, translateErr(err)
	}

	return users, total, nil
}

func (r *userRepo) Update(ctx context.Context, user *store.User) error {
	return translateErr(r.db.WithContext(ctx).Save(user).Error)
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := orgScoped(ctx, r.db.WithContext(ctx).Model(&store.User{})).Count(&total).Error

	return total, translateErr(err)
}

func (r *userRepo) CountByRole(ctx context.Context, role scopes.Role) (int64, error) {
	var total int64
	err := orgScoped(ctx, r.db.WithContext(ctx).Model(&store.User{})).
		Where("role = ?", role).
		Count(&total).Error

	return total, translateErr(err)
}

func (r *userRepo) CountByActive(ctx context.Context, active bool) (int64, error) {
	var total int64
	err := orgScoped(ctx, r.db.WithContext(ctx).Model(&store.User{})).
		Where("is_active = ?", active).
		Count(&total).Error

	return total, translateErr(err)
}
