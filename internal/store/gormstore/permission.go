package gormstore

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbgplatform/mbg/internal/scopes"
	"github.com/mbgplatform/mbg/internal/store"
)

type permissionRepo struct {
	db *gorm.DB
}

func (r *permissionRepo) Create(ctx context.Context, perm *store.Permission) error {
	ensureID(&perm.ID)
	return translateErr(r.db.WithContext(ctx).Create(perm).Error)
}

func (r *permissionRepo) GetByName(ctx context.Context, name scopes.PermissionName) (*store.Permission, error) {
	var perm store.Permission
	if err := r.db.WithContext(ctx).First(&perm, "name = ?", name).Error; err != nil {
		return nil, translateErr(err)
	}

	return &perm, nil
}

func (r *permissionRepo) List(ctx context.Context) ([]*store.Permission, error) {
	var perms []*store.Permission
	if err := r.db.WithContext(ctx).Order("name").Find(&perms).Error; err != nil {
		return nil, translateErr(err)
	}

	return perms, nil
}

type rolePermissionRepo struct {
	db *gorm.DB
}

func (r *rolePermissionRepo) Grant(ctx context.Context, role scopes.Role, permissionID uuid.UUID) error {
	err := r.db.WithContext(ctx).Create(&store.RolePermission{
		Role:         role,
		PermissionID: permissionID,
	}).Error

	return translateErr(err)
}

func (r *rolePermissionRepo) Revoke(ctx context.Context, role scopes.Role, permissionID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Delete(&store.RolePermission{}, "role = ? AND permission_id = ?", role, permissionID)
	if res.Error != nil {
		return translateErr(res.Error)
	}

	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}

	return nil
}

func (r *rolePermissionRepo) PermissionsForRole(ctx context.Context, role scopes.Role) ([]*store.Permission, error) {
	var perms []*store.Permission
	err := r.db.WithContext(ctx).
		Model(&store.Permission{}).
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role = ?", role).
		Order("permissions.name").
		Find(&perms).Error
	if err != nil {
		return nil, translateErr(err)
	}

	return perms, nil
}
