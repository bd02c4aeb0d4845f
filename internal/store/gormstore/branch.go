package gormstore

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbgplatform/mbg/internal/store"
)

type branchRepo struct {
	db *gorm.DB
}

func (r *branchRepo) Create(ctx context.Context, branch *store.Branch) error {
	ensureID(&branch.ID)
	defaultTenant(ctx, &branch.OrganizationID, nil)

	return translateErr(r.db.WithContext(ctx).Create(branch).Error)
}

func (r *branchRepo) GetByID(ctx context.Context, id uuid.UUID) (*store.Branch, error) {
	var branch store.Branch
	if err := orgScoped(ctx, r.db.WithContext(ctx)).First(&branch, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}

	return &branch, nil
}

func (r *branchRepo) GetByCode(ctx context.Context, orgID uuid.UUID, code string) (*store.Branch, error) {
	var branch store.Branch
	err := r.db.WithContext(ctx).
		First(&branch, "organization_id = ? AND code = ?", orgID, code).Error
	if err != nil {
		return nil, translateErr(err)
	}

	return &branch, nil
}

func (r *branchRepo) List(ctx context.Context, params store.ListParams) ([]*store.Branch, int64, error) {
	params = params.Normalize()

	var total int64
	if err := orgScoped(ctx, r.db.WithContext(ctx).Model(&store.Branch{})).Count(&total).Error; err != nil {
		return nil, 0, translateErr(err)
	}

	var branches []*store.Branch
	err := orgScoped(ctx, r.db.WithContext(ctx)).
		Order("created_at DESC").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&branches).Error
	if err != nil {
		return nil, 0, translateErr(err)
	}

	return branches, total, nil
}

func (r *branchRepo) CountByOrganization(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&store.Branch{}).
		Where("organization_id = ?", orgID).
		Count(&total).Error

	return total, translateErr(err)
}

func (r *branchRepo) Update(ctx context.Context, branch *store.Branch) error {
	return translateErr(r.db.WithContext(ctx).Save(branch).Error)
}

func (r *branchRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := orgScoped(ctx, r.db.WithContext(ctx)).Delete(&store.Branch{}, "id = ?", id)
	if res.Error != nil {
		return translateErr(res.Error)
	}

	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}

	return nil
}
