package gormstore

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbgplatform/mbg/internal/store"
)

type schoolRepo struct {
	db *gorm.DB
}

func (r *schoolRepo) Create(ctx context.Context, school *store.School) error {
	ensureID(&school.ID)
	defaultTenant(ctx, &school.OrganizationID, &school.BranchID)

	return translateErr(r.db.WithContext(ctx).Create(school).Error)
}

func (r *schoolRepo) GetByID(ctx context.Context, id uuid.UUID) (*store.School, error) {
	var school store.School
	if err := orgScoped(ctx, r.db.WithContext(ctx)).First(&school, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}

	return &school, nil
}

func (r *schoolRepo) List(ctx context.Context, params store.ListParams) ([]*store.School, int64, error) {
	params = params.Normalize()

	var total int64
	if err := branchScoped(ctx, r.db.WithContext(ctx).Model(&store.School{})).Count(&total).Error; err != nil {
		return nil, 0, translateErr(err)
	}

	var schools []*store.School
	err := branchScoped(ctx, r.db.WithContext(ctx)).
		Order("created_at DESC").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&schools).Error
	if err != nil {
		return nil, 0, translateErr(err)
	}

	return schools, total, nil
}

func (r *schoolRepo) Update(ctx context.Context, school *store.School) error {
	return translateErr(r.db.WithContext(ctx).Save(school).Error)
}

func (r *schoolRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := orgScoped(ctx, r.db.WithContext(ctx)).Delete(&store.School{}, "id = ?", id)
	if res.Error != nil {
		return translateErr(res.Error)
	}

	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}

	return nil
}

func (r *schoolRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := orgScoped(ctx, r.db.WithContext(ctx).Model(&store.School{})).Count(&total).Error

	return total, translateErr(err)
}
