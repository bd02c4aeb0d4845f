package gormstore

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbgplatform/mbg/internal/store"
)

type supplierRepo struct {
	db *gorm.DB
}

func (r *supplierRepo) Create(ctx context.Context, supplier *store.Supplier) error {
	ensureID(&supplier.ID)
	defaultTenant(ctx, &supplier.OrganizationID, nil)

	return translateErr(r.db.WithContext(ctx).Create(supplier).Error)
}

func (r *supplierRepo) GetByID(ctx context.Context, id uuid.UUID) (*store.Supplier, error) {
	var supplier store.Supplier
	if err := orgScoped(ctx, r.db.WithContext(ctx)).First(&supplier, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}

	return &supplier, nil
}

func (r *supplierRepo) List(ctx context.Context, params store.ListParams) ([]*store.Supplier, int64, error) {
	params = params.Normalize()

	var total int64
	if err := orgScoped(ctx, r.db.WithContext(ctx).Model(&store.Supplier{})).Count(&total).Error; err != nil {
		return nil, 0, translateErr(err)
	}

	var suppliers []*store.Supplier
	err := orgScoped(ctx, r.db.WithContext(ctx)).
		Order("created_at DESC").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&suppliers).Error
	if err != nil {
		return nil, 0, translateErr(err)
	}

	return suppliers, total, nil
}

func (r *supplierRepo) Update(ctx context.Context, supplier *store.Supplier) error {
	return translateErr(r.db.WithContext(ctx).Save(supplier).Error)
}

func (r *supplierRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := orgScoped(ctx, r.db.WithContext(ctx)).Delete(&store.Supplier{}, "id = ?", id)
	if res.Error != nil {
		return translateErr(res.Error)
	}

	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}

	return nil
}

func (r *supplierRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := orgScoped(ctx, r.db.WithContext(ctx).Model(&store.Supplier{})).Count(&total).Error

	return total, translateErr(err)
}
