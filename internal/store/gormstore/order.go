package gormstore

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbgplatform/mbg/internal/store"
)

type orderRepo struct {
	db *gorm.DB
}

func (r *orderRepo) Create(ctx context.Context, order *store.Order) error {
	ensureID(&order.ID)
	defaultTenant(ctx, &order.OrganizationID, &order.BranchID)

	return translateErr(r.db.WithContext(ctx).Create(order).Error)
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*store.Order, error) {
	var order store.Order
	if err := orgScoped(ctx, r.db.WithContext(ctx)).First(&order, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}

	return &order, nil
}

func (r *orderRepo) List(ctx context.Context, params store.ListParams) ([]*store.Order, int64, error) {
	params = params.Normalize()

	var total int64
	if err := branchScoped(ctx, r.db.WithContext(ctx).Model(&store.Order{})).Count(&total).Error; err != nil {
		return nil, 0, translateErr(err)
	}

	var orders []*store.Order
	err := branchScoped(ctx, r.db.WithContext(ctx)).
		Order("created_at DESC").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, translateErr(err)
	}

	return orders, total, nil
}

func (r *orderRepo) Update(ctx context.Context, order *store.Order) error {
	return translateErr(r.db.WithContext(ctx).Save(order).Error)
}

func (r *orderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := orgScoped(ctx, r.db.WithContext(ctx)).Delete(&store.Order{}, "id = ?", id)
	if res.Error != nil {
		return translateErr(res.Error)
	}

	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}

	return nil
}

func (r *orderRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := orgScoped(ctx, r.db.WithContext(ctx).Model(&store.Order{})).Count(&total).Error

	return total, translateErr(err)
}
