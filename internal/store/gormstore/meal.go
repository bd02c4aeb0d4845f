package gormstore

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbgplatform/mbg/internal/store"
)

type mealRepo struct {
	db *gorm.DB
}

func (r *mealRepo) Create(ctx context.Context, meal *store.Meal) error {
	ensureID(&meal.ID)
	defaultTenant(ctx, &meal.OrganizationID, nil)

	return translateErr(r.db.WithContext(ctx).Create(meal).Error)
}

func (r *mealRepo) GetByID(ctx context.Context, id uuid.UUID) (*store.Meal, error) {
	var meal store.Meal
	if err := orgScoped(ctx, r.db.WithContext(ctx)).First(&meal, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}

	return &meal, nil
}

func (r *mealRepo) List(ctx context.Context, params store.ListParams) ([]*store.Meal, int64, error) {
	params = params.Normalize()

	var total int64
	if err := orgScoped(ctx, r.db.WithContext(ctx).Model(&store.Meal{})).Count(&total).Error; err != nil {
		return nil, 0, translateErr(err)
	}

	var meals []*store.Meal
	err := orgScoped(ctx, r.db.WithContext(ctx)).
		Order("created_at DESC").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&meals).Error
	if err != nil {
		return nil, 0, translateErr(err)
	}

	return meals, total, nil
}

func (r *mealRepo) Update(ctx context.Context, meal *store.Meal) error {
	return translateErr(r.db.WithContext(ctx).Save(meal).Error)
}

func (r *mealRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := orgScoped(ctx, r.db.WithContext(ctx)).Delete(&store.Meal{}, "id = ?", id)
	if res.Error != nil {
		return translateErr(res.Error)
	}

	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}

	return nil
}

func (r *mealRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := orgScoped(ctx, r.db.WithContext(ctx).Model(&store.Meal{})).Count(&total).Error

	return total, translateErr(err)
}
