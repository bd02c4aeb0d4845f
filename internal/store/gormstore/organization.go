package gormstore

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbgplatform/mbg/internal/store"
)

type organizationRepo struct {
	db *gorm.DB
}

func (r *organizationRepo) Create(ctx context.Context, org *store.Organization) error {
	ensureID(&org.ID)
	return translateErr(r.db.WithContext(ctx).Create(org).Error)
}

func (r *organizationRepo) GetByID(ctx context.Context, id uuid.UUID) (*store.Organization, error) {
	var org store.Organization
	if err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}

	return &org, nil
}

func (r *organizationRepo) GetByCode(ctx context.Context, code string) (*store.Organization, error) {
	var org store.Organization
	if err := r.db.WithContext(ctx).First(&org, "code = ?", code).Error; err != nil {
		return nil, translateErr(err)
	}

	return &org, nil
}

func (r *organizationRepo) List(ctx context.Context, params store.ListParams) ([]*store.Organization, int64, error) {
	params = params.Normalize()

	var total int64
	if err := r.db.WithContext(ctx).Model(&store.Organization{}).Count(&total).Error; err != nil {
		return nil, 0, translateErr(err)
	}

	var orgs []*store.Organization
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&orgs).Error
	if err != nil {
		return nil, 0, translateErr(err)
	}

	return orgs, total, nil
}

func (r *organizationRepo) Update(ctx context.Context, org *store.Organization) error {
	return translateErr(r.db.WithContext(ctx).Save(org).Error)
}
