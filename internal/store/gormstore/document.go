package gormstore

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbgplatform/mbg/internal/store"
)

type documentRepo struct {
	db *gorm.DB
}

func (r *documentRepo) Create(ctx context.Context, doc *store.Document) error {
	ensureID(&doc.ID)
	defaultTenant(ctx, &doc.OrganizationID, nil)

	return translateErr(r.db.WithContext(ctx).Create(doc).Error)
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*store.Document, error) {
	var doc store.Document
	if err := orgScoped(ctx, r.db.WithContext(ctx)).First(&doc, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}

	return &doc, nil
}

func (r *documentRepo) List(ctx context.Context, params store.ListParams) ([]*store.Document, int64, error) {
	params = params.Normalize()

	var total int64
	if err := orgScoped(ctx, r.db.WithContext(ctx).Model(&store.Document{})).Count(&total).Error; err != nil {
		return nil, 0, translateErr(err)
	}

	var docs []*store.Document
	err := orgScoped(ctx, r.db.WithContext(ctx)).
		Order("created_at DESC").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&docs).Error
	if err != nil {
		return nil, 0, translateErr(err)
	}

	return docs, total, nil
}

func (r *documentRepo) Update(ctx context.Context, doc *store.Document) error {
	return translateErr(r.db.WithContext(ctx).Save(doc).Error)
}

func (r *documentRepo) CountByStatus(ctx context.Context, status store.DocumentStatus) (int64, error) {
	var total int64
	err := orgScoped(ctx, r.db.WithContext(ctx).Model(&store.Document{})).
		Where("status = ?", status).
		Count(&total).Error

	return total, translateErr(err)
}
