package gormstore

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbgplatform/mbg/internal/store"
)

type studentRepo struct {
	db *gorm.DB
}

func (r *studentRepo) Create(ctx context.Context, student *store.Student) error {
	ensureID(&student.ID)
	defaultTenant(ctx, &student.OrganizationID, &student.BranchID)

	return translateErr(r.db.WithContext(ctx).Create(student).Error)
}

func (r *studentRepo) GetByID(ctx context.Context, id uuid.UUID) (*store.Student, error) {
	var student store.Student
	if err := orgScoped(ctx, r.db.WithContext(ctx)).First(&student, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}

	return &student, nil
}

func (r *studentRepo) List(ctx context.Context, params store.ListParams) ([]*store.Student, int64, error) {
	params = params.Normalize()

	var total int64
	if err := branchScoped(ctx, r.db.WithContext(ctx).Model(&store.Student{})).Count(&total).Error; err != nil {
		return nil, 0, translateErr(err)
	}

	var students []*store.Student
	err := branchScoped(ctx, r.db.WithContext(ctx)).
		Order("created_at DESC").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&students).Error
	if err != nil {
		return nil, 0, translateErr(err)
	}

	return students, total, nil
}

func (r *studentRepo) Update(ctx context.Context, student *store.Student) error {
	return translateErr(r.db.WithContext(ctx).Save(student).Error)
}

func (r *studentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := orgScoped(ctx, r.db.WithContext(ctx)).Delete(&store.Student{}, "id = ?", id)
	if res.Error != nil {
		return translateErr(res.Error)
	}

	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}

	return nil
}

func (r *studentRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := orgScoped(ctx, r.db.WithContext(ctx).Model(&store.Student{})).Count(&total).Error

	return total, translateErr(err)
}
