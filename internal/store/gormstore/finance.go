package gormstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbgplatform/mbg/internal/store"
)

type financialRecordRepo struct {
	db *gorm.DB
}

func (r *financialRecordRepo) Create(ctx context.Context, record *store.FinancialRecord) error {
	ensureID(&record.ID)
	defaultTenant(ctx, &record.OrganizationID, &record.BranchID)

	if record.RecordedAt.IsZero() {
		record.RecordedAt = time.Now()
	}

	return translateErr(r.db.WithContext(ctx).Create(record).Error)
}

func (r *financialRecordRepo) GetByID(ctx context.Context, id uuid.UUID) (*store.FinancialRecord, error) {
	var record store.FinancialRecord
	if err := orgScoped(ctx, r.db.WithContext(ctx)).First(&record, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}

	return &record, nil
}

func (r *financialRecordRepo) List(ctx context.Context, from, to *time.Time, params store.ListParams) ([]*store.FinancialRecord, int64, error) {
	params = params.Normalize()

	query := func() *gorm.DB {
		tx := branchScoped(ctx, r.db.WithContext(ctx).Model(&store.FinancialRecord{}))
		if from != nil {
			tx = tx.Where("recorded_at >= ?", *from)
		}

		if to != nil {
			tx = tx.Where("recorded_at <= ?", *to)
		}

		return tx
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, translateErr(err)
	}

	var records []*store.FinancialRecord
	err := query().
		Order("recorded_at DESC").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, translateErr(err)
	}

	return records, total, nil
}
