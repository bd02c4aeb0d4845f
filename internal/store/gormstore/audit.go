package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mbgplatform/mbg/internal/store"
)

type auditLogRepo struct {
	db *gorm.DB
}

// Create writes on a fresh session so the row never joins a caller
// transaction: a rolled-back business mutation must not erase an already
// written audit entry.
func (r *auditLogRepo) Create(ctx context.Context, entry *store.AuditLog) error {
	ensureID(&entry.ID)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	session := r.db.Session(&gorm.Session{NewDB: true}).WithContext(ctx)

	return translateErr(session.Create(entry).Error)
}

func (r *auditLogRepo) List(ctx context.Context, filter store.AuditFilter, params store.ListParams) ([]*store.AuditLog, int64, error) {
	params = params.Normalize()

	query := func() *gorm.DB {
		tx := r.db.WithContext(ctx).Model(&store.AuditLog{})
		if filter.UserID != nil {
			tx = tx.Where("user_id = ?", *filter.UserID)
		}

		if filter.ResourceType != "" {
			tx = tx.Where("resource_type = ?", filter.ResourceType)
		}

		if filter.From != nil {
			tx = tx.Where("created_at >= ?", *filter.From)
		}

		if filter.To != nil {
			tx = tx.Where("created_at <= ?", *filter.To)
		}

		return tx
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, translateErr(err)
	}

	var entries []*store.AuditLog
	err := query().
		Order("created_at DESC").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, translateErr(err)
	}

	return entries, total, nil
}

type bucketRow struct {
	Bucket string
	Total  int64
}

func (r *auditLogRepo) groupBy(ctx context.Context, expr string) (map[string]int64, error) {
	var rows []bucketRow
	err := r.db.WithContext(ctx).
		Model(&store.AuditLog{}).
		Select(expr + " AS bucket, COUNT(*) AS total").
		Group("bucket").
		Scan(&rows).Error
	if err != nil {
		return nil, translateErr(err)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Bucket] = row.Total
	}

	return out, nil
}

func (r *auditLogRepo) Analytics(ctx context.Context) (*store.AuditAnalytics, error) {
	analytics := &store.AuditAnalytics{}

	err := r.db.WithContext(ctx).Model(&store.AuditLog{}).Count(&analytics.TotalActions).Error
	if err != nil {
		return nil, translateErr(err)
	}

	if analytics.ActionsByType, err = r.groupBy(ctx, "action"); err != nil {
		return nil, err
	}

	if analytics.ActionsByResource, err = r.groupBy(ctx, "resource_type"); err != nil {
		return nil, err
	}

	if analytics.ActionsByActor, err = r.groupBy(ctx, "COALESCE(user_id::text, 'system')"); err != nil {
		return nil, err
	}

	if analytics.ActionsPerDay, err = r.groupBy(ctx, "to_char(created_at, 'YYYY-MM-DD')"); err != nil {
		return nil, err
	}

	return analytics, nil
}

func (r *auditLogRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&store.AuditLog{}).
		Where("created_at >= ?", since).
		Count(&total).Error

	return total, translateErr(err)
}
