package biz

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/authz"
	"github.com/mbgplatform/mbg/internal/contexts"
	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/log"
	"github.com/mbgplatform/mbg/internal/store"
)

type AuditServiceParams struct {
	fx.In

	Store *store.Store
}

func NewAuditService(params AuditServiceParams) *AuditService {
	return &AuditService{
		AbstractService: &AbstractService{store: params.Store},
	}
}

// AuditService appends to the action trail. Recording is best-effort: a
// failed audit write is logged and swallowed so it can never fail the
// business operation it describes.
type AuditService struct {
	*AbstractService
}

// Entry describes one state-changing action.
type Entry struct {
	Action       string
	ResourceType string
	ResourceID   *uuid.UUID
	// ActorID overrides the context principal, for flows like login where
	// the actor is identified before a principal exists.
	ActorID *uuid.UUID
	Details any
}

// Record appends an audit row. It never returns an error and never joins
// the caller's transaction.
func (s *AuditService) Record(ctx context.Context, entry Entry) {
	row := &store.AuditLog{
		UserID:       entry.ActorID,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
	}

	if row.UserID == nil {
		if p, ok := authz.GetPrincipal(ctx); ok && p.UserID != nil {
			row.UserID = p.UserID
		}
	}

	if entry.Details != nil {
		details, err := json.Marshal(entry.Details)
		if err != nil {
			log.Warn(ctx, "audit: details not serializable, recording without them",
				log.String("action", entry.Action),
				log.Cause(err),
			)
		} else {
			row.Details = string(details)
		}
	}

	if ip, ok := contexts.GetClientIP(ctx); ok {
		row.IPAddress = ip
	}

	if ua, ok := contexts.GetUserAgent(ctx); ok {
		row.UserAgent = ua
	}

	if err := s.store.AuditLogs.Create(ctx, row); err != nil {
		log.Warn(ctx, "audit: record failed",
			log.String("action", entry.Action),
			log.String("resource_type", entry.ResourceType),
			log.Cause(err),
		)
	}
}

// List returns audit entries matching the filter, newest first.
func (s *AuditService) List(ctx context.Context, filter store.AuditFilter, params store.ListParams) ([]*store.AuditLog, int64, error) {
	entries, total, err := s.store.AuditLogs.List(ctx, filter, params)
	if err != nil {
		return nil, 0, errs.Unexpected(err)
	}

	return entries, total, nil
}

// Analytics aggregates the trail for governance reporting.
func (s *AuditService) Analytics(ctx context.Context) (*store.AuditAnalytics, error) {
	analytics, err := s.store.AuditLogs.Analytics(ctx)
	if err != nil {
		return nil, errs.Unexpected(err)
	}

	return analytics, nil
}

// CountSince reports trail volume over a recent window.
func (s *AuditService) CountSince(ctx context.Context, since time.Time) (int64, error) {
	total, err := s.store.AuditLogs.CountSince(ctx, since)
	if err != nil {
		return 0, errs.Unexpected(err)
	}

	return total, nil
}
