package biz

import (
	"context"
	"time"

	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"

	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/store"
)

type GovernanceServiceParams struct {
	fx.In

	Store *store.Store
	Audit *AuditService
}

func NewGovernanceService(params GovernanceServiceParams) *GovernanceService {
	return &GovernanceService{
		AbstractService: &AbstractService{store: params.Store},
		audit:           params.Audit,
	}
}

// GovernanceService produces the platform oversight dashboard. Route-level
// gating restricts it to the top governance role.
type GovernanceService struct {
	*AbstractService

	audit *AuditService
}

// Dashboard is the platform-wide oversight snapshot.
type Dashboard struct {
	TotalUsers       int64 `json:"total_users"`
	ActiveUsers      int64 `json:"active_users"`
	TotalSchools     int64 `json:"total_schools"`
	TotalStudents    int64 `json:"total_students"`
	TotalMeals       int64 `json:"total_meals"`
	TotalSuppliers   int64 `json:"total_suppliers"`
	TotalOrders      int64 `json:"total_orders"`
	PendingDocuments int64 `json:"pending_documents"`
	AuditLast24h     int64 `json:"audit_actions_last_24h"`
}

// GetDashboard gathers the counters concurrently.
func (s *GovernanceService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	dashboard := &Dashboard{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		dashboard.TotalUsers, err = s.store.Users.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		dashboard.ActiveUsers, err = s.store.Users.CountByActive(gctx, true)
		return err
	})
	g.Go(func() (err error) {
		dashboard.TotalSchools, err = s.store.Schools.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		dashboard.TotalStudents, err = s.store.Students.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		dashboard.TotalMeals, err = s.store.Meals.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		dashboard.TotalSuppliers, err = s.store.Suppliers.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		dashboard.TotalOrders, err = s.store.Orders.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		dashboard.PendingDocuments, err = s.store.Documents.CountByStatus(gctx, store.DocumentStatusPending)
		return err
	})
	g.Go(func() (err error) {
		dashboard.AuditLast24h, err = s.store.AuditLogs.CountSince(gctx, time.Now().Add(-24*time.Hour))
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, errs.Unexpected(err)
	}

	return dashboard, nil
}
