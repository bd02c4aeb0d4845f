package biz

import (
	"context"

	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/authz"
	"github.com/mbgplatform/mbg/internal/store"
)

var Module = fx.Module("biz",
	fx.Provide(NewAuditService),
	fx.Provide(NewAuthService),
	fx.Provide(NewPermissionService),
	fx.Provide(NewOrganizationService),
	fx.Provide(NewBranchService),
	fx.Provide(NewUserService),
	fx.Provide(NewSchoolService),
	fx.Provide(NewStudentService),
	fx.Provide(NewMealService),
	fx.Provide(NewSupplierService),
	fx.Provide(NewOrderService),
	fx.Provide(NewDocumentService),
	fx.Provide(NewFinanceService),
	fx.Provide(NewGovernanceService),
	fx.Provide(func(svc *PermissionService) authz.Checker { return svc }),
	fx.Invoke(func(lc fx.Lifecycle, s *store.Store) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return store.Seed(authz.NewSystemContext(ctx), s)
			},
		})
	}),
)
