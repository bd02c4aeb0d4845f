package api

import "go.uber.org/fx"

var Module = fx.Module("api",
	fx.Provide(NewAuthHandlers),
	fx.Provide(NewOrganizationHandlers),
	fx.Provide(NewBranchHandlers),
	fx.Provide(NewUserHandlers),
	fx.Provide(NewSchoolHandlers),
	fx.Provide(NewStudentHandlers),
	fx.Provide(NewMealHandlers),
	fx.Provide(NewSupplierHandlers),
	fx.Provide(NewOrderHandlers),
	fx.Provide(NewDocumentHandlers),
	fx.Provide(NewFinanceHandlers),
	fx.Provide(NewAuditHandlers),
	fx.Provide(NewPermissionHandlers),
	fx.Provide(NewGovernanceHandlers),
	fx.Provide(NewSystemHandlers),
)
