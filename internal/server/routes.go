package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/authz"
	"github.com/mbgplatform/mbg/internal/scopes"
	"github.com/mbgplatform/mbg/internal/server/api"
	"github.com/mbgplatform/mbg/internal/server/biz"
	"github.com/mbgplatform/mbg/internal/server/middleware"
)

type Handlers struct {
	fx.In

	Auth          *api.AuthHandlers
	Organizations *api.OrganizationHandlers
	Branches      *api.BranchHandlers
	Users         *api.UserHandlers
	Schools       *api.SchoolHandlers
	Students      *api.StudentHandlers
	Meals         *api.MealHandlers
	Suppliers     *api.SupplierHandlers
	Orders        *api.OrderHandlers
	Documents     *api.DocumentHandlers
	Finance       *api.FinanceHandlers
	Audit         *api.AuditHandlers
	Permissions   *api.PermissionHandlers
	Governance    *api.GovernanceHandlers
	System        *api.SystemHandlers
}

type Services struct {
	fx.In

	AuthService *biz.AuthService
	Checker     authz.Checker
}

// SetupRoutes wires the middleware chain and the declarative
// route-to-permission table.
func SetupRoutes(server *Server, handlers Handlers, services Services) {
	server.Use(middleware.AccessLog())
	server.Use(middleware.WithTracing(server.Config.Trace))

	if server.Config.CORS.Enabled {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = server.Config.CORS.AllowedOrigins
		corsConfig.AllowMethods = server.Config.CORS.AllowedMethods
		corsConfig.AllowHeaders = server.Config.CORS.AllowedHeaders
		corsConfig.ExposeHeaders = server.Config.CORS.ExposedHeaders
		corsConfig.AllowCredentials = server.Config.CORS.AllowCredentials
		corsConfig.MaxAge = server.Config.CORS.MaxAge

		corsHandler := cors.New(corsConfig)
		server.Use(corsHandler)
		server.OPTIONS("*any", corsHandler)
	}

	// Token resolution is fail-open: requests without a valid token pass
	// through unauthenticated and are rejected by the gates below.
	server.Use(middleware.WithAuthContext(services.AuthService))

	// Health and version - DO NOT AUTH
	server.GET("/health", handlers.System.Health)
	server.GET("/version", handlers.System.Version)

	v1 := server.Group("/api/v1")

	authGroup := v1.Group("/auth")
	{
		// Register, login and refresh - DO NOT AUTH
		authGroup.POST("/register", handlers.Auth.Register)
		authGroup.POST("/login", handlers.Auth.Login)
		authGroup.POST("/refresh", handlers.Auth.Refresh)

		authGroup.GET("/me", middleware.RequireAuth(), handlers.Auth.Me)
	}

	require := func(name scopes.PermissionName) []gin.HandlerFunc {
		return []gin.HandlerFunc{middleware.RequirePermission(services.Checker, name)}
	}

	orgs := v1.Group("/organizations")
	{
		orgs.POST("", append(require(scopes.PermOrgCreate), handlers.Organizations.Create)...)
		orgs.GET("", append(require(scopes.PermOrgRead), handlers.Organizations.List)...)
		orgs.GET("/:id", append(require(scopes.PermOrgRead), handlers.Organizations.Get)...)
		orgs.GET("/code/:code", append(require(scopes.PermOrgRead), handlers.Organizations.GetByCode)...)
		orgs.PUT("/:id", append(require(scopes.PermOrgUpdate), handlers.Organizations.Update)...)
	}

	branches := v1.Group("/branches")
	{
		branches.POST("", append(require(scopes.PermBranchCreate), handlers.Branches.Create)...)
		branches.GET("", append(require(scopes.PermBranchRead), handlers.Branches.List)...)
		branches.GET("/:id", append(require(scopes.PermBranchRead), handlers.Branches.Get)...)
		branches.PUT("/:id", append(require(scopes.PermBranchUpdate), handlers.Branches.Update)...)
		branches.DELETE("/:id", append(require(scopes.PermBranchDelete), handlers.Branches.Delete)...)
	}

	users := v1.Group("/users")
	{
		users.GET("", append(require(scopes.PermUserRead), handlers.Users.List)...)
		users.GET("/:id", append(require(scopes.PermUserRead), handlers.Users.Get)...)
		users.PUT("/:id", append(require(scopes.PermUserManage), handlers.Users.Update)...)
		users.PUT("/:id/role", append(require(scopes.PermUserManage), handlers.Users.UpdateRole)...)
		users.POST("/:id/activate", append(require(scopes.PermUserManage), handlers.Users.Activate)...)
		users.POST("/:id/deactivate", append(require(scopes.PermUserManage), handlers.Users.Deactivate)...)
	}

	schools := v1.Group("/schools")
	{
		schools.POST("", append(require(scopes.PermSchoolCreate), handlers.Schools.Create)...)
		schools.GET("", append(require(scopes.PermSchoolRead), handlers.Schools.List)...)
		schools.GET("/:id", append(require(scopes.PermSchoolRead), handlers.Schools.Get)...)
		schools.PUT("/:id", append(require(scopes.PermSchoolUpdate), handlers.Schools.Update)...)
		schools.DELETE("/:id", append(require(scopes.PermSchoolDelete), handlers.Schools.Delete)...)
	}

	students := v1.Group("/students")
	{
		students.POST("", append(require(scopes.PermStudentCreate), handlers.Students.Create)...)
		students.GET("", append(require(scopes.PermStudentRead), handlers.Students.List)...)
		students.GET("/:id", append(require(scopes.PermStudentRead), handlers.Students.Get)...)
		students.PUT("/:id", append(require(scopes.PermStudentUpdate), handlers.Students.Update)...)
		students.DELETE("/:id", append(require(scopes.PermStudentDelete), handlers.Students.Delete)...)
	}

	meals := v1.Group("/meals")
	{
		meals.POST("", append(require(scopes.PermMealCreate), handlers.Meals.Create)...)
		meals.GET("", append(require(scopes.PermMealRead), handlers.Meals.List)...)
		meals.GET("/:id", append(require(scopes.PermMealRead), handlers.Meals.Get)...)
		meals.PUT("/:id", append(require(scopes.PermMealUpdate), handlers.Meals.Update)...)
		meals.DELETE("/:id", append(require(scopes.PermMealDelete), handlers.Meals.Delete)...)
	}

	suppliers := v1.Group("/suppliers")
	{
		suppliers.POST("", append(require(scopes.PermSupplierCreate), handlers.Suppliers.Create)...)
		suppliers.GET("", append(require(scopes.PermSupplierRead), handlers.Suppliers.List)...)
		suppliers.GET("/:id", append(require(scopes.PermSupplierRead), handlers.Suppliers.Get)...)
		suppliers.PUT("/:id", append(require(scopes.PermSupplierUpdate), handlers.Suppliers.Update)...)
		suppliers.DELETE("/:id", append(require(scopes.PermSupplierDelete), handlers.Suppliers.Delete)...)
	}

	orders := v1.Group("/orders")
	{
		orders.POST("", append(require(scopes.PermOrderCreate), handlers.Orders.Create)...)
		orders.GET("", append(require(scopes.PermOrderRead), handlers.Orders.List)...)
		orders.GET("/:id", append(require(scopes.PermOrderRead), handlers.Orders.Get)...)
		orders.PUT("/:id/status", append(require(scopes.PermOrderUpdate), handlers.Orders.UpdateStatus)...)
		orders.DELETE("/:id", append(require(scopes.PermOrderDelete), handlers.Orders.Delete)...)
	}

	documents := v1.Group("/documents")
	{
		documents.POST("", append(require(scopes.PermDocumentSubmit), handlers.Documents.Submit)...)
		documents.GET("", append(require(scopes.PermDocumentRead), handlers.Documents.List)...)
		documents.GET("/:id", append(require(scopes.PermDocumentRead), handlers.Documents.Get)...)
		documents.POST("/:id/review", append(require(scopes.PermDocumentReview), handlers.Documents.Review)...)
	}

	finance := v1.Group("/finance/records")
	{
		finance.POST("", append(require(scopes.PermFinanceCreate), handlers.Finance.Create)...)
		finance.GET("", append(require(scopes.PermFinanceRead), handlers.Finance.List)...)
		finance.GET("/:id", append(require(scopes.PermFinanceRead), handlers.Finance.Get)...)
	}

	audit := v1.Group("/audit-logs", require(scopes.PermAuditRead)...)
	{
		audit.GET("", handlers.Audit.List)
		audit.GET("/analytics", handlers.Audit.Analytics)
	}

	// Role-permission administration stays with the top governance role.
	permissions := v1.Group("/permissions", require(scopes.PermGovernanceRead)...)
	{
		permissions.GET("", handlers.Permissions.List)
		permissions.GET("/roles/:role", handlers.Permissions.RoleGrants)
		permissions.POST("/roles/:role/grant", handlers.Permissions.Grant)
		permissions.POST("/roles/:role/revoke", handlers.Permissions.Revoke)
	}

	governance := v1.Group("/governance")
	{
		governance.GET("/dashboard", append(require(scopes.PermGovernanceRead), handlers.Governance.Dashboard)...)
	}
}
