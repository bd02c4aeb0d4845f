package biz

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mbgplatform/mbg/internal/authz"
	"github.com/mbgplatform/mbg/internal/store"
	"github.com/mbgplatform/mbg/internal/store/memstore"
)

// testEnv wires every service onto a seeded in-memory store.
type testEnv struct {
	Store       *store.Store
	Audit       *AuditService
	Auth        *AuthService
	Permissions *PermissionService
	Orgs        *OrganizationService
	Branches    *BranchService
	Users       *UserService
	Schools     *SchoolService
	Students    *StudentService
	Meals       *MealService
	Suppliers   *SupplierService
	Orders      *OrderService
	Documents   *DocumentService
	Finance     *FinanceService
	Governance  *GovernanceService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s := memstore.New()
	require.NoError(t, store.Seed(authz.NewSystemContext(context.Background()), s))

	return newTestEnvWithStore(t, s)
}

func newTestEnvWithStore(t *testing.T, s *store.Store) *testEnv {
	t.Helper()

	audit := NewAuditService(AuditServiceParams{Store: s})
	cfg := AuthConfig{
		SecretKey:       "test-secret-key",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	}

	return &testEnv{
		Store:       s,
		Audit:       audit,
		Auth:        NewAuthService(AuthServiceParams{Store: s, Config: cfg, Audit: audit}),
		Permissions: NewPermissionService(PermissionServiceParams{Store: s, Audit: audit}),
		Orgs:        NewOrganizationService(OrganizationServiceParams{Store: s, Audit: audit}),
		Branches:    NewBranchService(BranchServiceParams{Store: s, Audit: audit}),
		Users:       NewUserService(UserServiceParams{Store: s, Audit: audit}),
		Schools:     NewSchoolService(SchoolServiceParams{Store: s, Audit: audit}),
		Students:    NewStudentService(StudentServiceParams{Store: s, Audit: audit}),
		Meals:       NewMealService(MealServiceParams{Store: s, Audit: audit}),
		Suppliers:   NewSupplierService(SupplierServiceParams{Store: s, Audit: audit}),
		Orders:      NewOrderService(OrderServiceParams{Store: s, Audit: audit}),
		Documents:   NewDocumentService(DocumentServiceParams{Store: s, Audit: audit}),
		Finance:     NewFinanceService(FinanceServiceParams{Store: s, Audit: audit}),
		Governance:  NewGovernanceService(GovernanceServiceParams{Store: s, Audit: audit}),
	}
}

// systemCtx returns a context with a system principal, bypassing permission
// checks the way startup code does.
func systemCtx() context.Context {
	return authz.NewSystemContext(context.Background())
}

// mustOrg creates an organization for tests.
func mustOrg(t *testing.T, env *testEnv, code string, maxBranches int) *store.Organization {
	t.Helper()

	org, err := env.Orgs.Create(systemCtx(), CreateOrganizationInput{
		Code:        code,
		Name:        code + " Org",
		MaxBranches: maxBranches,
	})
	require.NoError(t, err)

	return org
}
