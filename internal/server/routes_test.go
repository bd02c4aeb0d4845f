package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbgplatform/mbg/internal/authz"
	"github.com/mbgplatform/mbg/internal/objects"
	"github.com/mbgplatform/mbg/internal/server/api"
	"github.com/mbgplatform/mbg/internal/server/biz"
	"github.com/mbgplatform/mbg/internal/store"
	"github.com/mbgplatform/mbg/internal/store/memstore"
)

func newTestServer(t *testing.T) (*Server, *biz.AuthService) {
	t.Helper()

	s := memstore.New()
	require.NoError(t, store.Seed(authz.NewSystemContext(context.Background()), s))

	audit := biz.NewAuditService(biz.AuditServiceParams{Store: s})
	auth := biz.NewAuthService(biz.AuthServiceParams{
		Store: s,
		Config: biz.AuthConfig{
			SecretKey:       "routes-test-key",
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: 24 * time.Hour,
		},
		Audit: audit,
	})
	perms := biz.NewPermissionService(biz.PermissionServiceParams{Store: s, Audit: audit})
	users := biz.NewUserService(biz.UserServiceParams{Store: s, Audit: audit})

	handlers := Handlers{
		Auth:          api.NewAuthHandlers(api.AuthHandlersParams{AuthService: auth, UserService: users}),
		Organizations: api.NewOrganizationHandlers(api.OrganizationHandlersParams{OrganizationService: biz.NewOrganizationService(biz.OrganizationServiceParams{Store: s, Audit: audit})}),
		Branches:      api.NewBranchHandlers(api.BranchHandlersParams{BranchService: biz.NewBranchService(biz.BranchServiceParams{Store: s, Audit: audit})}),
		Users:         api.NewUserHandlers(api.UserHandlersParams{UserService: users}),
		Schools:       api.NewSchoolHandlers(api.SchoolHandlersParams{SchoolService: biz.NewSchoolService(biz.SchoolServiceParams{Store: s, Audit: audit})}),
		Students:      api.NewStudentHandlers(api.StudentHandlersParams{StudentService: biz.NewStudentService(biz.StudentServiceParams{Store: s, Audit: audit})}),
		Meals:         api.NewMealHandlers(api.MealHandlersParams{MealService: biz.NewMealService(biz.MealServiceParams{Store: s, Audit: audit})}),
		Suppliers:     api.NewSupplierHandlers(api.SupplierHandlersParams{SupplierService: biz.NewSupplierService(biz.SupplierServiceParams{Store: s, Audit: audit})}),
		Orders:        api.NewOrderHandlers(api.OrderHandlersParams{OrderService: biz.NewOrderService(biz.OrderServiceParams{Store: s, Audit: audit})}),
		Documents:     api.NewDocumentHandlers(api.DocumentHandlersParams{DocumentService: biz.NewDocumentService(biz.DocumentServiceParams{Store: s, Audit: audit})}),
		Finance:       api.NewFinanceHandlers(api.FinanceHandlersParams{FinanceService: biz.NewFinanceService(biz.FinanceServiceParams{Store: s, Audit: audit})}),
		Audit:         api.NewAuditHandlers(api.AuditHandlersParams{AuditService: audit}),
		Permissions:   api.NewPermissionHandlers(api.PermissionHandlersParams{PermissionService: perms}),
		Governance:    api.NewGovernanceHandlers(api.GovernanceHandlersParams{GovernanceService: biz.NewGovernanceService(biz.GovernanceServiceParams{Store: s, Audit: audit})}),
		System:        api.NewSystemHandlers(),
	}

	srv := New(Config{Debug: true, Name: "mbg-test"})
	SetupRoutes(srv, handlers, Services{AuthService: auth, Checker: perms})

	return srv, auth
}

func registerUser(t *testing.T, auth *biz.AuthService, email, role string) string {
	t.Helper()

	resp, err := auth.Register(authz.NewSystemContext(context.Background()), biz.RegisterInput{
		Email:    email,
		Password: "s3cret",
		Role:     role,
	})
	require.NoError(t, err)

	return resp.Tokens.AccessToken
}

func doJSON(srv *Server, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	return w
}

func TestPublicEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(srv, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	w = doJSON(srv, http.MethodGet, "/version", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "version")
}

func TestAuthFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(srv, http.MethodPost, "/api/v1/auth/register", "", `{
		"email": "admin@example.com",
		"password": "s3cret",
		"role": "SUPER_ADMIN",
		"first_name": "Root",
		"last_name": "Admin"
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp objects.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Tokens.AccessToken)
	require.NotEmpty(t, resp.Tokens.RefreshToken)

	t.Run("login", func(t *testing.T) {
		w := doJSON(srv, http.MethodPost, "/api/v1/auth/login", "", `{
			"email": "admin@example.com",
			"password": "s3cret"
		}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bad password is unauthorized", func(t *testing.T) {
		w := doJSON(srv, http.MethodPost, "/api/v1/auth/login", "", `{
			"email": "admin@example.com",
			"password": "wrong"
		}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("me", func(t *testing.T) {
		w := doJSON(srv, http.MethodGet, "/api/v1/auth/me", resp.Tokens.AccessToken, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "admin@example.com")
	})

	t.Run("me without token", func(t *testing.T) {
		w := doJSON(srv, http.MethodGet, "/api/v1/auth/me", "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("refresh", func(t *testing.T) {
		w := doJSON(srv, http.MethodPost, "/api/v1/auth/refresh", "", `{
			"refresh_token": "`+resp.Tokens.RefreshToken+`"
		}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("refresh rejects access token", func(t *testing.T) {
		w := doJSON(srv, http.MethodPost, "/api/v1/auth/refresh", "", `{
			"refresh_token": "`+resp.Tokens.AccessToken+`"
		}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRoutePermissionTable(t *testing.T) {
	srv, auth := newTestServer(t)

	super := registerUser(t, auth, "root@example.com", "SUPER_ADMIN")
	parent := registerUser(t, auth, "parent@example.com", "PARENT")

	t.Run("create organization requires ORG_CREATE", func(t *testing.T) {
		body := `{"code": "acme", "name": "Acme Foundation"}`

		w := doJSON(srv, http.MethodPost, "/api/v1/organizations", "", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = doJSON(srv, http.MethodPost, "/api/v1/organizations", parent, body)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doJSON(srv, http.MethodPost, "/api/v1/organizations", super, body)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"code":"ACME"`)
	})

	t.Run("duplicate organization code conflicts", func(t *testing.T) {
		body := `{"code": "ACME", "name": "Acme Again"}`

		w := doJSON(srv, http.MethodPost, "/api/v1/organizations", super, body)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("audit log is gated to the top governance role", func(t *testing.T) {
		w := doJSON(srv, http.MethodGet, "/api/v1/audit-logs", parent, "")
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doJSON(srv, http.MethodGet, "/api/v1/audit-logs", super, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ORG_CREATE")
	})

	t.Run("governance dashboard", func(t *testing.T) {
		w := doJSON(srv, http.MethodGet, "/api/v1/governance/dashboard", parent, "")
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doJSON(srv, http.MethodGet, "/api/v1/governance/dashboard", super, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("error envelope carries a trace id", func(t *testing.T) {
		w := doJSON(srv, http.MethodGet, "/api/v1/audit-logs", "", "")
		require.Equal(t, http.StatusUnauthorized, w.Code)

		var envelope objects.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		assert.Equal(t, "unauthorized", envelope.Error.Type)
		assert.NotEmpty(t, envelope.Error.TraceID)
	})
}
