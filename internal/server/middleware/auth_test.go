package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbgplatform/mbg/internal/authz"
	"github.com/mbgplatform/mbg/internal/contexts"
	"github.com/mbgplatform/mbg/internal/scopes"
	"github.com/mbgplatform/mbg/internal/server/biz"
	"github.com/mbgplatform/mbg/internal/store"
	"github.com/mbgplatform/mbg/internal/store/memstore"
)

type authFixture struct {
	store *store.Store
	auth  *biz.AuthService
	perms *biz.PermissionService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	gin.SetMode(gin.TestMode)

	s := memstore.New()
	require.NoError(t, store.Seed(authz.NewSystemContext(context.Background()), s))

	audit := biz.NewAuditService(biz.AuditServiceParams{Store: s})
	auth := biz.NewAuthService(biz.AuthServiceParams{
		Store: s,
		Config: biz.AuthConfig{
			SecretKey:       "middleware-test-key",
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: 24 * time.Hour,
		},
		Audit: audit,
	})
	perms := biz.NewPermissionService(biz.PermissionServiceParams{Store: s, Audit: audit})

	return &authFixture{store: s, auth: auth, perms: perms}
}

func (f *authFixture) register(t *testing.T, email, role string) string {
	t.Helper()

	resp, err := f.auth.Register(authz.NewSystemContext(context.Background()), biz.RegisterInput{
		Email:    email,
		Password: "s3cret",
		Role:     role,
	})
	require.NoError(t, err)

	return resp.Tokens.AccessToken
}

func TestWithAuthContext(t *testing.T) {
	f := newAuthFixture(t)

	router := gin.New()
	router.Use(WithAuthContext(f.auth))
	router.GET("/probe", func(c *gin.Context) {
		ctx := c.Request.Context()

		p, hasPrincipal := authz.GetPrincipal(ctx)
		_, hasOrg := contexts.GetOrganizationID(ctx)

		role := ""
		if hasPrincipal {
			role = string(p.Role)
		}

		c.JSON(http.StatusOK, gin.H{
			"principal": hasPrincipal,
			"org":       hasOrg,
			"role":      role,
		})
	})

	t.Run("no token passes through unauthenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"principal":false`)
	})

	t.Run("invalid token passes through unauthenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer not-a-real-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"principal":false`)
	})

	t.Run("valid token resolves the principal", func(t *testing.T) {
		token := f.register(t, "probe@example.com", "PARENT")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"principal":true`)
		assert.Contains(t, w.Body.String(), `"role":"PARENT"`)
	})
}

func TestRequireAuth(t *testing.T) {
	f := newAuthFixture(t)

	router := gin.New()
	router.Use(WithAuthContext(f.auth), RequireAuth())
	router.GET("/secure", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	t.Run("blocks without token", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secure", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "unauthorized")
	})

	t.Run("passes with token", func(t *testing.T) {
		token := f.register(t, "secure@example.com", "PARENT")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestRequirePermission(t *testing.T) {
	f := newAuthFixture(t)

	router := gin.New()
	router.Use(WithAuthContext(f.auth))
	router.GET("/audit", RequirePermission(f.perms, scopes.PermAuditRead), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	t.Run("anonymous gets 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/audit", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("authenticated without grant gets 403", func(t *testing.T) {
		token := f.register(t, "parent@example.com", "PARENT")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/audit", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "forbidden")
	})

	t.Run("top governance role passes", func(t *testing.T) {
		token := f.register(t, "root@example.com", "SUPER_ADMIN")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/audit", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

// Concurrent requests must never observe each other's tenant scope.
func TestAuthContextIsolation(t *testing.T) {
	f := newAuthFixture(t)
	ctx := authz.NewSystemContext(context.Background())

	const tenants = 8

	tokens := make(map[string]string, tenants)

	for i := 0; i < tenants; i++ {
		code := fmt.Sprintf("ORG%d", i)
		org := &store.Organization{Code: code, Name: code, Tier: "BASIC", MaxBranches: 5, MaxUsers: 100, IsActive: true}
		require.NoError(t, f.store.Organizations.Create(ctx, org))

		resp, err := f.auth.Register(ctx, biz.RegisterInput{
			Email:          fmt.Sprintf("admin%d@example.com", i),
			Password:       "s3cret",
			Role:           "ORG_ADMIN",
			OrganizationID: &org.ID,
		})
		require.NoError(t, err)

		tokens[org.ID.String()] = resp.Tokens.AccessToken
	}

	router := gin.New()
	router.Use(WithAuthContext(f.auth), RequireAuth())
	router.GET("/whoami", func(c *gin.Context) {
		orgID, ok := contexts.GetOrganizationID(c.Request.Context())
		if !ok {
			c.String(http.StatusInternalServerError, "no org")
			return
		}

		c.String(http.StatusOK, orgID.String())
	})

	var wg sync.WaitGroup

	for orgID, token := range tokens {
		for i := 0; i < 5; i++ {
			wg.Add(1)

			go func(orgID, token string) {
				defer wg.Done()

				w := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
				req.Header.Set("Authorization", "Bearer "+token)
				router.ServeHTTP(w, req)

				assert.Equal(t, http.StatusOK, w.Code)
				assert.Equal(t, orgID, w.Body.String())
			}(orgID, token)
		}
	}

	wg.Wait()
}
