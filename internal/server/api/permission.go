package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/objects"
	"github.com/mbgplatform/mbg/internal/scopes"
	"github.com/mbgplatform/mbg/internal/server/biz"
)

type PermissionHandlersParams struct {
	fx.In

	PermissionService *biz.PermissionService
}

func NewPermissionHandlers(params PermissionHandlersParams) *PermissionHandlers {
	return &PermissionHandlers{
		PermissionService: params.PermissionService,
	}
}

type PermissionHandlers struct {
	PermissionService *biz.PermissionService
}

// List returns the immutable permission catalog.
func (h *PermissionHandlers) List(c *gin.Context) {
	perms, err := h.PermissionService.List(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": perms})
}

func pathRole(c *gin.Context) (scopes.Role, bool) {
	role, err := scopes.ParseRole(c.Param("role"))
	if err != nil {
		Error(c, errs.BadRequest("unknown role: "+c.Param("role")))
		return "", false
	}

	return role, true
}

// RoleGrants returns the effective permission names for a role.
func (h *PermissionHandlers) RoleGrants(c *gin.Context) {
	role, ok := pathRole(c)
	if !ok {
		return
	}

	names, err := h.PermissionService.PermissionsForRole(c.Request.Context(), role)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"role": role, "permissions": names})
}

type GrantRequest struct {
	Permission string `json:"permission" binding:"required"`
}

func (h *PermissionHandlers) Grant(c *gin.Context) {
	role, ok := pathRole(c)
	if !ok {
		return
	}

	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	err := h.PermissionService.Grant(c.Request.Context(), role, scopes.PermissionName(req.Permission))
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, objects.MessageResponse{Message: "permission granted"})
}

func (h *PermissionHandlers) Revoke(c *gin.Context) {
	role, ok := pathRole(c)
	if !ok {
		return
	}

	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	err := h.PermissionService.Revoke(c.Request.Context(), role, scopes.PermissionName(req.Permission))
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, objects.MessageResponse{Message: "permission revoked"})
}
