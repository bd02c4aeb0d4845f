package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/authz"
	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/server/biz"
)

type AuthHandlersParams struct {
	fx.In

	AuthService *biz.AuthService
	UserService *biz.UserService
}

func NewAuthHandlers(params AuthHandlersParams) *AuthHandlers {
	return &AuthHandlers{
		AuthService: params.AuthService,
		UserService: params.UserService,
	}
}

type AuthHandlers struct {
	AuthService *biz.AuthService
	UserService *biz.UserService
}

// Register creates a new account and returns the signed-in response.
func (h *AuthHandlers) Register(c *gin.Context) {
	var (
		ctx = c.Request.Context()
		req biz.RegisterInput
	)

	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	resp, err := h.AuthService.Register(ctx, req)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a user and issues a token pair.
func (h *AuthHandlers) Login(c *gin.Context) {
	var (
		ctx = c.Request.Context()
		req LoginRequest
	)

	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	resp, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh exchanges a valid refresh token for a new token pair.
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var (
		ctx = c.Request.Context()
		req RefreshRequest
	)

	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	tokens, err := h.AuthService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// Me returns the profile of the calling user.
func (h *AuthHandlers) Me(c *gin.Context) {
	ctx := c.Request.Context()

	principal, ok := authz.GetPrincipal(ctx)
	if !ok || !principal.IsUser() {
		Error(c, errs.Unauthorized("unauthorized"))
		return
	}

	info, err := h.UserService.Get(ctx, *principal.UserID)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}
