package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/objects"
	"github.com/mbgplatform/mbg/internal/server/biz"
)

type UserHandlersParams struct {
	fx.In

	UserService *biz.UserService
}

func NewUserHandlers(params UserHandlersParams) *UserHandlers {
	return &UserHandlers{
		UserService: params.UserService,
	}
}

type UserHandlers struct {
	UserService *biz.UserService
}

func (h *UserHandlers) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	info, err := h.UserService.Get(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *UserHandlers) List(c *gin.Context) {
	params, ok := pageParams(c)
	if !ok {
		return
	}

	users, total, err := h.UserService.List(c.Request.Context(), listParams(params))
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, objects.NewPage[objects.UserInfo](users, total, params))
}

func (h *UserHandlers) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req biz.UpdateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	info, err := h.UserService.Update(c.Request.Context(), id, req)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *UserHandlers) UpdateRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	info, err := h.UserService.UpdateRole(c.Request.Context(), id, req.Role)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *UserHandlers) Activate(c *gin.Context) {
	h.setActive(c, true)
}

func (h *UserHandlers) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *UserHandlers) setActive(c *gin.Context, active bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	info, err := h.UserService.SetActive(c.Request.Context(), id, active)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}
