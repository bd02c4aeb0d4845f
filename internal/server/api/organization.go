package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/objects"
	"github.com/mbgplatform/mbg/internal/server/biz"
	"github.com/mbgplatform/mbg/internal/store"
)

type OrganizationHandlersParams struct {
	fx.In

	OrganizationService *biz.OrganizationService
}

func NewOrganizationHandlers(params OrganizationHandlersParams) *OrganizationHandlers {
	return &OrganizationHandlers{
		OrganizationService: params.OrganizationService,
	}
}

type OrganizationHandlers struct {
	OrganizationService *biz.OrganizationService
}

func (h *OrganizationHandlers) Create(c *gin.Context) {
	var (
		ctx = c.Request.Context()
		req biz.CreateOrganizationInput
	)

	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	org, err := h.OrganizationService.Create(ctx, req)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, org)
}

func (h *OrganizationHandlers) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	org, err := h.OrganizationService.Get(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, org)
}

func (h *OrganizationHandlers) GetByCode(c *gin.Context) {
	org, err := h.OrganizationService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, org)
}

func (h *OrganizationHandlers) List(c *gin.Context) {
	params, ok := pageParams(c)
	if !ok {
		return
	}

	orgs, total, err := h.OrganizationService.List(c.Request.Context(), listParams(params))
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, objects.NewPage[*store.Organization](orgs, total, params))
}

func (h *OrganizationHandlers) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req biz.UpdateOrganizationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	org, err := h.OrganizationService.Update(c.Request.Context(), id, req)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, org)
}
