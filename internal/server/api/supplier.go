package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/objects"
	"github.com/mbgplatform/mbg/internal/server/biz"
	"github.com/mbgplatform/mbg/internal/store"
)

type SupplierHandlersParams struct {
	fx.In

	SupplierService *biz.SupplierService
}

func NewSupplierHandlers(params SupplierHandlersParams) *SupplierHandlers {
	return &SupplierHandlers{
		SupplierService: params.SupplierService,
	}
}

type SupplierHandlers struct {
	SupplierService *biz.SupplierService
}

func (h *SupplierHandlers) Create(c *gin.Context) {
	var req biz.CreateSupplierInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	supplier, err := h.SupplierService.Create(c.Request.Context(), req)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, supplier)
}

func (h *SupplierHandlers) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	supplier, err := h.SupplierService.Get(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandlers) List(c *gin.Context) {
	params, ok := pageParams(c)
	if !ok {
		return
	}

	suppliers, total, err := h.SupplierService.List(c.Request.Context(), listParams(params))
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, objects.NewPage[*store.Supplier](suppliers, total, params))
}

func (h *SupplierHandlers) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req biz.UpdateSupplierInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	supplier, err := h.SupplierService.Update(c.Request.Context(), id, req)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandlers) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.SupplierService.Delete(c.Request.Context(), id); err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, objects.MessageResponse{Message: "supplier deleted"})
}
