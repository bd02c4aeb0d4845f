package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/objects"
	"github.com/mbgplatform/mbg/internal/server/biz"
	"github.com/mbgplatform/mbg/internal/store"
)

type OrderHandlersParams struct {
	fx.In

	OrderService *biz.OrderService
}

func NewOrderHandlers(params OrderHandlersParams) *OrderHandlers {
	return &OrderHandlers{
		OrderService: params.OrderService,
	}
}

type OrderHandlers struct {
	OrderService *biz.OrderService
}

func (h *OrderHandlers) Create(c *gin.Context) {
	var req biz.CreateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	order, err := h.OrderService.Create(c.Request.Context(), req)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandlers) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.Get(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandlers) List(c *gin.Context) {
	params, ok := pageParams(c)
	if !ok {
		return
	}

	orders, total, err := h.OrderService.List(c.Request.Context(), listParams(params))
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, objects.NewPage[*store.Order](orders, total, params))
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *OrderHandlers) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	order, err := h.OrderService.UpdateStatus(c.Request.Context(), id, store.OrderStatus(req.Status))
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandlers) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.OrderService.Delete(c.Request.Context(), id); err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, objects.MessageResponse{Message: "order deleted"})
}
