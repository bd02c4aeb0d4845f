package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/objects"
	"github.com/mbgplatform/mbg/internal/server/biz"
	"github.com/mbgplatform/mbg/internal/store"
)

type MealHandlersParams struct {
	fx.In

	MealService *biz.MealService
}

func NewMealHandlers(params MealHandlersParams) *MealHandlers {
	return &MealHandlers{
		MealService: params.MealService,
	}
}

type MealHandlers struct {
	MealService *biz.MealService
}

func (h *MealHandlers) Create(c *gin.Context) {
	var req biz.CreateMealInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	meal, err := h.MealService.Create(c.Request.Context(), req)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, meal)
}

func (h *MealHandlers) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	meal, err := h.MealService.Get(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, meal)
}

func (h *MealHandlers) List(c *gin.Context) {
	params, ok := pageParams(c)
	if !ok {
		return
	}

	meals, total, err := h.MealService.List(c.Request.Context(), listParams(params))
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, objects.NewPage[*store.Meal](meals, total, params))
}

func (h *MealHandlers) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req biz.UpdateMealInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	meal, err := h.MealService.Update(c.Request.Context(), id, req)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, meal)
}

func (h *MealHandlers) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.MealService.Delete(c.Request.Context(), id); err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, objects.MessageResponse{Message: "meal deleted"})
}
