package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/objects"
	"github.com/mbgplatform/mbg/internal/server/biz"
	"github.com/mbgplatform/mbg/internal/store"
)

type SchoolHandlersParams struct {
	fx.In

	SchoolService *biz.SchoolService
}

func NewSchoolHandlers(params SchoolHandlersParams) *SchoolHandlers {
	return &SchoolHandlers{
		SchoolService: params.SchoolService,
	}
}

type SchoolHandlers struct {
	SchoolService *biz.SchoolService
}

func (h *SchoolHandlers) Create(c *gin.Context) {
	var req biz.CreateSchoolInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	school, err := h.SchoolService.Create(c.Request.Context(), req)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, school)
}

func (h *SchoolHandlers) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	school, err := h.SchoolService.Get(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, school)
}

func (h *SchoolHandlers) List(c *gin.Context) {
	params, ok := pageParams(c)
	if !ok {
		return
	}

	schools, total, err := h.SchoolService.List(c.Request.Context(), listParams(params))
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, objects.NewPage[*store.School](schools, total, params))
}

func (h *SchoolHandlers) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req biz.UpdateSchoolInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	school, err := h.SchoolService.Update(c.Request.Context(), id, req)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, school)
}

func (h *SchoolHandlers) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.SchoolService.Delete(c.Request.Context(), id); err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, objects.MessageResponse{Message: "school deleted"})
}
