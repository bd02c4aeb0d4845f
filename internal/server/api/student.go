package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/objects"
	"github.com/mbgplatform/mbg/internal/server/biz"
	"github.com/mbgplatform/mbg/internal/store"
)

type StudentHandlersParams struct {
	fx.In

	StudentService *biz.StudentService
}

func NewStudentHandlers(params StudentHandlersParams) *StudentHandlers {
	return &StudentHandlers{
		StudentService: params.StudentService,
	}
}

type StudentHandlers struct {
	StudentService *biz.StudentService
}

func (h *StudentHandlers) Create(c *gin.Context) {
	var req biz.CreateStudentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	student, err := h.StudentService.Create(c.Request.Context(), req)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, student)
}

func (h *StudentHandlers) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	student, err := h.StudentService.Get(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

func (h *StudentHandlers) List(c *gin.Context) {
	params, ok := pageParams(c)
	if !ok {
		return
	}

	students, total, err := h.StudentService.List(c.Request.Context(), listParams(params))
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, objects.NewPage[*store.Student](students, total, params))
}

func (h *StudentHandlers) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req biz.UpdateStudentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	student, err := h.StudentService.Update(c.Request.Context(), id, req)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

func (h *StudentHandlers) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.StudentService.Delete(c.Request.Context(), id); err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, objects.MessageResponse{Message: "student deleted"})
}
